package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type MatrixTestingEvaluator struct{}

func (e *MatrixTestingEvaluator) ID() checks.ID {
	return checks.MatrixTesting
}

func (e *MatrixTestingEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	lower := strings.ToLower(text)

	if !strings.Contains(lower, "strategy:") || !strings.Contains(lower, "matrix:") {
		return checks.Failed(check, "no matrix strategy detected in CI",
			"Test against a matrix of versions or platforms with strategy.matrix")
	}

	var axes []string
	if strings.Contains(lower, "node-version") {
		axes = append(axes, "node versions")
	}
	if strings.Contains(lower, "python-version") {
		axes = append(axes, "python versions")
	}
	if strings.Contains(lower, "rust") || strings.Contains(lower, "toolchain") {
		axes = append(axes, "toolchains")
	}
	if strings.Contains(lower, "os:") || strings.Contains(lower, "runs-on:") {
		axes = append(axes, "operating systems")
	}

	detail := "matrix strategy configured"
	if len(axes) > 0 {
		detail += " across " + strings.Join(axes, " and ")
	}
	return checks.Passed(check, detail)
}

func init() {
	checks.Register(&MatrixTestingEvaluator{})
}
