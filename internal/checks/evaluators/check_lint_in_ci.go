package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var lintKeywords = []string{
	"lint", "eslint", "clippy", "flake8", "pylint", "rubocop",
	"prettier", "rustfmt", "black", "golangci-lint", "fmt --check",
}

type LintInCIEvaluator struct{}

func (e *LintInCIEvaluator) ID() checks.ID {
	return checks.LintInCI
}

func (e *LintInCIEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}

	hits := matchAny(strings.ToLower(text), lintKeywords)
	if len(hits) == 0 {
		return checks.Failed(check, "no lint or format step detected in CI",
			"Add a linter step (golangci-lint, eslint, clippy, ...) to the pipeline")
	}
	return checks.Passed(check, "lint tooling detected: "+strings.Join(hits, ", "))
}

func init() {
	checks.Register(&LintInCIEvaluator{})
}
