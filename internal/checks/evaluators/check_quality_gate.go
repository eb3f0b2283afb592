package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var qualityGateKeywords = []string{
	"sonarcloud", "sonarqube", "sonar-scanner", "sonarqube-scan-action",
	"codeclimate", "codacy", "codecov", "deepsource",
}

type QualityGateEvaluator struct{}

func (e *QualityGateEvaluator) ID() checks.ID {
	return checks.QualityGate
}

func (e *QualityGateEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}

	hits := matchAny(strings.ToLower(text), qualityGateKeywords)
	if len(hits) == 0 {
		return checks.Failed(check, "no quality gate detected in CI",
			"Wire a quality gate (SonarCloud, CodeClimate, ...) into the pipeline")
	}
	return checks.Passed(check, "quality gate detected: "+strings.Join(hits, ", "))
}

func init() {
	checks.Register(&QualityGateEvaluator{})
}
