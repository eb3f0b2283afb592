package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var coverageKeywords = []string{
	"coverage", "codecov", "coveralls", "lcov", "tarpaulin",
	"jacoco", "istanbul", "nyc", "cobertura",
}

type CoverageConfiguredEvaluator struct{}

func (e *CoverageConfiguredEvaluator) ID() checks.ID {
	return checks.CoverageConfigured
}

func (e *CoverageConfiguredEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}

	hits := matchAny(strings.ToLower(text), coverageKeywords)
	if len(hits) == 0 {
		return checks.Failed(check, "no coverage reporting detected in CI",
			"Collect coverage in the test step and upload it (codecov, coveralls, ...)")
	}
	return checks.Passed(check, "coverage tooling detected: "+strings.Join(hits, ", "))
}

func init() {
	checks.Register(&CoverageConfiguredEvaluator{})
}
