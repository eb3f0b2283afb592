package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var environmentIndicators = []string{
	"environment:", "staging", "production", "prod", "dev",
	"deploy-staging", "deploy-prod",
}

type MultiEnvironmentEvaluator struct{}

func (e *MultiEnvironmentEvaluator) ID() checks.ID {
	return checks.MultiEnvironment
}

// Evaluate requires at least two distinct environment indicators; one
// alone does not demonstrate a staging/production split.
func (e *MultiEnvironmentEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}

	hits := matchAny(strings.ToLower(text), environmentIndicators)
	if len(hits) >= 2 {
		return checks.Passed(check, "environment indicators: "+strings.Join(hits, ", "))
	}
	detail := "no environment indicators found in CI"
	if len(hits) == 1 {
		detail = "only one environment indicator found (" + hits[0] + ")"
	}
	return checks.Failed(check, detail,
		"Split the pipeline into staging and production deploy stages")
}

func init() {
	checks.Register(&MultiEnvironmentEvaluator{})
}
