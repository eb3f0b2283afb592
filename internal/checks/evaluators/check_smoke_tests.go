package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var smokeTestKeywords = []string{
	"smoke", "e2e", "end-to-end", "end_to_end", "integration-test",
	"post-deploy", "post_deploy", "acceptance", "health-check",
	"healthcheck", "playwright", "cypress", "puppeteer",
}

type SmokeTestsEvaluator struct{}

func (e *SmokeTestsEvaluator) ID() checks.ID {
	return checks.SmokeTests
}

func (e *SmokeTestsEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	hits := matchAny(strings.ToLower(text), smokeTestKeywords)
	if len(hits) == 0 {
		return checks.Failed(check, "no smoke or end-to-end test step in CI",
			"Run a smoke suite (curl the health endpoint, or an e2e tool like Playwright) after deploy")
	}
	return checks.Passed(check, "post-deploy verification detected: "+strings.Join(hits, ", "))
}

func init() {
	checks.Register(&SmokeTestsEvaluator{})
}
