package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var testKeywords = []string{
	"test", "pytest", "jest", "cargo test", "go test",
	"npm test", "yarn test", "phpunit", "rspec", "unittest",
}

type TestsExistEvaluator struct{}

func (e *TestsExistEvaluator) ID() checks.ID {
	return checks.TestsExist
}

func (e *TestsExistEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}

	hits := matchAny(strings.ToLower(text), testKeywords)
	if len(hits) == 0 {
		return checks.Failed(check, "no test step detected in CI",
			"Add a test step (go test, pytest, npm test, ...) to the pipeline")
	}
	return checks.Passed(check, "test tooling detected: "+strings.Join(hits, ", "))
}

func init() {
	checks.Register(&TestsExistEvaluator{})
}
