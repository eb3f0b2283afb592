package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

// secretPatterns are matched case-sensitively against the raw workflow
// text: AKIA (AWS key ids) and token prefixes lose their meaning when
// lower-cased.
var secretPatterns = []string{
	"AKIA", "sk-", "ghp_", "password: ", "passwd", "secret_key",
}

type NoSecretsInCodeEvaluator struct{}

func (e *NoSecretsInCodeEvaluator) ID() checks.ID {
	return checks.NoSecretsInCode
}

func (e *NoSecretsInCodeEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}

	hits := matchAny(text, secretPatterns)
	if len(hits) > 0 {
		return checks.Failed(check, "secret-looking patterns in workflow files: "+strings.Join(hits, ", "),
			"Move credentials to GitHub Actions secrets and reference them via ${{ secrets.NAME }}")
	}
	return checks.Passed(check, "no hardcoded secret patterns detected")
}

func init() {
	checks.Register(&NoSecretsInCodeEvaluator{})
}
