package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var deployIndicators = []string{
	"deploy", "publish", "release", "gh-pages", "pages",
	"aws", "azure", "gcloud", "heroku", "vercel", "netlify",
	"render", "fly.io",
}

var pushTriggerPatterns = []string{"on:\n  push:", "on: [push"}

type AutoDeployEvaluator struct{}

func (e *AutoDeployEvaluator) ID() checks.ID {
	return checks.AutoDeploy
}

func (e *AutoDeployEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	lower := strings.ToLower(text)

	deployHits := matchAny(lower, deployIndicators)
	pushTrigger := len(matchAny(lower, pushTriggerPatterns)) > 0

	switch {
	case len(deployHits) > 0 && pushTrigger:
		return checks.Passed(check, "deploy step ("+strings.Join(deployHits, ", ")+") triggered on push")
	case len(deployHits) > 0:
		return checks.Warning(check, check.Weight/2,
			"deploy tooling present ("+strings.Join(deployHits, ", ")+") but no push trigger detected",
			"Trigger the deploy workflow on push to the default branch")
	default:
		return checks.Failed(check, "no deployment automation detected",
			"Add a deploy job that runs on merge to the default branch")
	}
}

func init() {
	checks.Register(&AutoDeployEvaluator{})
}
