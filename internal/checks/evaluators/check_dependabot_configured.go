package evaluators

import (
	"context"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type DependabotConfiguredEvaluator struct{}

func (e *DependabotConfiguredEvaluator) ID() checks.ID {
	return checks.DependabotConfigured
}

func (e *DependabotConfiguredEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	if path, ok := firstExisting(ctx, gw, repo, ".github/dependabot.yml", ".github/dependabot.yaml"); ok {
		return checks.Passed(check, "Dependabot configured ("+path+")")
	}
	if path, ok := firstExisting(ctx, gw, repo, "renovate.json", ".github/renovate.json"); ok {
		return checks.Passed(check, "Renovate configured ("+path+")")
	}
	return checks.Failed(check, "no Dependabot or Renovate configuration found",
		"Add .github/dependabot.yml to keep dependencies updated automatically")
}

func init() {
	checks.Register(&DependabotConfiguredEvaluator{})
}
