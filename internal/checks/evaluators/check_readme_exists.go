package evaluators

import (
	"context"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type ReadmeExistsEvaluator struct{}

func (e *ReadmeExistsEvaluator) ID() checks.ID {
	return checks.ReadmeExists
}

func (e *ReadmeExistsEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	if path, ok := firstExisting(ctx, gw, repo, "README.md"); ok {
		return checks.Passed(check, path+" found")
	}
	return checks.Failed(check, "no README.md at the repository root",
		"Add a README.md describing the project and how to run it")
}

func init() {
	checks.Register(&ReadmeExistsEvaluator{})
}
