package evaluators

import (
	"context"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type GitignoreExistsEvaluator struct{}

func (e *GitignoreExistsEvaluator) ID() checks.ID {
	return checks.GitignoreExists
}

func (e *GitignoreExistsEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	if gw.FileExists(ctx, repo, ".gitignore") {
		return checks.Passed(check, ".gitignore present")
	}
	return checks.Failed(check, "no .gitignore at the repository root",
		"Add a .gitignore so build artifacts and local config stay out of the history")
}

func init() {
	checks.Register(&GitignoreExistsEvaluator{})
}
