package evaluators

import (
	"context"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var codeownersPaths = []string{"CODEOWNERS", ".github/CODEOWNERS", "docs/CODEOWNERS"}

type CodeownersExistsEvaluator struct{}

func (e *CodeownersExistsEvaluator) ID() checks.ID {
	return checks.CodeownersExists
}

func (e *CodeownersExistsEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	if path, ok := firstExisting(ctx, gw, repo, codeownersPaths...); ok {
		return checks.Passed(check, "CODEOWNERS at "+path)
	}
	return checks.Failed(check, "no CODEOWNERS file",
		"Add .github/CODEOWNERS so reviews are routed automatically")
}

func init() {
	checks.Register(&CodeownersExistsEvaluator{})
}
