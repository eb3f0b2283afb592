package evaluators

import (
	"context"
	"fmt"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type BranchProtectionEvaluator struct{}

func (e *BranchProtectionEvaluator) ID() checks.ID {
	return checks.BranchProtection
}

func (e *BranchProtectionEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	branch := defaultBranch(ctx, gw, repo)

	prot, err := gw.BranchProtection(ctx, repo, branch)
	if err != nil {
		if gateway.IsNotFound(err) {
			return checks.Failed(check, branch+" branch is not protected",
				"Protect "+branch+" and require pull request reviews before merging")
		}
		// 401/403 usually means the token lacks admin scope, which says
		// nothing about the protection itself.
		return checks.Skipped(check, "branch protection not readable: "+err.Error())
	}

	if prot.RequiresReviews {
		detail := "pull request reviews required on " + branch
		if prot.RequiredApprovals > 0 {
			detail = fmt.Sprintf("%d approving review(s) required on %s", prot.RequiredApprovals, branch)
		}
		return checks.Passed(check, detail)
	}
	return checks.Warning(check, check.Weight/2,
		branch+" is protected but does not require pull request reviews",
		"Require at least one approving review on "+branch)
}

func init() {
	checks.Register(&BranchProtectionEvaluator{})
}
