package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var rollbackWorkflowPaths = []string{
	".github/workflows/rollback.yml",
	".github/workflows/rollback.yaml",
	".github/workflows/revert.yml",
}

var rollbackKeywords = []string{"rollback", "undo-deploy", "undo_deploy"}

type RollbackStrategyEvaluator struct{}

func (e *RollbackStrategyEvaluator) ID() checks.ID {
	return checks.RollbackStrategy
}

func (e *RollbackStrategyEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	if path, ok := firstExisting(ctx, gw, repo, rollbackWorkflowPaths...); ok {
		return checks.Passed(check, "dedicated rollback workflow at "+path)
	}

	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	lower := strings.ToLower(text)

	if hits := matchAny(lower, rollbackKeywords); len(hits) > 0 {
		return checks.Passed(check, "rollback step detected: "+strings.Join(hits, ", "))
	}

	manual := strings.Contains(lower, "workflow_dispatch:")
	if manual && (strings.Contains(lower, "revert") || strings.Contains(lower, "rollback")) {
		return checks.Passed(check, "manually dispatchable revert workflow")
	}
	if manual {
		return checks.Warning(check, check.Weight/2,
			"manual workflow_dispatch exists but no explicit rollback step",
			"Add a rollback job so a bad deploy can be reverted in one click")
	}
	return checks.Failed(check, "no rollback mechanism detected",
		"Add a rollback.yml workflow that redeploys the previous release")
}

func init() {
	checks.Register(&RollbackStrategyEvaluator{})
}
