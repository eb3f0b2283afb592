package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type ReusableWorkflowsEvaluator struct{}

func (e *ReusableWorkflowsEvaluator) ID() checks.ID {
	return checks.ReusableWorkflows
}

func (e *ReusableWorkflowsEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	lower := strings.ToLower(text)

	if strings.Contains(lower, "workflow_call:") {
		return checks.Passed(check, "defines a reusable workflow (workflow_call)")
	}
	if strings.Contains(lower, "uses: ./.github/workflows/") ||
		strings.Contains(lower, "uses: './.github/workflows/") {
		return checks.Passed(check, "calls a local reusable workflow")
	}
	return checks.Failed(check, "no reusable workflows defined or called",
		"Factor shared jobs into a workflow_call workflow to avoid copy-paste between pipelines")
}

func init() {
	checks.Register(&ReusableWorkflowsEvaluator{})
}
