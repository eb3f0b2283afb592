package evaluators

import (
	"context"
	"fmt"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type PipelineGreenEvaluator struct{}

func (e *PipelineGreenEvaluator) ID() checks.ID {
	return checks.PipelineGreen
}

func (e *PipelineGreenEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	branch := defaultBranch(ctx, gw, repo)
	runs, err := gw.ListWorkflowRuns(ctx, repo, branch, 5)
	if err != nil {
		return checks.Skipped(check, "could not list workflow runs: "+err.Error())
	}
	if len(runs) == 0 {
		return checks.Failed(check, "no workflow runs on "+branch,
			"Trigger the pipeline by pushing to "+branch)
	}

	latest := runs[0]
	switch latest.Conclusion {
	case "success":
		return checks.Passed(check, fmt.Sprintf("latest run %q succeeded on %s", latest.Name, branch))
	case "":
		return checks.Warning(check, check.Weight/2,
			fmt.Sprintf("latest run %q is still in progress", latest.Name),
			"Wait for the run to finish and keep "+branch+" green")
	default:
		return checks.Failed(check,
			fmt.Sprintf("latest run %q concluded %s", latest.Name, latest.Conclusion),
			"Fix the failing pipeline on "+branch)
	}
}

func init() {
	checks.Register(&PipelineGreenEvaluator{})
}
