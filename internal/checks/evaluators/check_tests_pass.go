package evaluators

import (
	"context"
	"fmt"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type TestsPassEvaluator struct{}

func (e *TestsPassEvaluator) ID() checks.ID {
	return checks.TestsPass
}

func (e *TestsPassEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	if len(matchAny(strings.ToLower(text), testKeywords)) == 0 {
		return checks.Failed(check, "no test step in CI, so nothing to pass",
			"Add a test step to the pipeline first")
	}

	branch := defaultBranch(ctx, gw, repo)
	runs, err := gw.ListWorkflowRuns(ctx, repo, branch, 5)
	if err != nil {
		return checks.Skipped(check, "could not list workflow runs: "+err.Error())
	}
	if len(runs) == 0 {
		return checks.Skipped(check, "no workflow runs yet on "+branch)
	}

	latest := runs[0]
	switch latest.Conclusion {
	case "success":
		return checks.Passed(check, fmt.Sprintf("latest run %q passed on %s", latest.Name, branch))
	case "":
		return checks.Skipped(check, fmt.Sprintf("latest run %q is still in progress", latest.Name))
	default:
		return checks.Failed(check,
			fmt.Sprintf("latest run %q concluded %s", latest.Name, latest.Conclusion),
			"Fix the failing tests so the pipeline passes on "+branch)
	}
}

func init() {
	checks.Register(&TestsPassEvaluator{})
}
