package evaluators

import (
	"context"
	"fmt"
	"time"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

const (
	runSample    = 10
	fastRunLimit = 5 * time.Minute
	slowRunLimit = 10 * time.Minute
)

type PipelineFastEvaluator struct{}

func (e *PipelineFastEvaluator) ID() checks.ID {
	return checks.PipelineFast
}

func (e *PipelineFastEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	runs, err := gw.ListWorkflowRuns(ctx, repo, "", runSample)
	if err != nil {
		return checks.Skipped(check, "could not list workflow runs: "+err.Error())
	}

	var total time.Duration
	var completed int
	for _, r := range runs {
		if r.Conclusion == "" || r.StartedAt.IsZero() || r.UpdatedAt.IsZero() {
			continue
		}
		d := r.UpdatedAt.Sub(r.StartedAt)
		if d < 0 {
			continue
		}
		total += d
		completed++
	}
	if completed == 0 {
		return checks.Skipped(check, "no completed runs to measure")
	}

	avg := total / time.Duration(completed)
	detail := fmt.Sprintf("average run duration %s over %d run(s)", avg.Round(time.Second), completed)
	switch {
	case avg < fastRunLimit:
		return checks.Passed(check, detail)
	case avg < slowRunLimit:
		return checks.Warning(check, check.Weight/2, detail,
			"Cache dependencies or parallelize jobs to bring runs under five minutes")
	default:
		return checks.Failed(check, detail,
			"Split slow jobs and cache dependencies; aim for runs under five minutes")
	}
}

func init() {
	checks.Register(&PipelineFastEvaluator{})
}
