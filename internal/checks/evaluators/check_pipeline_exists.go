package evaluators

import (
	"context"
	"fmt"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type PipelineExistsEvaluator struct{}

func (e *PipelineExistsEvaluator) ID() checks.ID {
	return checks.PipelineExists
}

func (e *PipelineExistsEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	files, err := gw.ListWorkflowFiles(ctx, repo)
	if err != nil {
		if gateway.IsNotFound(err) {
			return checks.Failed(check, "no .github/workflows directory",
				"Create .github/workflows/ci.yml with a build and test job")
		}
		return checks.Skipped(check, "could not list workflows: "+err.Error())
	}

	var names []string
	for _, f := range files {
		if isYAMLFile(f.Name) {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return checks.Failed(check, "workflow directory contains no YAML workflows",
			"Create .github/workflows/ci.yml with a build and test job")
	}
	return checks.Passed(check, fmt.Sprintf("%d workflow(s): %s", len(names), strings.Join(names, ", ")))
}

func init() {
	checks.Register(&PipelineExistsEvaluator{})
}
