package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var dockerBuildKeywords = []string{
	"docker build", "docker/build-push-action", "docker-build",
	"docker compose", "docker/setup-buildx",
}

type DockerBuildCIEvaluator struct{}

func (e *DockerBuildCIEvaluator) ID() checks.ID {
	return checks.DockerBuildCI
}

func (e *DockerBuildCIEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}

	hits := matchAny(strings.ToLower(text), dockerBuildKeywords)
	if len(hits) == 0 {
		return checks.Failed(check, "no Docker build step detected in CI",
			"Build the image in CI, e.g. with docker/build-push-action")
	}
	return checks.Passed(check, "docker build detected: "+strings.Join(hits, ", "))
}

func init() {
	checks.Register(&DockerBuildCIEvaluator{})
}
