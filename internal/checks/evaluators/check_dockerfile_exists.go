package evaluators

import (
	"context"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type DockerfileExistsEvaluator struct{}

func (e *DockerfileExistsEvaluator) ID() checks.ID {
	return checks.DockerfileExists
}

func (e *DockerfileExistsEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	if path, ok := firstExisting(ctx, gw, repo, "Dockerfile"); ok {
		return checks.Passed(check, path+" found at the repository root")
	}
	return checks.Failed(check, "no Dockerfile at the repository root",
		"Add a Dockerfile so the project builds into a container image")
}

func init() {
	checks.Register(&DockerfileExistsEvaluator{})
}
