package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

type GHCRPublishedEvaluator struct{}

func (e *GHCRPublishedEvaluator) ID() checks.ID {
	return checks.GHCRPublished
}

func (e *GHCRPublishedEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	lower := strings.ToLower(text)

	hasGHCR := strings.Contains(lower, "ghcr.io") ||
		strings.Contains(lower, "github container registry") ||
		(strings.Contains(lower, "build-push-action") && strings.Contains(lower, "registry: ghcr"))
	hasPush := strings.Contains(lower, "push: true") ||
		strings.Contains(lower, "docker push") ||
		strings.Contains(lower, "build-push-action")

	switch {
	case hasGHCR && hasPush:
		return checks.Passed(check, "images pushed to ghcr.io from CI")
	case hasGHCR:
		return checks.Warning(check, check.Weight/2,
			"ghcr.io referenced but no push step detected",
			"Push the built image with docker/build-push-action push: true")
	default:
		return checks.Failed(check, "no GitHub Container Registry publishing detected",
			"Publish images to ghcr.io so deploys pull a versioned artifact")
	}
}

func init() {
	checks.Register(&GHCRPublishedEvaluator{})
}
