package evaluators

import (
	"context"
	"fmt"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

const releaseSample = 5

var releaseTooling = []string{
	"release-please", "semantic-release", "create-release",
	"actions/create-release", "gh release create",
}

type ReleaseTaggingEvaluator struct{}

func (e *ReleaseTaggingEvaluator) ID() checks.ID {
	return checks.ReleaseTagging
}

func (e *ReleaseTaggingEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	releases, listErr := gw.ListReleases(ctx, repo, releaseSample)
	if listErr == nil && len(releases) > 0 {
		return checks.Passed(check, fmt.Sprintf("%d release(s), latest %s", len(releases), releases[0].Tag))
	}

	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	if hits := matchAny(strings.ToLower(text), releaseTooling); len(hits) > 0 {
		return checks.Warning(check, check.Weight/2,
			"release tooling configured ("+strings.Join(hits, ", ")+") but no published releases",
			"Cut a first release so the automation has something to show")
	}
	if listErr != nil {
		return checks.Skipped(check, "releases unavailable: "+listErr.Error())
	}
	return checks.Failed(check, "no releases and no release automation",
		"Tag versions with gh release create or automate them with release-please")
}

func init() {
	checks.Register(&ReleaseTaggingEvaluator{})
}
