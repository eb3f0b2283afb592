package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var changelogTooling = []string{
	"release-please", "semantic-release", "conventional-changelog",
	"auto-changelog", "standard-version", "changesets",
}

type AutoChangelogEvaluator struct{}

func (e *AutoChangelogEvaluator) ID() checks.ID {
	return checks.AutoChangelog
}

func (e *AutoChangelogEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	if hits := matchAny(strings.ToLower(text), changelogTooling); len(hits) > 0 {
		return checks.Passed(check, "changelog automation: "+strings.Join(hits, ", "))
	}

	// Fall back to a maintained CHANGELOG.md with versioned sections.
	body, err := gw.FileText(ctx, repo, "CHANGELOG.md")
	if err != nil {
		if gateway.IsNotFound(err) {
			return checks.Failed(check, "no changelog automation and no CHANGELOG.md",
				"Generate release notes with release-please or conventional-changelog")
		}
		return checks.Skipped(check, "CHANGELOG.md unreadable: "+err.Error())
	}
	sections := 0
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## [") || strings.HasPrefix(trimmed, "## v") {
			sections++
		}
	}
	if sections >= 2 {
		return checks.Passed(check, "CHANGELOG.md with versioned sections")
	}
	return checks.Failed(check, "CHANGELOG.md exists but has no versioned sections",
		"Structure the changelog per keepachangelog.com or automate it in CI")
}

func init() {
	checks.Register(&AutoChangelogEvaluator{})
}
