package evaluators

import (
	"context"
	"fmt"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

const (
	commitSample     = 20
	passingThreshold = 80
)

var conventionalTypes = []string{
	"feat", "fix", "docs", "style", "refactor", "test",
	"chore", "ci", "build", "perf", "revert",
}

var mergePrefixes = []string{"Merge pull request", "Merge branch", "Merge remote"}

type ConventionalCommitsEvaluator struct{}

func (e *ConventionalCommitsEvaluator) ID() checks.ID {
	return checks.ConventionalCommits
}

func (e *ConventionalCommitsEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	commits, err := gw.ListCommits(ctx, repo, commitSample)
	if err != nil {
		return checks.Skipped(check, "could not list commits: "+err.Error())
	}
	if len(commits) == 0 {
		return checks.Skipped(check, "no commits to inspect")
	}

	var total, matched int
	for _, c := range commits {
		subject := firstLine(c.Message)
		if isMergeCommit(subject) {
			continue
		}
		total++
		if isConventional(subject) {
			matched++
		}
	}
	if total == 0 {
		return checks.Skipped(check, "only merge commits in the sample")
	}

	pct := matched * 100 / total
	detail := fmt.Sprintf("%d/%d conventional commits (%d%%)", matched, total, pct)
	if pct >= passingThreshold {
		return checks.Passed(check, detail)
	}
	return checks.Failed(check, detail,
		"Adopt the Conventional Commits format (feat: ..., fix: ...) for commit messages")
}

func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}
	return message
}

func isMergeCommit(subject string) bool {
	for _, prefix := range mergePrefixes {
		if strings.HasPrefix(subject, prefix) {
			return true
		}
	}
	return false
}

// isConventional matches type[(scope)][!]: subject on the first line.
func isConventional(subject string) bool {
	for _, typ := range conventionalTypes {
		if strings.HasPrefix(subject, typ+": ") || strings.HasPrefix(subject, typ+"!: ") {
			return true
		}
		if rest, ok := strings.CutPrefix(subject, typ+"("); ok {
			if end := strings.Index(rest, ")"); end >= 0 {
				after := rest[end+1:]
				if strings.HasPrefix(after, ": ") || strings.HasPrefix(after, "!: ") {
					return true
				}
			}
		}
	}
	return false
}

func init() {
	checks.Register(&ConventionalCommitsEvaluator{})
}
