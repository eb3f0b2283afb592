package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var setupCacheKeywords = []string{
	"cache: npm", "cache: yarn", "cache: pnpm", "cache: pip",
	"cache: poetry", "cache: 'npm'", "cache: 'pip'",
	"cache: gradle", "cache: maven",
}

var dockerCacheKeywords = []string{"cache-from", "cache-to", "buildkit"}

type CICacheEvaluator struct{}

func (e *CICacheEvaluator) ID() checks.ID {
	return checks.CICache
}

func (e *CICacheEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	lower := strings.ToLower(text)

	if strings.Contains(lower, "actions/cache") {
		return checks.Passed(check, "actions/cache in use")
	}
	if hits := matchAny(lower, setupCacheKeywords); len(hits) > 0 {
		return checks.Passed(check, "integrated setup cache: "+strings.Join(hits, ", "))
	}
	if hits := matchAny(lower, dockerCacheKeywords); len(hits) > 0 {
		return checks.Passed(check, "Docker layer cache: "+strings.Join(hits, ", "))
	}
	return checks.Failed(check, "no dependency or layer caching detected in CI",
		"Cache dependencies with actions/cache or the setup-* cache option to speed up runs")
}

func init() {
	checks.Register(&CICacheEvaluator{})
}
