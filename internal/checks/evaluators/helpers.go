package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/gateway"
)

// matchAny returns the needles present in haystack, in list order. Callers
// pass a lower-cased haystack for the case-insensitive checks.
func matchAny(haystack string, needles []string) []string {
	var found []string
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			found = append(found, n)
		}
	}
	return found
}

// firstExisting probes each path in order and returns the first one present.
func firstExisting(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, paths ...string) (string, bool) {
	for _, p := range paths {
		if gw.FileExists(ctx, repo, p) {
			return p, true
		}
	}
	return "", false
}

// defaultBranch resolves the repository's default branch, falling back to
// main when metadata is unavailable or silent about it.
func defaultBranch(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef) string {
	meta, err := gw.Metadata(ctx, repo)
	if err != nil || meta.DefaultBranch == "" {
		return "main"
	}
	return meta.DefaultBranch
}

func isYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}
