package gateway

import (
	"fmt"
	"strings"
)

// RepoRef addresses a single GitHub repository.
type RepoRef struct {
	Owner string
	Name  string
}

func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

func (r RepoRef) String() string {
	return r.FullName()
}

// ParseRepo accepts "owner/repo" or a github.com web URL and returns the
// owner and repository name. Trailing ".git", trailing slashes and path
// segments past the repository name are dropped.
func ParseRepo(s string) (RepoRef, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return RepoRef{}, fmt.Errorf("empty repository reference")
	}

	cleaned := raw
	cleaned = strings.TrimPrefix(cleaned, "https://")
	cleaned = strings.TrimPrefix(cleaned, "http://")
	cleaned = strings.TrimPrefix(cleaned, "www.")
	if idx := strings.Index(cleaned, "github.com/"); idx >= 0 {
		cleaned = cleaned[idx+len("github.com/"):]
	}

	var parts []string
	for _, p := range strings.Split(cleaned, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return RepoRef{}, fmt.Errorf("invalid repository %q: expected owner/repo or a github.com URL", raw)
	}

	name := strings.TrimSuffix(parts[1], ".git")
	if name == "" {
		return RepoRef{}, fmt.Errorf("invalid repository %q: empty repository name", raw)
	}
	return RepoRef{Owner: parts[0], Name: name}, nil
}
