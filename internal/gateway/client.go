package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	gh "pipeaudit/internal/github"

	"github.com/google/go-github/v68/github"
)

const workflowDir = ".github/workflows"

// Client implements Gateway over the GitHub REST API. Every call passes
// through the request budget first and lands in the response cache, so
// evaluators running in parallel against the same repository share
// fetches instead of repeating them.
type Client struct {
	gh     *gh.Client
	budget *RequestBudget
	cache  *Cache
}

func NewClient(client *gh.Client) *Client {
	return &Client{
		gh:     client,
		budget: NewRequestBudget(),
		cache:  NewCache(),
	}
}

func (c *Client) Budget() *RequestBudget {
	return c.budget
}

func (c *Client) Metadata(ctx context.Context, repo RepoRef) (*Metadata, error) {
	val, err := c.cached(ctx, repo, "metadata", func() (any, error) {
		r, resp, err := c.gh.Client.Repositories.Get(ctx, repo.Owner, repo.Name)
		c.observe(resp)
		if err != nil {
			return nil, c.wrap("get repo metadata", repo, resp, err)
		}
		return &Metadata{
			FullName:      r.GetFullName(),
			Description:   r.GetDescription(),
			DefaultBranch: r.GetDefaultBranch(),
			Language:      r.GetLanguage(),
			Stars:         r.GetStargazersCount(),
			Private:       r.GetPrivate(),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*Metadata), nil
}

func (c *Client) ListWorkflowFiles(ctx context.Context, repo RepoRef) ([]WorkflowFile, error) {
	val, err := c.cached(ctx, repo, "workflow_files", func() (any, error) {
		_, dir, resp, err := c.gh.Client.Repositories.GetContents(ctx, repo.Owner, repo.Name, workflowDir, nil)
		c.observe(resp)
		if err != nil {
			return nil, c.wrap("list workflow files", repo, resp, err)
		}
		files := make([]WorkflowFile, 0, len(dir))
		for _, entry := range dir {
			if entry.GetType() != "file" {
				continue
			}
			files = append(files, WorkflowFile{Name: entry.GetName(), Path: entry.GetPath()})
		}
		sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
		return files, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]WorkflowFile), nil
}

func (c *Client) FileText(ctx context.Context, repo RepoRef, path string) (string, error) {
	val, err := c.cached(ctx, repo, "file:"+path, func() (any, error) {
		file, _, resp, err := c.gh.Client.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, nil)
		c.observe(resp)
		if err != nil {
			return nil, c.wrap("get file "+path, repo, resp, err)
		}
		if file == nil {
			return nil, &APIError{
				Op:   "get file " + path,
				Repo: repo.FullName(),
				Kind: KindNotFound,
				Err:  fmt.Errorf("%s is a directory", path),
			}
		}
		text, err := file.GetContent()
		if err != nil {
			return nil, fmt.Errorf("decode %s content for %s: %w", path, repo.FullName(), err)
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

func (c *Client) FileExists(ctx context.Context, repo RepoRef, path string) bool {
	_, err := c.FileText(ctx, repo, path)
	return err == nil
}

func (c *Client) WorkflowText(ctx context.Context, repo RepoRef) (string, error) {
	val, err := c.cache.Do(cacheKey(repo, "workflow_text"), func() (any, error) {
		files, err := c.ListWorkflowFiles(ctx, repo)
		if err != nil {
			if IsNotFound(err) {
				return "", nil
			}
			return nil, err
		}
		var sb strings.Builder
		for _, f := range files {
			if !isYAMLFile(f.Name) {
				continue
			}
			text, err := c.FileText(ctx, repo, f.Path)
			if err != nil {
				if IsNotFound(err) {
					continue
				}
				return nil, err
			}
			sb.WriteString(text)
			sb.WriteString("\n")
		}
		return sb.String(), nil
	})
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

func (c *Client) BranchProtection(ctx context.Context, repo RepoRef, branch string) (*Protection, error) {
	val, err := c.cached(ctx, repo, "protection:"+branch, func() (any, error) {
		prot, resp, err := c.gh.Client.Repositories.GetBranchProtection(ctx, repo.Owner, repo.Name, branch)
		c.observe(resp)
		if err != nil {
			return nil, c.wrap("get branch protection", repo, resp, err)
		}
		out := &Protection{}
		if reviews := prot.GetRequiredPullRequestReviews(); reviews != nil {
			out.RequiresReviews = true
			out.RequiredApprovals = reviews.RequiredApprovingReviewCount
		}
		if ea := prot.GetEnforceAdmins(); ea != nil {
			out.EnforceAdmins = ea.Enabled
		}
		if rsc := prot.GetRequiredStatusChecks(); rsc != nil {
			out.RequiredChecks = rsc.GetContexts()
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*Protection), nil
}

func (c *Client) ListWorkflowRuns(ctx context.Context, repo RepoRef, branch string, limit int) ([]WorkflowRun, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("runs:%s:%d", branch, limit)
	val, err := c.cached(ctx, repo, key, func() (any, error) {
		opts := &github.ListWorkflowRunsOptions{
			Branch:      branch,
			ListOptions: github.ListOptions{PerPage: limit},
		}
		runs, resp, err := c.gh.Client.Actions.ListRepositoryWorkflowRuns(ctx, repo.Owner, repo.Name, opts)
		c.observe(resp)
		if err != nil {
			return nil, c.wrap("list workflow runs", repo, resp, err)
		}
		out := make([]WorkflowRun, 0, len(runs.WorkflowRuns))
		for _, r := range runs.WorkflowRuns {
			out = append(out, WorkflowRun{
				ID:         r.GetID(),
				Name:       r.GetName(),
				Status:     r.GetStatus(),
				Conclusion: r.GetConclusion(),
				StartedAt:  r.GetRunStartedAt().Time,
				UpdatedAt:  r.GetUpdatedAt().Time,
			})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]WorkflowRun), nil
}

func (c *Client) ListReleases(ctx context.Context, repo RepoRef, limit int) ([]Release, error) {
	if limit <= 0 {
		limit = 5
	}
	key := fmt.Sprintf("releases:%d", limit)
	val, err := c.cached(ctx, repo, key, func() (any, error) {
		releases, resp, err := c.gh.Client.Repositories.ListReleases(ctx, repo.Owner, repo.Name, &github.ListOptions{PerPage: limit})
		c.observe(resp)
		if err != nil {
			return nil, c.wrap("list releases", repo, resp, err)
		}
		out := make([]Release, 0, len(releases))
		for _, r := range releases {
			out = append(out, Release{
				Tag:         r.GetTagName(),
				Name:        r.GetName(),
				PublishedAt: r.GetPublishedAt().Time,
			})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]Release), nil
}

func (c *Client) ListCommits(ctx context.Context, repo RepoRef, limit int) ([]Commit, error) {
	if limit <= 0 {
		limit = 20
	}
	key := fmt.Sprintf("commits:%d", limit)
	val, err := c.cached(ctx, repo, key, func() (any, error) {
		commits, resp, err := c.gh.Client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, &github.CommitsListOptions{
			ListOptions: github.ListOptions{PerPage: limit},
		})
		c.observe(resp)
		if err != nil {
			return nil, c.wrap("list commits", repo, resp, err)
		}
		out := make([]Commit, 0, len(commits))
		for _, cm := range commits {
			out = append(out, Commit{
				SHA:     cm.GetSHA(),
				Message: cm.GetCommit().GetMessage(),
			})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]Commit), nil
}

// cached wraps one budgeted REST call in the cache/singleflight path.
func (c *Client) cached(ctx context.Context, repo RepoRef, op string, fetch func() (any, error)) (any, error) {
	return c.cache.Do(cacheKey(repo, op), func() (any, error) {
		if err := c.budget.Acquire(ctx); err != nil {
			return nil, err
		}
		return fetch()
	})
}

func (c *Client) observe(resp *github.Response) {
	if resp != nil {
		c.budget.UpdateFromResponse(resp.Response)
	}
}

func (c *Client) wrap(op string, repo RepoRef, resp *github.Response, err error) error {
	kind := KindNetwork
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		kind = KindRateLimited
	case resp != nil && resp.StatusCode == http.StatusNotFound:
		kind = KindNotFound
	case resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden):
		kind = KindUnauthorized
	}
	return &APIError{Op: op, Repo: repo.FullName(), Kind: kind, Err: err}
}

func cacheKey(repo RepoRef, op string) string {
	return strings.ToLower(repo.FullName()) + ":" + op
}

func isYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}
