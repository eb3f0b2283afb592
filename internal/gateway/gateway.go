package gateway

import (
	"context"
	"time"
)

// Metadata is the subset of repository metadata the checks consume.
type Metadata struct {
	FullName      string
	Description   string
	DefaultBranch string
	Language      string
	Stars         int
	Private       bool
}

type WorkflowFile struct {
	Name string
	Path string
}

// Protection describes the protection state of one branch.
type Protection struct {
	RequiresReviews   bool
	RequiredApprovals int
	EnforceAdmins     bool
	RequiredChecks    []string
}

// WorkflowRun summarizes one Actions run. Conclusion is empty while the
// run is still in flight; StartedAt/UpdatedAt are zero when the API did
// not report them.
type WorkflowRun struct {
	ID         int64
	Name       string
	Status     string
	Conclusion string
	StartedAt  time.Time
	UpdatedAt  time.Time
}

type Release struct {
	Tag         string
	Name        string
	PublishedAt time.Time
}

type Commit struct {
	SHA     string
	Message string
}

// Gateway is the boundary to the hosting API. Evaluators and the engine
// depend on this interface only; the concrete client (REST, cached,
// budgeted) and test fakes both satisfy it.
//
// Operations return *APIError for API-level failures so callers can
// distinguish not-found from unauthorized from transport trouble.
// FileExists is the deliberate exception: a pure existence probe that
// swallows errors and reports false.
type Gateway interface {
	Metadata(ctx context.Context, repo RepoRef) (*Metadata, error)

	// ListWorkflowFiles lists entries of .github/workflows. A missing
	// directory surfaces as a NotFound APIError.
	ListWorkflowFiles(ctx context.Context, repo RepoRef) ([]WorkflowFile, error)

	FileText(ctx context.Context, repo RepoRef, path string) (string, error)
	FileExists(ctx context.Context, repo RepoRef, path string) bool

	// WorkflowText returns the concatenated text of every workflow YAML
	// file. A repository without a workflow directory yields "", nil.
	WorkflowText(ctx context.Context, repo RepoRef) (string, error)

	BranchProtection(ctx context.Context, repo RepoRef, branch string) (*Protection, error)

	// ListWorkflowRuns returns the most recent runs, newest first. An
	// empty branch selects runs from all branches.
	ListWorkflowRuns(ctx context.Context, repo RepoRef, branch string, limit int) ([]WorkflowRun, error)

	ListReleases(ctx context.Context, repo RepoRef, limit int) ([]Release, error)
	ListCommits(ctx context.Context, repo RepoRef, limit int) ([]Commit, error)
}
