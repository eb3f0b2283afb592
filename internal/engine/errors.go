package engine

import "fmt"

// Unreachable reasons, surfaced to the CLI and the HTTP API.
const (
	ReasonNotFound = "not-found"
	ReasonNoAccess = "private-or-no-token"
	ReasonNetwork  = "network"
)

// RepoUnreachableError means the target repository could not be
// validated, so no checks ran and no report exists.
type RepoUnreachableError struct {
	Repo   string
	Reason string
	Err    error
}

func (e *RepoUnreachableError) Error() string {
	switch e.Reason {
	case ReasonNotFound:
		return fmt.Sprintf("repository %s not found (it may be private and invisible to the token)", e.Repo)
	case ReasonNoAccess:
		return fmt.Sprintf("repository %s is not accessible with the current token", e.Repo)
	default:
		return fmt.Sprintf("repository %s unreachable: %v", e.Repo, e.Err)
	}
}

func (e *RepoUnreachableError) Unwrap() error {
	return e.Err
}
