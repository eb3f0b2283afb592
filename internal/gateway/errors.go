package gateway

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindRateLimited  ErrorKind = "rate_limited"
	KindNetwork      ErrorKind = "network"
)

// APIError is the typed failure returned by gateway operations. Callers
// branch on Kind (or the Is* helpers) to tell "the audited thing is
// absent" apart from "could not determine".
type APIError struct {
	Op   string
	Repo string
	Kind ErrorKind
	Err  error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s for %s: %v", e.Op, e.Repo, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func errorKind(err error) (ErrorKind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	k, ok := errorKind(err)
	return ok && k == KindNotFound
}

func IsUnauthorized(err error) bool {
	k, ok := errorKind(err)
	return ok && k == KindUnauthorized
}

func IsRateLimited(err error) bool {
	k, ok := errorKind(err)
	return ok && k == KindRateLimited
}
