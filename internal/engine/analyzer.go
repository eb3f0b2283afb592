// Package engine orchestrates one analysis run: validate the target,
// fan every catalog check out to its evaluator, and fold the results
// into a score report.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
	"pipeaudit/internal/score"
)

const (
	DefaultConcurrency  = 8
	DefaultCheckTimeout = 15 * time.Second
)

type Analyzer struct {
	gw           gateway.Gateway
	concurrency  int
	checkTimeout time.Duration

	// now is a test seam for the report timestamp.
	now func() time.Time
}

type Option func(*Analyzer)

// WithConcurrency bounds how many evaluators run at once.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) { a.concurrency = n }
}

// WithCheckTimeout bounds each individual evaluator call.
func WithCheckTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.checkTimeout = d }
}

func New(gw gateway.Gateway, opts ...Option) (*Analyzer, error) {
	if gw == nil {
		return nil, errors.New("gateway is nil")
	}
	a := &Analyzer{
		gw:           gw,
		concurrency:  DefaultConcurrency,
		checkTimeout: DefaultCheckTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", a.concurrency)
	}
	if a.checkTimeout <= 0 {
		return nil, fmt.Errorf("check timeout must be positive, got %s", a.checkTimeout)
	}
	return a, nil
}

// Analyze runs the full catalog against one repository.
//
// The repository is validated first; an unreachable target returns a
// *RepoUnreachableError and no report. Evaluators run concurrently
// under the configured bound, each with its own timeout, and their
// results land at the catalog index of their check, so report order is
// catalog order regardless of completion order. If ctx is canceled
// mid-run, Analyze returns the context error and no report.
func (a *Analyzer) Analyze(ctx context.Context, repo gateway.RepoRef) (*score.Report, error) {
	if err := a.validate(ctx, repo); err != nil {
		return nil, err
	}

	catalog := checks.All()
	results := make([]checks.Result, len(catalog))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, a.concurrency)
	var wg sync.WaitGroup

scheduleLoop:
	for i, check := range catalog {
		select {
		case sem <- struct{}{}:
			// acquired
		case <-runCtx.Done():
			break scheduleLoop
		}

		wg.Add(1)
		go func(i int, check checks.Check) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = a.evaluate(runCtx, repo, check)
		}(i, check)
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return score.Build(repo.FullName(), results, a.now().UTC()), nil
}

// validate confirms the repository is reachable before any check runs.
func (a *Analyzer) validate(ctx context.Context, repo gateway.RepoRef) error {
	_, err := a.gw.Metadata(ctx, repo)
	if err == nil {
		return nil
	}

	reason := ReasonNetwork
	switch {
	case gateway.IsNotFound(err):
		reason = ReasonNotFound
	case gateway.IsUnauthorized(err):
		reason = ReasonNoAccess
	}
	return &RepoUnreachableError{Repo: repo.FullName(), Reason: reason, Err: err}
}

func (a *Analyzer) evaluate(ctx context.Context, repo gateway.RepoRef, check checks.Check) checks.Result {
	evaluator, ok := checks.Lookup(check.ID)
	if !ok {
		return checks.Skipped(check, "check not implemented")
	}

	evalCtx, cancel := context.WithTimeout(ctx, a.checkTimeout)
	defer cancel()

	result := evaluator.Evaluate(evalCtx, a.gw, repo, check)
	if err := evalCtx.Err(); err != nil {
		reason := "evaluation canceled"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = fmt.Sprintf("evaluation timed out after %s", a.checkTimeout)
		}
		return checks.Skipped(check, reason)
	}
	return result
}
