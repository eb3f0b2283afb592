package engine

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
	"pipeaudit/internal/score"
)

var testRepo = gateway.RepoRef{Owner: "octocat", Name: "hello-world"}

// stubGateway only needs Metadata for validation; the stub evaluators
// below never touch the gateway.
type stubGateway struct {
	metaErr error
}

func (g *stubGateway) Metadata(ctx context.Context, repo gateway.RepoRef) (*gateway.Metadata, error) {
	if g.metaErr != nil {
		return nil, g.metaErr
	}
	return &gateway.Metadata{FullName: repo.FullName(), DefaultBranch: "main"}, nil
}

func (g *stubGateway) ListWorkflowFiles(ctx context.Context, repo gateway.RepoRef) ([]gateway.WorkflowFile, error) {
	return nil, nil
}

func (g *stubGateway) FileText(ctx context.Context, repo gateway.RepoRef, path string) (string, error) {
	return "", nil
}

func (g *stubGateway) FileExists(ctx context.Context, repo gateway.RepoRef, path string) bool {
	return false
}

func (g *stubGateway) WorkflowText(ctx context.Context, repo gateway.RepoRef) (string, error) {
	return "", nil
}

func (g *stubGateway) BranchProtection(ctx context.Context, repo gateway.RepoRef, branch string) (*gateway.Protection, error) {
	return nil, nil
}

func (g *stubGateway) ListWorkflowRuns(ctx context.Context, repo gateway.RepoRef, branch string, limit int) ([]gateway.WorkflowRun, error) {
	return nil, nil
}

func (g *stubGateway) ListReleases(ctx context.Context, repo gateway.RepoRef, limit int) ([]gateway.Release, error) {
	return nil, nil
}

func (g *stubGateway) ListCommits(ctx context.Context, repo gateway.RepoRef, limit int) ([]gateway.Commit, error) {
	return nil, nil
}

type stubEvaluator struct {
	id    checks.ID
	build func(checks.Check) checks.Result
}

func (e *stubEvaluator) ID() checks.ID { return e.id }
func (e *stubEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	return e.build(check)
}

type slowEvaluator struct {
	id    checks.ID
	delay time.Duration
}

func (e *slowEvaluator) ID() checks.ID { return e.id }
func (e *slowEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	time.Sleep(e.delay)
	return checks.Passed(check, "eventually fine")
}

// The engine test binary registers a handful of synthetic evaluators;
// every other catalog entry exercises the not-implemented path.
func init() {
	checks.Register(&stubEvaluator{id: checks.PipelineExists, build: func(c checks.Check) checks.Result {
		return checks.Passed(c, "workflows found")
	}})
	checks.Register(&stubEvaluator{id: checks.TestsExist, build: func(c checks.Check) checks.Result {
		return checks.Failed(c, "no tests", "add tests")
	}})
	checks.Register(&stubEvaluator{id: checks.BranchProtection, build: func(c checks.Check) checks.Result {
		return checks.Warning(c, 5, "partial", "tighten")
	}})
	checks.Register(&stubEvaluator{id: checks.SecurityScan, build: func(c checks.Check) checks.Result {
		return checks.Skipped(c, "unreachable")
	}})
	checks.Register(&slowEvaluator{id: checks.GitignoreExists, delay: 20 * time.Millisecond})
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("expected error for nil gateway")
	}
	if _, err := New(&stubGateway{}, WithConcurrency(0)); err == nil {
		t.Error("expected error for zero concurrency")
	}
	if _, err := New(&stubGateway{}, WithCheckTimeout(-time.Second)); err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestAnalyzeReportShape(t *testing.T) {
	a, err := New(&stubGateway{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := a.Analyze(context.Background(), testRepo)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.Repository != "octocat/hello-world" {
		t.Errorf("unexpected repository %q", report.Repository)
	}

	var flat []checks.Result
	for _, cat := range report.Categories {
		flat = append(flat, cat.Results...)
	}
	catalog := checks.All()
	if len(flat) != len(catalog) {
		t.Fatalf("expected %d results, got %d", len(catalog), len(flat))
	}
	for i, res := range flat {
		if res.Check.ID != catalog[i].ID {
			t.Fatalf("position %d: expected %s, got %s", i, catalog[i].ID, res.Check.ID)
		}
	}

	// 5/5 + 0/10 + 5/10 + 5/5; the skipped and unimplemented checks
	// contribute to neither side.
	if report.TotalScore != 15 || report.MaxScore != 30 {
		t.Errorf("expected 15/30, got %d/%d", report.TotalScore, report.MaxScore)
	}

	var earned, max int
	for _, cat := range report.Categories {
		earned += cat.Earned
		max += cat.Max
	}
	if earned != report.TotalScore || max != report.MaxScore {
		t.Errorf("category sums (%d/%d) disagree with totals (%d/%d)", earned, max, report.TotalScore, report.MaxScore)
	}
}

func TestAnalyzeUnimplementedChecksSkip(t *testing.T) {
	a, err := New(&stubGateway{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := a.Analyze(context.Background(), testRepo)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for _, cat := range report.Categories {
		for _, res := range cat.Results {
			if res.Check.ID == checks.ReadmeExists {
				if res.Status != checks.StatusSkip {
					t.Fatalf("expected SKIP for unregistered check, got %v", res.Status)
				}
				if res.Detail != "check not implemented" {
					t.Fatalf("unexpected skip reason %q", res.Detail)
				}
				return
			}
		}
	}
	t.Fatal("readme_exists missing from report")
}

func TestAnalyzeUnreachableRepo(t *testing.T) {
	tests := []struct {
		name           string
		metaErr        error
		expectedReason string
	}{
		{
			name:           "Not found",
			metaErr:        &gateway.APIError{Op: "metadata", Repo: "octocat/hello-world", Kind: gateway.KindNotFound, Err: errors.New("404")},
			expectedReason: ReasonNotFound,
		},
		{
			name:           "Unauthorized",
			metaErr:        &gateway.APIError{Op: "metadata", Repo: "octocat/hello-world", Kind: gateway.KindUnauthorized, Err: errors.New("401")},
			expectedReason: ReasonNoAccess,
		},
		{
			name:           "Network trouble",
			metaErr:        &gateway.APIError{Op: "metadata", Repo: "octocat/hello-world", Kind: gateway.KindNetwork, Err: errors.New("connection reset")},
			expectedReason: ReasonNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(&stubGateway{metaErr: tt.metaErr})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			report, err := a.Analyze(context.Background(), testRepo)
			if report != nil {
				t.Error("expected no report for unreachable repo")
			}
			var unreachable *RepoUnreachableError
			if !errors.As(err, &unreachable) {
				t.Fatalf("expected RepoUnreachableError, got %v", err)
			}
			if unreachable.Reason != tt.expectedReason {
				t.Errorf("expected reason %s, got %s", tt.expectedReason, unreachable.Reason)
			}
		})
	}
}

func TestAnalyzeCheckTimeout(t *testing.T) {
	a, err := New(&stubGateway{}, WithCheckTimeout(5*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := a.Analyze(context.Background(), testRepo)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for _, cat := range report.Categories {
		for _, res := range cat.Results {
			if res.Check.ID != checks.GitignoreExists {
				continue
			}
			if res.Status != checks.StatusSkip {
				t.Fatalf("expected slow check to skip, got %v", res.Status)
			}
			if !strings.Contains(res.Detail, "timed out") {
				t.Fatalf("expected timeout reason, got %q", res.Detail)
			}
			return
		}
	}
	t.Fatal("gitignore_exists missing from report")
}

func TestAnalyzeCanceledContext(t *testing.T) {
	a, err := New(&stubGateway{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := a.Analyze(ctx, testRepo)
	if report != nil {
		t.Error("expected no report after cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	run := func() *score.Report {
		a, err := New(&stubGateway{})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		a.now = func() time.Time { return fixed }

		report, err := a.Analyze(context.Background(), testRepo)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		return report
	}

	if first, second := run(), run(); !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different reports")
	}
}
