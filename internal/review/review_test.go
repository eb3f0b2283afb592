package review

import (
	"strings"
	"testing"
	"time"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/score"
)

func testReport(t *testing.T) *score.Report {
	t.Helper()
	entry := func(id checks.ID) checks.Check {
		c, ok := checks.ByID(id)
		if !ok {
			t.Fatalf("check %s not in catalog", id)
		}
		return c
	}

	results := []checks.Result{
		checks.Passed(entry(checks.PipelineExists), "1 workflow(s): ci.yml"),
		checks.Failed(entry(checks.TestsExist), "no test step in CI", "Add a test step"),
		checks.Warning(entry(checks.BranchProtection), 5, "protected but no required reviews", "Require reviews"),
	}
	return score.Build("octocat/hello-world", results, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestBuildPrompt(t *testing.T) {
	t.Run("with workflow text", func(t *testing.T) {
		system, user := buildPrompt(testReport(t), "name: CI\non: push\n")

		if !strings.Contains(system, "DevOps") {
			t.Errorf("system prompt missing role: %q", system)
		}
		if !strings.Contains(system, "JSON") {
			t.Errorf("system prompt missing JSON instruction: %q", system)
		}

		for _, want := range []string{
			"octocat/hello-world",
			"## Flagged checks (2)",
			"Tests run in CI",
			"no test step in CI",
			"Default branch protection",
			"name: CI",
			`"summary"`,
			`"recommendations"`,
			`"priority"`,
		} {
			if !strings.Contains(user, want) {
				t.Errorf("user prompt missing %q", want)
			}
		}
	})

	t.Run("without workflow text", func(t *testing.T) {
		_, user := buildPrompt(testReport(t), "")
		if strings.Contains(user, "```yaml") {
			t.Errorf("user prompt should not carry an empty YAML section")
		}
	})

	t.Run("truncates long workflow text", func(t *testing.T) {
		long := strings.Repeat("x", maxWorkflowChars+500)
		_, user := buildPrompt(testReport(t), long)

		if strings.Contains(user, long) {
			t.Errorf("workflow text was not truncated")
		}
		if !strings.Contains(user, "(truncated)") {
			t.Errorf("truncation marker missing")
		}
	})

	t.Run("clean report", func(t *testing.T) {
		check, ok := checks.ByID(checks.PipelineExists)
		if !ok {
			t.Fatal("pipeline_exists not in catalog")
		}
		report := score.Build("octocat/hello-world", []checks.Result{
			checks.Passed(check, "ok"),
		}, time.Now().UTC())

		_, user := buildPrompt(report, "")
		if !strings.Contains(user, "No failed checks.") {
			t.Errorf("expected clean-report placeholder, got:\n%s", user)
		}
	})
}

func TestParseReview(t *testing.T) {
	const payload = `{
		"summary": "Solid fundamentals, weak delivery automation.",
		"recommendations": [
			{"title": "Add tests to CI", "description": "Wire the test suite into the workflow.", "priority": "high"},
			{"title": "Protect main", "description": "Require reviews.", "priority": "URGENT"}
		]
	}`

	t.Run("plain JSON", func(t *testing.T) {
		review, err := parseReview(payload)
		if err != nil {
			t.Fatalf("parseReview returned error: %v", err)
		}
		if review.Summary != "Solid fundamentals, weak delivery automation." {
			t.Errorf("unexpected summary: %q", review.Summary)
		}
		if len(review.Recommendations) != 2 {
			t.Fatalf("expected 2 recommendations, got %d", len(review.Recommendations))
		}
		if review.Recommendations[0].Priority != "high" {
			t.Errorf("expected priority high, got %q", review.Recommendations[0].Priority)
		}
		// Unknown priorities collapse to medium.
		if review.Recommendations[1].Priority != "medium" {
			t.Errorf("expected priority medium, got %q", review.Recommendations[1].Priority)
		}
	})

	t.Run("fenced JSON", func(t *testing.T) {
		review, err := parseReview("```json\n" + payload + "\n```")
		if err != nil {
			t.Fatalf("parseReview returned error: %v", err)
		}
		if len(review.Recommendations) != 2 {
			t.Fatalf("expected 2 recommendations, got %d", len(review.Recommendations))
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		if _, err := parseReview("I cannot answer that."); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}
