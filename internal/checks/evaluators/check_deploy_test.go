package evaluators

import (
	"context"
	"testing"
	"time"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

func TestAutoDeployEvaluator_Evaluate(t *testing.T) {
	tests := []struct {
		name           string
		workflow       string
		expectedStatus checks.Status
	}{
		{
			name:           "Pass - Deploy step on push trigger",
			workflow:       "on:\n  push:\n    branches: [main]\njobs:\n  ship:\n    steps:\n      - run: ./deploy.sh",
			expectedStatus: checks.StatusPass,
		},
		{
			name:           "Pass - Inline push list",
			workflow:       "on: [push]\njobs:\n  ship:\n    steps:\n      - run: vercel --prod",
			expectedStatus: checks.StatusPass,
		},
		{
			name:           "Warn - Deploy tooling without push trigger",
			workflow:       "on:\n  workflow_dispatch:\njobs:\n  ship:\n    steps:\n      - run: ./deploy.sh",
			expectedStatus: checks.StatusWarn,
		},
		{
			name:           "Fail - No deployment automation",
			workflow:       "on:\n  push:\n    branches: [main]\njobs:\n  ci:\n    steps:\n      - run: make build",
			expectedStatus: checks.StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := mustCheck(t, checks.AutoDeploy)
			gw := &fakeGateway{workflow: tt.workflow}

			result := (&AutoDeployEvaluator{}).Evaluate(context.Background(), gw, testRepo, check)
			if result.Status != tt.expectedStatus {
				t.Fatalf("expected status %v, got %v (detail: %s)", tt.expectedStatus, result.Status, result.Detail)
			}
		})
	}
}

func TestReleaseTaggingEvaluator_Evaluate(t *testing.T) {
	published := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		gw             *fakeGateway
		expectedStatus checks.Status
	}{
		{
			name: "Pass - Published releases",
			gw: &fakeGateway{releases: []gateway.Release{
				{Tag: "v1.2.0", Name: "1.2.0", PublishedAt: published},
			}},
			expectedStatus: checks.StatusPass,
		},
		{
			name: "Warn - Release tooling but nothing published",
			gw: &fakeGateway{
				workflow: "steps:\n  - uses: googleapis/release-please-action@v4",
			},
			expectedStatus: checks.StatusWarn,
		},
		{
			name: "Warn - Tooling wins even when the release list is unreadable",
			gw: &fakeGateway{
				releasesErr: unauthorized("releases"),
				workflow:    "steps:\n  - run: gh release create v1.0.0",
			},
			expectedStatus: checks.StatusWarn,
		},
		{
			name:           "Skip - No tooling and releases unreadable",
			gw:             &fakeGateway{releasesErr: networkFailure("releases")},
			expectedStatus: checks.StatusSkip,
		},
		{
			name:           "Fail - No releases and no automation",
			gw:             &fakeGateway{},
			expectedStatus: checks.StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := mustCheck(t, checks.ReleaseTagging)
			result := (&ReleaseTaggingEvaluator{}).Evaluate(context.Background(), tt.gw, testRepo, check)
			if result.Status != tt.expectedStatus {
				t.Fatalf("expected status %v, got %v (detail: %s)", tt.expectedStatus, result.Status, result.Detail)
			}
		})
	}
}

func TestRollbackStrategyEvaluator_Evaluate(t *testing.T) {
	tests := []struct {
		name           string
		gw             *fakeGateway
		expectedStatus checks.Status
	}{
		{
			name: "Pass - Dedicated rollback workflow file",
			gw: &fakeGateway{
				contents: map[string]string{".github/workflows/rollback.yml": "name: rollback"},
			},
			expectedStatus: checks.StatusPass,
		},
		{
			name:           "Pass - Rollback step in pipeline",
			gw:             &fakeGateway{workflow: "jobs:\n  rollback:\n    steps:\n      - run: ./rollback.sh"},
			expectedStatus: checks.StatusPass,
		},
		{
			name:           "Pass - Dispatchable revert workflow",
			gw:             &fakeGateway{workflow: "on:\n  workflow_dispatch:\njobs:\n  undo:\n    steps:\n      - run: git revert HEAD"},
			expectedStatus: checks.StatusPass,
		},
		{
			name:           "Warn - Manual dispatch without revert step",
			gw:             &fakeGateway{workflow: "on:\n  workflow_dispatch:\njobs:\n  ship:\n    steps:\n      - run: make ship"},
			expectedStatus: checks.StatusWarn,
		},
		{
			name:           "Fail - No rollback mechanism",
			gw:             &fakeGateway{workflow: "jobs:\n  ci:\n    steps:\n      - run: make build"},
			expectedStatus: checks.StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := mustCheck(t, checks.RollbackStrategy)
			result := (&RollbackStrategyEvaluator{}).Evaluate(context.Background(), tt.gw, testRepo, check)
			if result.Status != tt.expectedStatus {
				t.Fatalf("expected status %v, got %v (detail: %s)", tt.expectedStatus, result.Status, result.Detail)
			}
		})
	}
}

func TestAutoChangelogEvaluator_Evaluate(t *testing.T) {
	tests := []struct {
		name           string
		gw             *fakeGateway
		expectedStatus checks.Status
	}{
		{
			name:           "Pass - Changelog automation in CI",
			gw:             &fakeGateway{workflow: "steps:\n  - uses: googleapis/release-please-action@v4"},
			expectedStatus: checks.StatusPass,
		},
		{
			name: "Pass - Maintained CHANGELOG with versioned sections",
			gw: &fakeGateway{
				contents: map[string]string{
					"CHANGELOG.md": "# Changelog\n\n## [1.1.0] - 2025-05-01\n- stuff\n\n## [1.0.0] - 2025-04-01\n- initial",
				},
			},
			expectedStatus: checks.StatusPass,
		},
		{
			name: "Fail - CHANGELOG without versioned sections",
			gw: &fakeGateway{
				contents: map[string]string{"CHANGELOG.md": "random notes\nmore notes"},
			},
			expectedStatus: checks.StatusFail,
		},
		{
			name:           "Fail - No automation and no changelog",
			gw:             &fakeGateway{},
			expectedStatus: checks.StatusFail,
		},
		{
			name: "Skip - Changelog unreadable for non-404 reasons",
			gw: &fakeGateway{
				contentErr: map[string]error{"CHANGELOG.md": networkFailure("file:CHANGELOG.md")},
			},
			expectedStatus: checks.StatusSkip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := mustCheck(t, checks.AutoChangelog)
			result := (&AutoChangelogEvaluator{}).Evaluate(context.Background(), tt.gw, testRepo, check)
			if result.Status != tt.expectedStatus {
				t.Fatalf("expected status %v, got %v (detail: %s)", tt.expectedStatus, result.Status, result.Detail)
			}
		})
	}
}
