package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var securityScanKeywords = []string{
	"trivy", "snyk", "bandit", "safety", "codeql", "semgrep",
	"sonarcloud", "sonarqube", "dependabot", "grype", "anchore",
	"checkov", "tfsec",
}

type SecurityScanEvaluator struct{}

func (e *SecurityScanEvaluator) ID() checks.ID {
	return checks.SecurityScan
}

func (e *SecurityScanEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}

	hits := matchAny(strings.ToLower(text), securityScanKeywords)
	if len(hits) == 0 {
		return checks.Failed(check, "no security scanner detected in CI",
			"Add a scanner such as Trivy, CodeQL or Snyk to the pipeline")
	}
	return checks.Passed(check, "security tooling detected: "+strings.Join(hits, ", "))
}

func init() {
	checks.Register(&SecurityScanEvaluator{})
}
