package checks

// catalog is the fixed check table. Per-category weights sum to the budget
// in categoryBudgets; TestCatalogWeights enforces this.
var catalog = []Check{
	// Fundamentals
	{ID: PipelineExists, Name: "CI pipeline exists", Description: "At least one workflow YAML file is present under .github/workflows/", Category: CategoryFundamentals, Weight: 5},
	{ID: PipelineGreen, Name: "Latest pipeline is green", Description: "The most recent workflow run on the default branch succeeded", Category: CategoryFundamentals, Weight: 5},
	{ID: TestsExist, Name: "Tests run in CI", Description: "A test step is configured in the pipeline", Category: CategoryFundamentals, Weight: 10},
	{ID: TestsPass, Name: "Tests pass on latest run", Description: "The pipeline has a test step and the latest run succeeded", Category: CategoryFundamentals, Weight: 10},
	{ID: LintInCI, Name: "Linting runs in CI", Description: "A lint or format step is configured in the pipeline", Category: CategoryFundamentals, Weight: 5},
	{ID: DockerfileExists, Name: "Dockerfile present", Description: "A Dockerfile exists at the repository root", Category: CategoryFundamentals, Weight: 5},
	{ID: DockerBuildCI, Name: "Docker image built in CI", Description: "The pipeline includes a Docker build step", Category: CategoryFundamentals, Weight: 5},
	{ID: NoSecretsInCode, Name: "No hardcoded secrets in workflows", Description: "No secret-looking tokens detected in workflow files", Category: CategoryFundamentals, Weight: 10},
	{ID: ReadmeExists, Name: "README present", Description: "A README.md exists at the repository root", Category: CategoryFundamentals, Weight: 5},

	// Intermediate
	{ID: SecurityScan, Name: "Security scanning in CI", Description: "A security scanner (Trivy, Snyk, CodeQL, ...) runs in the pipeline", Category: CategoryIntermediate, Weight: 10},
	{ID: CoverageConfigured, Name: "Coverage reporting configured", Description: "Code coverage is collected or uploaded by the pipeline", Category: CategoryIntermediate, Weight: 10},
	{ID: DependabotConfigured, Name: "Dependency update automation", Description: "Dependabot or Renovate configuration is present", Category: CategoryIntermediate, Weight: 10},
	{ID: QualityGate, Name: "Quality gate wired into CI", Description: "A code quality gate (SonarQube, CodeClimate, ...) runs in the pipeline", Category: CategoryIntermediate, Weight: 10},
	{ID: CICache, Name: "CI dependency caching", Description: "The pipeline caches dependencies or build layers between runs", Category: CategoryIntermediate, Weight: 5},
	{ID: MatrixTesting, Name: "Matrix testing strategy", Description: "The pipeline tests against a version or platform matrix", Category: CategoryIntermediate, Weight: 5},
	{ID: ConventionalCommits, Name: "Conventional commit messages", Description: "Recent commit messages follow the Conventional Commits format", Category: CategoryIntermediate, Weight: 5},

	// Advanced
	{ID: BranchProtection, Name: "Default branch protection", Description: "The default branch is protected and requires pull request reviews", Category: CategoryAdvanced, Weight: 10},
	{ID: PipelineFast, Name: "Pipeline completes quickly", Description: "The average duration of recent runs is under five minutes", Category: CategoryAdvanced, Weight: 5},
	{ID: MultiEnvironment, Name: "Multiple deploy environments", Description: "The pipeline handles several environments (staging, production, ...)", Category: CategoryAdvanced, Weight: 10},
	{ID: AutoDeploy, Name: "Automated deployment on push", Description: "A deployment runs automatically on push or merge to the default branch", Category: CategoryAdvanced, Weight: 10},
	{ID: ReleaseTagging, Name: "Releases are tagged", Description: "The repository publishes tagged releases", Category: CategoryAdvanced, Weight: 5},
	{ID: SmokeTests, Name: "Smoke or e2e tests", Description: "Smoke, e2e or post-deploy tests run in the pipeline", Category: CategoryAdvanced, Weight: 10},
	{ID: RollbackStrategy, Name: "Rollback strategy", Description: "A rollback or revert path is automated for deployments", Category: CategoryAdvanced, Weight: 5},
	{ID: AutoChangelog, Name: "Changelog automation", Description: "Changelog generation is automated or kept up to date", Category: CategoryAdvanced, Weight: 5},

	// Bonus
	{ID: CodeownersExists, Name: "CODEOWNERS present", Description: "A CODEOWNERS file is configured", Category: CategoryBonus, Weight: 5},
	{ID: GitignoreExists, Name: ".gitignore present", Description: "A .gitignore file is configured", Category: CategoryBonus, Weight: 5},
	{ID: CINotifications, Name: "CI failure notifications", Description: "The pipeline notifies a channel (Slack, Discord, ...) about outcomes", Category: CategoryBonus, Weight: 5},
	{ID: ReusableWorkflows, Name: "Reusable workflows", Description: "Workflows are factored into reusable, callable units", Category: CategoryBonus, Weight: 5},
	{ID: GHCRPublished, Name: "Image published to GHCR", Description: "The pipeline publishes a container image to GitHub Container Registry", Category: CategoryBonus, Weight: 5},
}

var categoryBudgets = map[Category]int{
	CategoryFundamentals: 60,
	CategoryIntermediate: 55,
	CategoryAdvanced:     60,
	CategoryBonus:        25,
}

// All returns the catalog in display order. The returned slice is a copy;
// callers cannot mutate the catalog.
func All() []Check {
	out := make([]Check, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a single catalog entry.
func ByID(id ID) (Check, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Check{}, false
}

// Budget returns the target point total for a category.
func Budget(cat Category) int {
	return categoryBudgets[cat]
}
