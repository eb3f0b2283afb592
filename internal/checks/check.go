package checks

// ID identifies a check in the catalog. Dispatch from catalog entry to
// evaluator goes through this type, never through raw strings.
type ID string

const (
	PipelineExists        ID = "pipeline_exists"
	PipelineGreen         ID = "pipeline_green"
	TestsExist            ID = "tests_exist"
	TestsPass             ID = "tests_pass"
	LintInCI              ID = "lint_in_ci"
	DockerfileExists      ID = "dockerfile_exists"
	DockerBuildCI         ID = "docker_build_ci"
	NoSecretsInCode       ID = "no_secrets_in_code"
	ReadmeExists          ID = "readme_exists"
	SecurityScan          ID = "security_scan"
	CoverageConfigured    ID = "coverage_configured"
	DependabotConfigured  ID = "dependabot_configured"
	QualityGate           ID = "quality_gate"
	CICache               ID = "ci_cache"
	MatrixTesting         ID = "matrix_testing"
	ConventionalCommits   ID = "conventional_commits"
	BranchProtection      ID = "branch_protection"
	PipelineFast          ID = "pipeline_fast"
	MultiEnvironment      ID = "multi_environment"
	AutoDeploy            ID = "auto_deploy"
	ReleaseTagging        ID = "release_tagging"
	SmokeTests            ID = "smoke_tests"
	RollbackStrategy      ID = "rollback_strategy"
	AutoChangelog         ID = "auto_changelog"
	CodeownersExists      ID = "codeowners_exists"
	GitignoreExists       ID = "gitignore_exists"
	CINotifications       ID = "ci_notifications"
	ReusableWorkflows     ID = "reusable_workflows"
	GHCRPublished         ID = "ghcr_published"
)

type Category string

const (
	CategoryFundamentals Category = "Fundamentals"
	CategoryIntermediate Category = "Intermediate"
	CategoryAdvanced     Category = "Advanced"
	CategoryBonus        Category = "Bonus"
)

// Categories returns the display order used when grouping results.
func Categories() []Category {
	return []Category{
		CategoryFundamentals,
		CategoryIntermediate,
		CategoryAdvanced,
		CategoryBonus,
	}
}

// Check is a catalog entry. Weight is the number of points the check is
// worth when it passes in full.
type Check struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Weight      int      `json:"weight"`
}
