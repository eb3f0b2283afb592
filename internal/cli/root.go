package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pipeaudit/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var (
	verbose bool
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "pipeaudit",
	Short: "Audit the CI/CD maturity of GitHub repositories",
	Long: `PipeAudit inspects a GitHub repository through the API and scores its
CI/CD maturity against a fixed catalog of checks, from "has a pipeline
at all" to "can roll a deployment back automatically".

PipeAudit is read-only: it never mutates the repository it audits.

Examples:
	# Show available commands and global flags
	pipeaudit --help

	# Audit a repository
	pipeaudit analyze octocat/hello-world

	# List the check catalog
	pipeaudit checks list

	# Serve the analyzer as an HTTP API
	pipeaudit serve --addr :8080

	# Print build info
	pipeaudit version

Output:
	By default, analyze writes a human-readable report to stdout.
	Structured output goes to files via --out (json or yaml) and
	--report (Markdown); see "pipeaudit analyze --help".`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, flags.FlagVerbose, false, "Enable verbose logging (prints every GitHub API call and full error details)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, flags.FlagConfig, "", "Config file (default ~/.config/pipeaudit/config.yaml)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
