package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pipeaudit/internal/config"
	"pipeaudit/internal/engine"
	"pipeaudit/internal/flags"
	"pipeaudit/internal/gateway"
	gh "pipeaudit/internal/github"
	"pipeaudit/internal/output"
	"pipeaudit/internal/review"
	"pipeaudit/internal/score"
)

var cfg = config.New()

const analyzeHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
	PipeAudit authenticates to GitHub using an access token. Without one it
	runs anonymously against a much lower API rate limit, and private
	repositories and branch protection data stay invisible.

	Sources (in order):
	1) GITHUB_TOKEN environment variable
	2) GH_TOKEN environment variable
	3) GitHub CLI (gh) authentication via gh auth token (if gh is installed and logged in)

  Token guidance (brief):
  - PAT (classic): repo scope to read private repositories and branch
    protection settings.
  - Fine-grained PAT: grant access to the target repository with
    Metadata: Read, Contents: Read and Administration: Read.

  The --review flag additionally needs ANTHROPIC_API_KEY.

  Examples:
    # macOS/Linux
    export GITHUB_TOKEN="<your_token>"
    pipeaudit analyze octocat/hello-world

		# GitHub CLI auth
		gh auth login
		pipeaudit analyze octocat/hello-world

    # Windows PowerShell
    $env:GITHUB_TOKEN = "<your_token>"
    pipeaudit analyze octocat/hello-world

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

var analyzeCmd = &cobra.Command{
	Use:   "analyze <owner/repo | url>",
	Short: "Analyze the CI/CD maturity of one repository",
	Long: `Analyze one GitHub repository and print a scored CI/CD maturity report.

The repository may be given as OWNER/REPO or as a github.com URL. Every
check in the catalog runs against the repository's workflows, settings
and recent activity; checks that cannot be evaluated (missing permission,
API trouble) are reported as SKIP and excluded from the score.

Output:
	Console output is controlled by --format (default: text).
	Reports can additionally be written to files:
	- --out / --out-format: machine-readable report as json or yaml
	- --report: standalone Markdown report
	- --no-console: suppress the console report (use with --out/--report)

AI review:
	--review sends the scored report (plus a truncated excerpt of the
	workflow YAML) to an Anthropic model and prints prioritized
	recommendations after the report. Requires ANTHROPIC_API_KEY.

Exit codes:
	0 = analysis completed
	1 = usage or configuration error
	2 = analysis failed (repository unreachable, canceled, review error)
	3 = report could not be written

Examples:
  # Token via environment variable
  export GITHUB_TOKEN="<your_token>"
  pipeaudit analyze octocat/hello-world

  # Audit by URL and keep a YAML report
  pipeaudit analyze https://github.com/octocat/hello-world --out report.yaml

	# Machine output only
	pipeaudit analyze octocat/hello-world --no-console --out report.json
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := layerConfig(cmd, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		repo, err := gateway.ParseRepo(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		token, _, err := gh.ResolveAuthToken(ctx, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
			os.Exit(1)
		}
		if strings.TrimSpace(token) == "" {
			fmt.Fprintln(os.Stderr, "warning: no GitHub token found; analyzing anonymously against a low rate limit (set GITHUB_TOKEN or run 'gh auth login')")
		}

		client, err := gh.NewClient(ctx, token, gh.WithVerbose(verbose, nil))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create GitHub client: %v\n", err)
			os.Exit(1)
		}
		gw := gateway.NewClient(client)

		analyzer, err := engine.New(gw,
			engine.WithConcurrency(cfg.Analyzer.Concurrency),
			engine.WithCheckTimeout(cfg.Analyzer.CheckTimeout),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Analyzing %s...\n", repo.FullName())
		report, err := analyzer.Analyze(ctx, repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		if code := writeReport(report); code != 0 {
			os.Exit(code)
		}

		if cfg.Review.Enabled {
			if err := runReview(ctx, gw, repo, report); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(2)
			}
		}
	},
}

// layerConfig folds env/file configuration under explicitly set flags,
// so precedence is flags > environment > config file > defaults.
func layerConfig(cmd *cobra.Command, cfg *config.Config) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	set := cmd.Flags().Changed
	if !set(flags.FlagConcurrency) {
		cfg.Analyzer.Concurrency = loaded.Analyzer.Concurrency
	}
	if !set(flags.FlagCheckTimeout) {
		cfg.Analyzer.CheckTimeout = loaded.Analyzer.CheckTimeout
	}
	if !set(flags.FlagFormat) {
		cfg.Output.Format = loaded.Output.Format
	}
	if !set(flags.FlagOut) {
		cfg.Output.Out = loaded.Output.Out
	}
	if !set(flags.FlagOutFormat) {
		cfg.Output.OutFormat = loaded.Output.OutFormat
	}
	if !set(flags.FlagReport) {
		cfg.Output.Report = loaded.Output.Report
	}
	if !set(flags.FlagNoConsole) {
		cfg.Output.NoConsole = loaded.Output.NoConsole
	}
	if !set(flags.FlagReview) {
		cfg.Review.Enabled = loaded.Review.Enabled
	}
	if !set(flags.FlagAddr) {
		cfg.Server.Addr = loaded.Server.Addr
	}
	if !set(flags.FlagRate) {
		cfg.Server.Rate = loaded.Server.Rate
	}

	// No flags for these; env/file only.
	cfg.Review.Model = loaded.Review.Model
	cfg.Review.MaxTokens = loaded.Review.MaxTokens
	cfg.Server.Burst = loaded.Server.Burst
	return nil
}

// writeReport fans the report out to the configured sinks. Returns 0 on
// success, otherwise the process exit code.
func writeReport(report *score.Report) int {
	mgr := output.NewManager()
	addSink := func(sink output.Sink, err error) bool {
		if err == nil {
			err = mgr.AddSink(sink)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		return true
	}

	if !cfg.Output.NoConsole {
		if !addSink(output.NewConsoleSink(os.Stdout, cfg.Output.Format), nil) {
			return 3
		}
	}
	if cfg.Output.Out != "" {
		if !addSink(output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)) {
			return 3
		}
	}
	if cfg.Output.Report != "" {
		if !addSink(output.NewMarkdownSink(cfg.Output.Report)) {
			return 3
		}
	}

	if err := mgr.Write(report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}
	if err := mgr.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}
	return 0
}

func runReview(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, report *score.Report) error {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return errors.New("--review requires ANTHROPIC_API_KEY")
	}

	// Cached by the gateway, so this does not re-fetch after the checks ran.
	workflowText, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		workflowText = ""
	}

	fmt.Fprintln(os.Stderr, "Requesting AI review...")
	client := review.NewClient(apiKey, cfg.Review.Model, cfg.Review.MaxTokens)
	rev, err := client.Review(ctx, report, workflowText)
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}

	printReview(os.Stdout, rev)
	return nil
}

func printReview(w io.Writer, rev *review.Review) {
	bold := color.New(color.Bold)

	fmt.Fprintln(w)
	bold.Fprintln(w, "AI review")
	fmt.Fprintln(w)
	fmt.Fprintln(w, rev.Summary)

	for _, rec := range rev.Recommendations {
		fmt.Fprintln(w)
		bold.Fprintf(w, "%s %s\n", priorityLabel(rec.Priority), rec.Title)
		fmt.Fprintln(w, rec.Description)
	}
}

func priorityLabel(priority string) string {
	switch priority {
	case "high":
		return color.New(color.FgHiRed).Sprint("[high]")
	case "low":
		return color.New(color.FgHiBlack).Sprint("[low]")
	default:
		return color.New(color.FgHiYellow).Sprint("[medium]")
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.SetHelpTemplate(analyzeHelpTemplate)

	// Analyzer
	analyzeCmd.Flags().IntVar(&cfg.Analyzer.Concurrency, flags.FlagConcurrency, cfg.Analyzer.Concurrency, "Concurrent check evaluations (default: 8)")
	analyzeCmd.Flags().DurationVar(&cfg.Analyzer.CheckTimeout, flags.FlagCheckTimeout, cfg.Analyzer.CheckTimeout, "Timeout per check evaluation (default: 15s)")

	// Output
	analyzeCmd.Flags().StringVar(&cfg.Output.Format, flags.FlagFormat, "text", "Console output format: text|json (default: text)")
	analyzeCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write the report to this path")
	analyzeCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Report format for --out: json|yaml (default: inferred from file extension)")
	analyzeCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	analyzeCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out/--report)")

	// Review
	analyzeCmd.Flags().BoolVar(&cfg.Review.Enabled, flags.FlagReview, false, "Request an AI review of the report (requires ANTHROPIC_API_KEY)")
}
