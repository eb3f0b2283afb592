package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"pipeaudit/internal/engine"
	"pipeaudit/internal/flags"
	"pipeaudit/internal/gateway"
	gh "pipeaudit/internal/github"
	"pipeaudit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis API",
	Long: `Run an HTTP server exposing the analyzer.

Endpoints:
  GET /healthz                      liveness probe
  GET /api/v1/analyze?repo=o/r      analyze a repository, respond with the JSON report

The analyze endpoint is rate limited per client IP (see --rate). The
server reuses one GitHub client for all requests, so the token resolved
at startup (GITHUB_TOKEN, GH_TOKEN or gh auth) applies to every analysis.

Examples:
  pipeaudit serve
  pipeaudit serve --addr :9090 --rate 2
  curl 'localhost:8080/api/v1/analyze?repo=octocat/hello-world'
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := layerConfig(cmd, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		token, _, err := gh.ResolveAuthToken(ctx, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
			os.Exit(1)
		}
		if strings.TrimSpace(token) == "" {
			fmt.Fprintln(os.Stderr, "warning: no GitHub token found; serving anonymously against a low rate limit (set GITHUB_TOKEN or run 'gh auth login')")
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

		srv, err := server.New(analyzer, server.WithRate(cfg.Server.Rate, cfg.Server.Burst))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "pipeaudit API listening on %s\n", cfg.Server.Addr)
		if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&cfg.Server.Addr, flags.FlagAddr, cfg.Server.Addr, "Listen address (default: :8080)")
	serveCmd.Flags().Float64Var(&cfg.Server.Rate, flags.FlagRate, cfg.Server.Rate, "Analyze requests per second per client IP (default: 1)")
	serveCmd.Flags().IntVar(&cfg.Analyzer.Concurrency, flags.FlagConcurrency, cfg.Analyzer.Concurrency, "Concurrent check evaluations (default: 8)")
	serveCmd.Flags().DurationVar(&cfg.Analyzer.CheckTimeout, flags.FlagCheckTimeout, cfg.Analyzer.CheckTimeout, "Timeout per check evaluation (default: 15s)")
}
