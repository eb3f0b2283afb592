package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pipeaudit/internal/config"
	"pipeaudit/internal/flags"
	"pipeaudit/internal/review"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// withConfigFile points the loader at a throwaway config file so tests do
// not pick up a real ~/.config/pipeaudit/config.yaml.
func withConfigFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })
}

func newAnalyzeFlagSet() *cobra.Command {
	cmd := &cobra.Command{Use: "analyze"}
	cmd.Flags().Int(flags.FlagConcurrency, 8, "")
	cmd.Flags().Duration(flags.FlagCheckTimeout, 15*time.Second, "")
	cmd.Flags().String(flags.FlagFormat, "text", "")
	return cmd
}

func TestLayerConfig_ExplicitFlagWinsOverEnv(t *testing.T) {
	withConfigFile(t, "")
	t.Setenv("PIPEAUDIT_CONCURRENCY", "5")

	cmd := newAnalyzeFlagSet()
	if err := cmd.Flags().Set(flags.FlagConcurrency, "2"); err != nil {
		t.Fatalf("failed to set concurrency flag: %v", err)
	}

	cfg := config.New()
	cfg.Analyzer.Concurrency = 2

	if err := layerConfig(cmd, cfg); err != nil {
		t.Fatalf("layerConfig() error = %v", err)
	}
	if cfg.Analyzer.Concurrency != 2 {
		t.Fatalf("expected concurrency to stay 2 when --concurrency explicitly set; got %d", cfg.Analyzer.Concurrency)
	}
}

func TestLayerConfig_EnvAppliesWhenFlagUnset(t *testing.T) {
	withConfigFile(t, "")
	t.Setenv("PIPEAUDIT_CONCURRENCY", "3")
	t.Setenv("PIPEAUDIT_FORMAT", "json")

	cmd := newAnalyzeFlagSet()
	cfg := config.New()

	if err := layerConfig(cmd, cfg); err != nil {
		t.Fatalf("layerConfig() error = %v", err)
	}
	if cfg.Analyzer.Concurrency != 3 {
		t.Errorf("expected concurrency 3 from environment; got %d", cfg.Analyzer.Concurrency)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected format json from environment; got %q", cfg.Output.Format)
	}
}

func TestLayerConfig_FileAppliesWhenFlagUnset(t *testing.T) {
	withConfigFile(t, "check_timeout: 30s\nreview_model: claude-sonnet-4-5\n")

	cmd := newAnalyzeFlagSet()
	cfg := config.New()

	if err := layerConfig(cmd, cfg); err != nil {
		t.Fatalf("layerConfig() error = %v", err)
	}
	if cfg.Analyzer.CheckTimeout != 30*time.Second {
		t.Errorf("expected check timeout 30s from config file; got %s", cfg.Analyzer.CheckTimeout)
	}
	if cfg.Review.Model != "claude-sonnet-4-5" {
		t.Errorf("expected review model from config file; got %q", cfg.Review.Model)
	}
}

func TestLayerConfig_MissingConfigFileErrors(t *testing.T) {
	old := cfgFile
	cfgFile = filepath.Join(t.TempDir(), "nope.yaml")
	t.Cleanup(func() { cfgFile = old })

	cmd := newAnalyzeFlagSet()
	if err := layerConfig(cmd, config.New()); err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestPriorityLabel(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		priority string
		want     string
	}{
		{"high", "[high]"},
		{"medium", "[medium]"},
		{"low", "[low]"},
		{"whatever", "[medium]"},
	}
	for _, tt := range tests {
		if got := priorityLabel(tt.priority); got != tt.want {
			t.Errorf("priorityLabel(%q) = %q; want %q", tt.priority, got, tt.want)
		}
	}
}

func TestPrintReview(t *testing.T) {
	color.NoColor = true

	rev := &review.Review{
		Summary: "Solid fundamentals, weak deployment automation.",
		Recommendations: []review.Recommendation{
			{Title: "Protect the default branch", Description: "Require pull request reviews on main.", Priority: "high"},
			{Title: "Cache dependencies", Description: "Add actions/cache to speed up builds.", Priority: "low"},
		},
	}

	buf := new(bytes.Buffer)
	printReview(buf, rev)
	output := buf.String()

	for _, exp := range []string{
		"AI review",
		"Solid fundamentals, weak deployment automation.",
		"[high] Protect the default branch",
		"Require pull request reviews on main.",
		"[low] Cache dependencies",
	} {
		if !strings.Contains(output, exp) {
			t.Errorf("Expected output to contain %q, but it didn't.\nOutput:\n%s", exp, output)
		}
	}
}
