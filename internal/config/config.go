package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep these
	// in sync:
	// - viper keys and defaults in Load
	// - CLI flags in internal/cli/analyze.go and internal/cli/serve.go
	Analyzer Analyzer
	Output   Output
	Server   Server
	Review   Review
}

type Analyzer struct {
	// Concurrency bounds how many checks run in parallel (see --concurrency).
	// Must be >= 1.
	Concurrency int

	// CheckTimeout bounds a single check evaluation (see --check-timeout).
	// A check that overruns it is reported as SKIP, not failed.
	CheckTimeout time.Duration
}

type Output struct {
	// Format controls the console report format (see --format).
	// Allowed values: text, json.
	Format string

	// Out writes the report to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, yaml. If empty, it is inferred from the --out
	// file extension.
	OutFormat string

	// Report writes a Markdown report to this path (see --report).
	Report string

	// NoConsole suppresses the console sink (see --no-console).
	// Use with --out/--report for machine-readable output.
	NoConsole bool
}

type Server struct {
	// Addr is the HTTP listen address for the serve command (see --addr).
	Addr string

	// Rate is the per-client request allowance in requests per second
	// (see --rate).
	Rate float64

	// Burst is the per-client token bucket size; it absorbs short spikes
	// above Rate. Settable via PIPEAUDIT_BURST.
	Burst int
}

type Review struct {
	// Enabled requests an AI review of the report after analysis
	// (see --review). Requires ANTHROPIC_API_KEY.
	Enabled bool

	// Model is the Anthropic model used for reviews.
	Model string

	// MaxTokens caps the review response length.
	MaxTokens int
}

func New() *Config {
	return &Config{
		Analyzer: Analyzer{
			Concurrency:  8,
			CheckTimeout: 15 * time.Second,
		},
		Output: Output{
			Format: "text",
		},
		Server: Server{
			Addr:  ":8080",
			Rate:  1,
			Burst: 5,
		},
		Review: Review{
			Model:     "claude-haiku-4-5-20251001",
			MaxTokens: 1500,
		},
	}
}

// Load builds a Config from defaults, an optional YAML config file, and
// PIPEAUDIT_* environment variables, in increasing precedence. CLI flags
// are layered on top by the caller. When cfgFile is empty the default
// location ~/.config/pipeaudit/config.yaml is tried and silently skipped
// if absent; an explicit cfgFile that cannot be read is an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	defaults := New()
	v.SetDefault("concurrency", defaults.Analyzer.Concurrency)
	v.SetDefault("check_timeout", defaults.Analyzer.CheckTimeout)
	v.SetDefault("format", defaults.Output.Format)
	v.SetDefault("out", "")
	v.SetDefault("out_format", "")
	v.SetDefault("report", "")
	v.SetDefault("no_console", false)
	v.SetDefault("addr", defaults.Server.Addr)
	v.SetDefault("rate", defaults.Server.Rate)
	v.SetDefault("burst", defaults.Server.Burst)
	v.SetDefault("review", false)
	v.SetDefault("review_model", defaults.Review.Model)
	v.SetDefault("review_max_tokens", defaults.Review.MaxTokens)

	v.SetEnvPrefix("PIPEAUDIT")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pipeaudit"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		_ = v.ReadInConfig()
	}

	return &Config{
		Analyzer: Analyzer{
			Concurrency:  v.GetInt("concurrency"),
			CheckTimeout: v.GetDuration("check_timeout"),
		},
		Output: Output{
			Format:    v.GetString("format"),
			Out:       v.GetString("out"),
			OutFormat: v.GetString("out_format"),
			Report:    v.GetString("report"),
			NoConsole: v.GetBool("no_console"),
		},
		Server: Server{
			Addr:  v.GetString("addr"),
			Rate:  v.GetFloat64("rate"),
			Burst: v.GetInt("burst"),
		},
		Review: Review{
			Enabled:   v.GetBool("review"),
			Model:     v.GetString("review_model"),
			MaxTokens: v.GetInt("review_max_tokens"),
		},
	}, nil
}

func (c *Config) Validate() error {
	// Analyzer bounds
	if c.Analyzer.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Analyzer.CheckTimeout <= 0 {
		return errors.New("--check-timeout must be > 0")
	}

	// Output validation
	c.Output.Format = normalizeEnumValue(c.Output.Format)
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("unsupported --format: %s (must be one of: text, json)", c.Output.Format)
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".yaml", ".yml":
				c.Output.OutFormat = "yaml"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "yaml" {
			return fmt.Errorf("unsupported --out-format: %s (must be one of: json, yaml)", c.Output.OutFormat)
		}
	}

	if c.Output.NoConsole && c.Output.Out == "" && c.Output.Report == "" {
		return errors.New("--no-console requires --out or --report")
	}

	// Server bounds
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("--addr must not be empty")
	}
	if c.Server.Rate <= 0 {
		return errors.New("--rate must be > 0")
	}
	if c.Server.Burst <= 0 {
		return errors.New("rate burst must be >= 1")
	}

	// Review bounds
	if c.Review.Enabled {
		if strings.TrimSpace(c.Review.Model) == "" {
			return errors.New("review model must not be empty")
		}
		if c.Review.MaxTokens <= 0 {
			return errors.New("review max tokens must be >= 1")
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
