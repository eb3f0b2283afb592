package flags

// Package flags defines canonical CLI flag names shared across commands.
// Keeping these as constants helps avoid drift between Cobra flag wiring
// and other code paths that reference flags by name (e.g. config layering,
// which checks whether a flag was set explicitly).
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().IntVar(&cfg.Analyzer.Concurrency, flags.FlagConcurrency, 8, "...")
//	arg := "--" + flags.FlagConcurrency
const (
	// Analyzer
	FlagConcurrency  = "concurrency"
	FlagCheckTimeout = "check-timeout"

	// Output
	FlagFormat    = "format"
	FlagOut       = "out"
	FlagOutFormat = "out-format"
	FlagReport    = "report"
	FlagNoConsole = "no-console"

	// Review
	FlagReview = "review"

	// Server
	FlagAddr = "addr"
	FlagRate = "rate"

	// Global
	FlagVerbose = "verbose"
	FlagConfig  = "config"
)
