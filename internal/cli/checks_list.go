package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"pipeaudit/internal/checks"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checksListQuiet bool
var checksListJSON bool
var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "Inspect the check catalog",
	Long: `Inspect the PipeAudit check catalog.

This command group helps you discover which checks exist, how many points
each is worth and which maturity category it belongs to. Checks run during
analysis (see "pipeaudit analyze --help").

Examples:
  # List all checks grouped by category
  pipeaudit checks list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var checksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog checks",
	Long: `List every check in this build's catalog.

Checks are grouped by category (Fundamentals, Intermediate, Advanced,
Bonus) in the order they appear in reports, with the point budget of
each category in the heading.

Examples:
  pipeaudit checks list
  pipeaudit checks list --json
  pipeaudit checks list -q
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := checks.All()

		if checksListJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(all)
		}
		if checksListQuiet {
			for _, c := range all {
				fmt.Fprintln(cmd.OutOrStdout(), c.ID)
			}
			return nil
		}

		bold := color.New(color.Bold)
		for _, cat := range checks.Categories() {
			bold.Fprintf(cmd.OutOrStdout(), "%s (%d points)\n", cat, checks.Budget(cat))
			for _, c := range all {
				if c.Category != cat {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %2dpt  %-28s %s\n", c.Weight, c.ID, c.Name)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}

var checksShowCmd = &cobra.Command{
	Use:   "show [check-id]",
	Short: "Show details of a specific check",
	Long: `Show details of a specific check by its ID.

Examples:
  pipeaudit checks show branch_protection
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ok := checks.ByID(checks.ID(args[0]))
		if !ok {
			return fmt.Errorf("check not found: %s", args[0])
		}
		printCheck(cmd.OutOrStdout(), c)
		return nil
	},
}

func printCheck(w io.Writer, c checks.Check) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "CHECK: %s\n", c.ID)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, c.Name)
	fmt.Fprintln(w, c.Description)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Category: %s\n", c.Category)
	fmt.Fprintf(w, "Weight:   %d points\n", c.Weight)
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(checksCmd)
	checksCmd.AddCommand(checksListCmd)
	checksListCmd.Flags().BoolVarP(&checksListQuiet, "quiet", "q", false, "Only print check IDs")
	checksListCmd.Flags().BoolVar(&checksListJSON, "json", false, "Print the catalog as JSON")
	checksCmd.AddCommand(checksShowCmd)
}
