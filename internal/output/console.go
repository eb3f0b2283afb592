package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/score"
)

var (
	green  = color.New(color.FgHiGreen).SprintFunc()
	yellow = color.New(color.FgHiYellow).SprintFunc()
	red    = color.New(color.FgHiRed).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func statusLabel(st checks.Status) string {
	switch st {
	case checks.StatusPass:
		return green("PASS")
	case checks.StatusFail:
		return red("FAIL")
	case checks.StatusWarn:
		return yellow("WARN")
	default:
		return dim("SKIP")
	}
}

// scoreBand colors a percentage like the web gauges do: green from 70,
// yellow from 50, red below.
func scoreBand(pct float64) func(a ...interface{}) string {
	switch {
	case pct >= 70:
		return green
	case pct >= 50:
		return yellow
	default:
		return red
	}
}

type ConsoleSink struct {
	writer io.Writer
	format string // "text" or "json"
	mu     sync.Mutex
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	return &ConsoleSink{writer: w, format: format}
}

func (s *ConsoleSink) Write(report *score.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "text":
		return s.writeText(report)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) writeText(report *score.Report) error {
	printf := func(format string, args ...any) error {
		_, err := fmt.Fprintf(s.writer, format, args...)
		return err
	}

	pct := report.Percentage()
	band := scoreBand(pct)
	if err := printf("\n%s\n", bold(report.Repository)); err != nil {
		return err
	}
	if err := printf("Score: %s  Grade: %s\n\n",
		band(fmt.Sprintf("%d/%d (%.1f%%)", report.TotalScore, report.MaxScore, pct)),
		band(report.Grade())); err != nil {
		return err
	}

	for _, cat := range report.Categories {
		if err := printf("%s  %d/%d\n", bold(string(cat.Category)), cat.Earned, cat.Max); err != nil {
			return err
		}
		table := newTable(s.writer)
		for _, res := range cat.Results {
			table.Append([]string{
				statusLabel(res.Status),
				res.Check.Name,
				pointsCell(res),
				res.Detail,
			})
		}
		table.Render()
		if err := printf("\n"); err != nil {
			return err
		}
	}

	flagged := report.Flagged()
	if len(flagged) == 0 {
		return nil
	}
	if err := printf("%s\n", bold("Suggestions")); err != nil {
		return err
	}
	for _, res := range flagged {
		if err := printf("  - %s: %s\n", res.Check.Name, res.Suggestion); err != nil {
			return err
		}
	}
	return nil
}

func (s *ConsoleSink) Close() error {
	return nil
}

// pointsCell renders earned/available, with a dash for skipped checks
// since they are outside the denominator.
func pointsCell(res checks.Result) string {
	if res.Status == checks.StatusSkip {
		return "-"
	}
	return fmt.Sprintf("%d/%d", res.Points, res.Check.Weight)
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "  ", Right: "  "}),
	)
	table.Header([]string{"", "CHECK", "POINTS", "DETAIL"})
	return table
}
