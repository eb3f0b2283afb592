package output

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/score"
)

// MarkdownSink renders the report as a standalone Markdown document,
// suitable for checking into a repo or pasting into an issue.
type MarkdownSink struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func NewMarkdownSink(path string) (*MarkdownSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &MarkdownSink{path: path, file: f}, nil
}

func (s *MarkdownSink) Write(report *score.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("# CI/CD Maturity Report\n\n")
	b.WriteString(fmt.Sprintf("**Repository:** %s\n\n", report.Repository))
	b.WriteString(fmt.Sprintf("**Analyzed:** %s\n\n", report.AnalyzedAt.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("**Score:** %d/%d (%.1f%%)\n\n", report.TotalScore, report.MaxScore, report.Percentage()))
	b.WriteString(fmt.Sprintf("**Grade:** %s\n\n", report.Grade()))

	for _, cat := range report.Categories {
		b.WriteString(fmt.Sprintf("## %s (%d/%d)\n\n", cat.Category, cat.Earned, cat.Max))
		b.WriteString("| Status | Check | Points | Detail |\n")
		b.WriteString("| --- | --- | ---: | --- |\n")
		for _, res := range cat.Results {
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				res.Status, res.Check.Name, pointsCell(res), mdCell(res.Detail)))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Suggestions\n\n")
	flagged := report.Flagged()
	if len(flagged) == 0 {
		b.WriteString("- None\n\n")
	} else {
		for _, res := range flagged {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", res.Check.Name, res.Suggestion))
		}
		b.WriteString("\n")
	}

	skipped := collectSkipped(report)
	if len(skipped) > 0 {
		b.WriteString("## Not evaluated\n\n")
		for _, res := range skipped {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", res.Check.Name, mdCell(res.Detail)))
		}
		b.WriteString("\n")
	}

	_, err := s.file.WriteString(b.String())
	return err
}

func (s *MarkdownSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

func collectSkipped(report *score.Report) []checks.Result {
	var out []checks.Result
	for _, cat := range report.Categories {
		for _, res := range cat.Results {
			if res.Status == checks.StatusSkip {
				out = append(out, res)
			}
		}
	}
	return out
}

// mdCell keeps free-form detail text from breaking table rows.
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
