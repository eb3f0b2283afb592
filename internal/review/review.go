// Package review asks an Anthropic model for prioritized improvement
// recommendations based on an analysis report.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"pipeaudit/internal/score"
)

// maxWorkflowChars caps how much workflow YAML goes into the prompt so a
// large pipeline cannot blow the context window.
const maxWorkflowChars = 3000

// Recommendation is a single actionable suggestion from the model.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Review is the parsed model response.
type Review struct {
	Summary         string           `json:"summary"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Client wraps the Anthropic API for report reviews.
type Client struct {
	api       *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewClient creates a review client with the given API key and model.
func NewClient(apiKey, model string, maxTokens int) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:       &client,
		model:     anthropic.Model(model),
		maxTokens: int64(maxTokens),
	}
}

// buildPrompt constructs the system and user prompts from the report and
// an optional workflow YAML snippet.
func buildPrompt(report *score.Report, workflowText string) (system string, user string) {
	system = `You are a DevOps and CI/CD expert. You analyze GitHub pipelines and provide precise, actionable technical recommendations. You always answer with valid JSON.`

	flagged := collectFlagged(report)
	flaggedSummary := "No failed checks."
	if len(flagged) > 0 {
		flaggedSummary = strings.Join(flagged, "\n")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze the CI/CD report for the GitHub repository `%s` and provide concrete recommendations.\n\n", report.Repository)
	fmt.Fprintf(&sb, "Score: %d/%d (%.0f%%)\n\n", report.TotalScore, report.MaxScore, report.Percentage())
	fmt.Fprintf(&sb, "## Flagged checks (%d)\n%s\n", len(flagged), flaggedSummary)

	if workflowText != "" {
		snippet := workflowText
		if len(snippet) > maxWorkflowChars {
			snippet = snippet[:maxWorkflowChars] + "\n# ... (truncated)"
		}
		fmt.Fprintf(&sb, "\n## CI workflows (YAML)\n```yaml\n%s\n```\n", snippet)
	}

	sb.WriteString(`
Answer in JSON with exactly this shape:
{
  "summary": "Overall assessment in 2-3 sentences",
  "recommendations": [
    {
      "title": "Short title",
      "description": "Detailed, actionable description",
      "priority": "high" | "medium" | "low"
    }
  ]
}

Give 3 to 6 recommendations ordered by impact. Answer with valid JSON only, no extra text.`)

	user = sb.String()
	return
}

// collectFlagged renders the report's failed and warned checks as prompt
// bullet lines.
func collectFlagged(report *score.Report) []string {
	var out []string
	for _, res := range report.Flagged() {
		out = append(out, fmt.Sprintf("- [%s] %s (%s): %s",
			res.Check.Category, res.Check.Name, res.Status, res.Detail))
	}
	return out
}

// Review sends the report to the model and returns the parsed response.
func (c *Client) Review(ctx context.Context, report *score.Report, workflowText string) (*Review, error) {
	systemPrompt, userPrompt := buildPrompt(report, workflowText)

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(0.3),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return parseReview(text)
}

// parseReview decodes the model output, tolerating markdown fencing.
func parseReview(text string) (*Review, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		lines := strings.SplitN(text, "\n", 2)
		if len(lines) > 1 {
			text = lines[1]
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	var review Review
	if err := json.Unmarshal([]byte(text), &review); err != nil {
		return nil, fmt.Errorf("parse review response as JSON: %w\nraw response: %s", err, text)
	}

	for i, rec := range review.Recommendations {
		switch strings.ToLower(strings.TrimSpace(rec.Priority)) {
		case "high":
			review.Recommendations[i].Priority = "high"
		case "low":
			review.Recommendations[i].Priority = "low"
		default:
			review.Recommendations[i].Priority = "medium"
		}
	}

	return &review, nil
}
