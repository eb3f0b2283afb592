package evaluators

import (
	"context"
	"strings"

	"pipeaudit/internal/checks"
	"pipeaudit/internal/gateway"
)

var notificationKeywords = []string{
	"discord-webhook", "discord_webhook", "slack-webhook", "slack_webhook",
	"slackapi/", "8398a7/action-slack", "rtcamp/action-slack",
	"rjstone/discord-webhook", "appleboy/telegram-action",
	"act10ns/slack", "notify", "send-message",
}

type CINotificationsEvaluator struct{}

func (e *CINotificationsEvaluator) ID() checks.ID {
	return checks.CINotifications
}

func (e *CINotificationsEvaluator) Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check checks.Check) checks.Result {
	text, err := gw.WorkflowText(ctx, repo)
	if err != nil {
		return checks.Skipped(check, "workflow files unavailable: "+err.Error())
	}
	hits := matchAny(strings.ToLower(text), notificationKeywords)
	if len(hits) == 0 {
		return checks.Failed(check, "no CI notification step detected",
			"Notify a Slack or Discord channel when the pipeline fails")
	}
	return checks.Passed(check, "notifications configured: "+strings.Join(hits, ", "))
}

func init() {
	checks.Register(&CINotificationsEvaluator{})
}
