package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
)

// Alerter posts operator-facing messages about failed or partial job runs.
type Alerter interface {
	Alert(ctx context.Context, message string) error
}

type Slack struct {
	client    *slack.Client
	channelID string
}

// NewSlack returns a Slack alerter, or a no-op alerter when token or channel is empty.
func NewSlack(token, channelID string, options ...slack.Option) Alerter {
	if token == "" || channelID == "" {
		return Nop{}
	}
	return &Slack{client: slack.New(token, options...), channelID: channelID}
}

func (s *Slack) Alert(ctx context.Context, message string) error {
	_, _, err := s.client.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

// Nop logs the alert instead of sending it.
type Nop struct{}

func (Nop) Alert(ctx context.Context, message string) error {
	slog.Debug("Alert suppressed, no Slack channel configured", "message", message)
	return nil
}
