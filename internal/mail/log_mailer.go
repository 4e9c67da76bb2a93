package mail

import (
	"context"

	"phonebook/internal/logger"
)

// LogMailer writes messages to the log instead of delivering them. Used when
// no SendGrid key is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	logger.Warn().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Text).
		Msg("email delivery disabled, message logged only")
	return nil
}
