package mail

import (
	"context"
	"fmt"

	"phonebook/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer delivers messages through the SendGrid v3 API.
type SendGridMailer struct {
	client sendClient
	from   *sgmail.Email
}

func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return newSendGridMailer(sendgrid.NewSendClient(apiKey), from)
}

func newSendGridMailer(client sendClient, from string) *SendGridMailer {
	return &SendGridMailer{
		client: client,
		from:   sgmail.NewEmail("", from),
	}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	message := sgmail.NewSingleEmail(m.from, msg.Subject, sgmail.NewEmail("", msg.To), msg.Text, msg.HTML)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d: %s", resp.StatusCode, resp.Body)
	}

	logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("status", resp.StatusCode).
		Msg("email sent")
	return nil
}
