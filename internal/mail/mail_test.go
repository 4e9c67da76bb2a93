package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSendClient struct {
	resp *rest.Response
	err  error
	got  *sgmail.SGMailV3
}

func (f *fakeSendClient) SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	f.got = email
	return f.resp, f.err
}

func TestVerificationEmail(t *testing.T) {
	msg, err := VerificationEmail("https://api.example.com", "a@x.com", "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", msg.To)
	assert.Equal(t, "Verify your email", msg.Subject)
	assert.Contains(t, msg.HTML, `href="https://api.example.com/users/verify/tok-123"`)
	assert.Contains(t, msg.Text, "https://api.example.com/users/verify/tok-123")
}

func TestVerificationLink_EscapesToken(t *testing.T) {
	assert.Equal(t, "http://h/users/verify/a%2Fb", VerificationLink("http://h", "a/b"))
}

func TestSendGridMailer_Send(t *testing.T) {
	client := &fakeSendClient{resp: &rest.Response{StatusCode: 202}}
	m := newSendGridMailer(client, "from@x.com")

	err := m.Send(context.Background(), Message{To: "to@x.com", Subject: "hi", Text: "plain", HTML: "<p>html</p>"})
	require.NoError(t, err)

	require.NotNil(t, client.got)
	assert.Equal(t, "hi", client.got.Subject)
	assert.Equal(t, "from@x.com", client.got.From.Address)
	require.Len(t, client.got.Personalizations, 1)
	assert.Equal(t, "to@x.com", client.got.Personalizations[0].To[0].Address)
}

func TestSendGridMailer_Failures(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		m := newSendGridMailer(&fakeSendClient{err: errors.New("dial tcp: timeout")}, "from@x.com")
		assert.Error(t, m.Send(context.Background(), Message{To: "to@x.com", Subject: "s", Text: "t", HTML: "h"}))
	})

	t.Run("rejected", func(t *testing.T) {
		m := newSendGridMailer(&fakeSendClient{resp: &rest.Response{StatusCode: 401, Body: "unauthorized"}}, "from@x.com")
		err := m.Send(context.Background(), Message{To: "to@x.com", Subject: "s", Text: "t", HTML: "h"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})
}

func TestLogMailer_NeverFails(t *testing.T) {
	assert.NoError(t, LogMailer{}.Send(context.Background(), Message{To: "to@x.com"}))
}
