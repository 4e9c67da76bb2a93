package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
)

const verificationSubject = "Verify your email"

var verificationTemplate = template.Must(template.New("verification").Parse(
	`<p>Thanks for signing up!</p>` +
		`<p><a target="_blank" href="{{.Link}}">Click here to verify your email</a></p>`,
))

// VerificationLink is the public URL that consumes token.
func VerificationLink(baseURL, token string) string {
	return fmt.Sprintf("%s/users/verify/%s", baseURL, url.PathEscape(token))
}

func VerificationEmail(baseURL, to, token string) (Message, error) {
	link := VerificationLink(baseURL, token)

	var body bytes.Buffer
	if err := verificationTemplate.Execute(&body, struct{ Link string }{Link: link}); err != nil {
		return Message{}, err
	}

	return Message{
		To:      to,
		Subject: verificationSubject,
		HTML:    body.String(),
		Text:    "Verify your email: " + link,
	}, nil
}
