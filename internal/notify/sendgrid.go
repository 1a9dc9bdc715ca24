package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// SendGridMailer delivers through the SendGrid v3 API.
type SendGridMailer struct {
	apiKey string
	host   string
	from   *mail.Email
}

// NewSendGridMailer creates the SendGrid transport.
func NewSendGridMailer(apiKey string, sender Sender) *SendGridMailer {
	return &SendGridMailer{
		apiKey: apiKey,
		host:   sendGridHost,
		from:   mail.NewEmail(sender.Name, sender.Address),
	}
}

// Name identifies the transport in logs.
func (m *SendGridMailer) Name() string {
	return "sendgrid"
}

// buildMessage converts msg into the API payload.
func (m *SendGridMailer) buildMessage(msg Message) *mail.SGMailV3 {
	p := mail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(mail.NewEmail("", to))
	}

	payload := mail.NewV3Mail()
	payload.SetFrom(m.from)
	payload.Subject = msg.Subject
	payload.AddPersonalizations(p)
	payload.AddContent(
		mail.NewContent("text/plain", htmlToText(msg.HTML)),
		mail.NewContent("text/html", msg.HTML),
	)
	if msg.ReplyTo != "" {
		payload.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}
	return payload
}

// Send delivers one message.
func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	request := sendgrid.GetRequest(m.apiKey, sendGridEndpoint, m.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(m.buildMessage(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("sendgrid error: status=%d body=%s", res.StatusCode, res.Body)
	}
	return nil
}
