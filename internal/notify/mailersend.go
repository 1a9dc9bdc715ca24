package notify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mailersend/mailersend-go"
)

// MailerSendMailer delivers through the MailerSend HTTP API.
type MailerSendMailer struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

// NewMailerSendMailer creates the MailerSend transport.
func NewMailerSendMailer(apiKey string, sender Sender) *MailerSendMailer {
	return &MailerSendMailer{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  sender.Name,
			Email: sender.Address,
		},
	}
}

// Name identifies the transport in logs.
func (m *MailerSendMailer) Name() string {
	return "mailersend"
}

// buildMessage converts msg into the API payload.
func (m *MailerSendMailer) buildMessage(msg Message) *mailersend.Message {
	recipients := make([]mailersend.Recipient, 0, len(msg.To))
	for _, to := range msg.To {
		recipients = append(recipients, mailersend.Recipient{Email: to})
	}

	payload := m.client.Email.NewMessage()
	payload.SetFrom(m.from)
	payload.SetRecipients(recipients)
	payload.SetSubject(msg.Subject)
	payload.SetHTML(msg.HTML)
	payload.SetText(htmlToText(msg.HTML))
	if msg.ReplyTo != "" {
		payload.SetReplyTo(mailersend.ReplyTo{Email: msg.ReplyTo})
	}
	return payload
}

// Send delivers one message.
func (m *MailerSendMailer) Send(ctx context.Context, msg Message) error {
	res, err := m.client.Email.Send(ctx, m.buildMessage(msg))
	if err != nil {
		return fmt.Errorf("mailersend request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
