// Package notify delivers transactional email. Messages are queued and sent
// by a small worker pool so that request handlers never wait on a mail
// server; delivery outcomes are only visible in the log.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/constants"
)

// Message is one outgoing email.
type Message struct {
	Subject string
	To      []string
	HTML    string
	ReplyTo string
}

// clone copies the message so a queued task shares nothing with its caller.
func (m Message) clone() Message {
	m.To = append([]string(nil), m.To...)
	return m
}

// Mailer is a mail transport.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// Sender identifies the From address of outgoing mail.
type Sender struct {
	Name    string
	Address string
}

// NewMailer builds the transport selected in the mail settings.
func NewMailer(cfg *config.MailSettings) (Mailer, error) {
	sender := Sender{Name: cfg.SenderName, Address: cfg.SenderAddress}

	switch strings.ToLower(cfg.Provider) {
	case constants.MailProviderSMTP:
		return NewSMTPMailer(cfg, sender), nil
	case constants.MailProviderMailerSend:
		return NewMailerSendMailer(cfg.MailerSendAPIKey, sender), nil
	case constants.MailProviderSendGrid:
		return NewSendGridMailer(cfg.SendGridAPIKey, sender), nil
	case constants.MailProviderLog, "":
		return NewLogMailer(), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}
