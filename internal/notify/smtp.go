package notify

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/agendabeleza/backend/internal/config"
)

// SMTPMailer delivers through an SMTP relay, with STARTTLS or implicit TLS
// and PLAIN authentication when credentials are configured.
type SMTPMailer struct {
	host     string
	addr     string
	username string
	password string
	useTLS   bool
	useSSL   bool
	sender   Sender
}

// NewSMTPMailer creates an SMTP transport from the mail settings.
func NewSMTPMailer(cfg *config.MailSettings, sender Sender) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Server,
		addr:     cfg.SMTPAddress(),
		username: cfg.Username,
		password: cfg.Password,
		useTLS:   cfg.UseTLS,
		useSSL:   cfg.UseSSL,
		sender:   sender,
	}
}

// Name identifies the transport in logs.
func (m *SMTPMailer) Name() string {
	return "smtp"
}

// Send delivers one message, honouring ctx as an overall deadline.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}

	body, err := m.compose(msg, time.Now())
	if err != nil {
		return err
	}

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to mail server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if m.useSSL {
		conn = tls.Client(conn, &tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12})
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to start SMTP session: %w", err)
	}
	defer client.Close()

	if m.useTLS && !m.useSSL {
		if err := client.StartTLS(&tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("STARTTLS failed: %w", err)
		}
	}

	if m.username != "" {
		if err := client.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(m.sender.Address); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO rejected: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA rejected: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("message rejected: %w", err)
	}

	return client.Quit()
}

// compose renders the RFC 5322 message: a multipart/alternative body with a
// plain-text rendition of the HTML followed by the HTML itself.
func (m *SMTPMailer) compose(msg Message, now time.Time) ([]byte, error) {
	boundary, err := newBoundary()
	if err != nil {
		return nil, err
	}

	from := (&mail.Address{Name: m.sender.Name, Address: m.sender.Address}).String()

	var buf bytes.Buffer
	writeHeader := func(key, value string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", key, value)
	}

	writeHeader("From", from)
	writeHeader("To", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		writeHeader("Reply-To", msg.ReplyTo)
	}
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader("Date", now.Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", boundary))
	buf.WriteString("\r\n")

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=utf-8", htmlToText(msg.HTML)},
		{"text/html; charset=utf-8", msg.HTML},
	}

	for _, part := range parts {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", part.contentType)
		buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")

		qp := quotedprintable.NewWriter(&buf)
		if _, err := qp.Write([]byte(part.content)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
		buf.WriteString("\r\n")
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes(), nil
}

func newBoundary() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate MIME boundary: %w", err)
	}
	return "agenda-" + hex.EncodeToString(b), nil
}
