package service

import "time"

// Notifier queues an email for background delivery. It never reports the
// delivery outcome.
type Notifier interface {
	Send(subject string, recipients []string, htmlBody, replyTo string)
}

// ResetTokens issues and verifies password reset tokens.
type ResetTokens interface {
	Issue(email string) (string, error)
	Verify(token string) (string, error)
	MaxAge() time.Duration
}
