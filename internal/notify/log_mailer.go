package notify

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/utils"
)

// LogMailer writes messages to the log instead of sending them. Used in
// development when no mail account is configured.
type LogMailer struct{}

// NewLogMailer creates the logging transport.
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// Name identifies the transport in logs.
func (m *LogMailer) Name() string {
	return "log"
}

// Send logs the message envelope. The body is logged at debug level only,
// since reset emails carry live tokens.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	masked := make([]string, len(msg.To))
	for i, to := range msg.To {
		masked[i] = utils.MaskEmail(to)
	}

	log.Info().
		Str("subject", msg.Subject).
		Strs("to", masked).
		Str("reply_to", utils.MaskEmail(msg.ReplyTo)).
		Msg("Email (log transport)")
	log.Debug().Str("html", msg.HTML).Msg("Email body")

	return nil
}
