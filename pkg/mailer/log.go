package mailer

import (
	"context"

	"reservations/pkg/logger"
)

// LogSender writes messages to the log instead of delivering them. It is the
// default transport for local development.
type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.log.Info("Email not delivered (log transport)",
		"from", msg.From(),
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"html_bytes", len(msg.HTML),
	)
	s.log.Debug("Email body", "to", msg.To, "html", msg.HTML)
	return nil
}
