package mailer

import (
	"context"
	"fmt"

	"reservations/pkg/logger"

	"github.com/wneessen/go-mail"
)

const smtpsPort = 465

type SMTPOptions struct {
	Host      string
	Port      int
	Username  string
	Password  string
	TLSPolicy string
}

// SMTPSender dials the relay once per message. Reservation traffic is low
// enough that connection reuse is not worth the extra state.
type SMTPSender struct {
	opts []mail.Option
	host string
	log  *logger.Logger
}

func NewSMTPSender(o SMTPOptions, log *logger.Logger) (*SMTPSender, error) {
	if o.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}

	opts := []mail.Option{
		mail.WithPort(o.Port),
		mail.WithTLSPolicy(tlsPolicy(o.TLSPolicy)),
	}
	if o.Port == smtpsPort {
		opts = append(opts, mail.WithSSL())
	}
	if o.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(o.Username),
			mail.WithPassword(o.Password),
		)
	}

	// Fail fast on bad options instead of on the first booking.
	if _, err := mail.NewClient(o.Host, opts...); err != nil {
		return nil, fmt.Errorf("invalid smtp configuration: %w", err)
	}

	return &SMTPSender{opts: opts, host: o.Host, log: log}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m := mail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.FromAddress); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(s.host, s.opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}

	s.log.Debug("Email sent", "transport", "smtp", "to", msg.To, "subject", msg.Subject)
	return nil
}

func tlsPolicy(policy string) mail.TLSPolicy {
	switch policy {
	case "none":
		return mail.NoTLS
	case "opportunistic":
		return mail.TLSOpportunistic
	default:
		return mail.TLSMandatory
	}
}
