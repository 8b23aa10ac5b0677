// Package mailer delivers composed HTML emails through a pluggable transport.
package mailer

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"

	"reservations/pkg/config"
)

var (
	ErrNoRecipient = errors.New("message has no recipient")
	ErrNoSubject   = errors.New("message has no subject")
)

// Sender is the email transport. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	FromName    string
	FromAddress string
	To          string
	ReplyTo     string
	Subject     string
	HTML        string
}

func (m Message) Validate() error {
	if m.To == "" {
		return ErrNoRecipient
	}
	if m.Subject == "" {
		return ErrNoSubject
	}
	return nil
}

// From renders the sender as an RFC 5322 address.
func (m Message) From() string {
	addr := netmail.Address{Name: m.FromName, Address: m.FromAddress}
	return addr.String()
}

// New builds the transport selected by cfg.MailTransport.
func New(ctx context.Context, cfg *config.Config) (Sender, error) {
	switch cfg.MailTransport {
	case config.MailTransportSMTP:
		return NewSMTPSender(SMTPOptions{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			TLSPolicy: cfg.SMTPTLSPolicy,
		}, cfg.Log)
	case config.MailTransportSES:
		return NewSESSender(ctx, cfg.AWSRegion, cfg.Log)
	case config.MailTransportLog:
		return NewLogSender(cfg.Log), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.MailTransport)
	}
}
