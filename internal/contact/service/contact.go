package service

import (
	"context"
	"errors"
	"time"

	"reservations/internal/bookings/events"
	"reservations/internal/contact/validator"
	"reservations/internal/mail"
	"reservations/pkg/config"
	apperrors "reservations/pkg/errors"
	"reservations/pkg/mailer"
	"reservations/pkg/model"
	"reservations/pkg/sanitizer"
	"reservations/pkg/validation"
)

const (
	msgFieldsRequired = "All fields are required."
	msgSendFailed     = "Failed to send message. Please try again later."
	contactSenderTag  = " Contact"
)

type ContactService interface {
	SubmitContact(ctx context.Context, msg *model.ContactMessage) error
}

type contactService struct {
	validator *validator.ContactValidator
	sender    mailer.Sender
	publisher events.Publisher
	cfg       *config.Config

	publishTimeout time.Duration
}

func NewContactService(
	validator *validator.ContactValidator,
	sender mailer.Sender,
	publisher events.Publisher,
	cfg *config.Config,
) ContactService {
	return &contactService{
		validator: validator,
		sender:    sender,
		publisher: publisher,
		cfg:       cfg,

		publishTimeout: events.PublishTimeout,
	}
}

// SubmitContact forwards a contact-form message to the admin, with Reply-To
// set to the visitor, and sends the visitor an acknowledgement. Nothing is
// stored.
func (s *contactService) SubmitContact(ctx context.Context, msg *model.ContactMessage) error {
	if err := s.validator.Validate(msg); err != nil {
		var verrs validation.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation(msgFieldsRequired, map[string]any{"fields": verrs.Fields()})
		}
		return apperrors.Validation(msgFieldsRequired, nil)
	}

	data := mail.ContactData{
		Name:    sanitizer.NormalizeName(msg.Name),
		Email:   sanitizer.NormalizeEmail(msg.Email),
		Message: msg.Message,
	}

	if err := s.send(ctx, data); err != nil {
		s.cfg.Log.Error("Failed to send contact emails", "email", data.Email, "error", err)
		return apperrors.Delivery(msgSendFailed, err)
	}

	s.cfg.Log.Info("Contact message delivered", "email", data.Email)

	if err := events.PublishDetached(ctx, s.publisher, events.ContactReceived(data.Email), s.publishTimeout); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "type", events.TypeContactReceived, "error", err)
	}
	return nil
}

func (s *contactService) send(ctx context.Context, data mail.ContactData) error {
	notice, err := mail.AdminContactNotice(data)
	if err != nil {
		return err
	}
	ack, err := mail.UserContactAck(data)
	if err != nil {
		return err
	}

	if err := s.sender.Send(ctx, mailer.Message{
		FromName:    s.cfg.SenderName + contactSenderTag,
		FromAddress: s.cfg.SenderEmail,
		To:          s.cfg.AdminEmail,
		ReplyTo:     data.Email,
		Subject:     notice.Subject,
		HTML:        notice.HTML,
	}); err != nil {
		return err
	}

	return s.sender.Send(ctx, mailer.Message{
		FromName:    s.cfg.SenderName,
		FromAddress: s.cfg.SenderEmail,
		To:          data.Email,
		Subject:     ack.Subject,
		HTML:        ack.HTML,
	})
}
