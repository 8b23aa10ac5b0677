package service

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingserrors "reservations/internal/bookings/errors"
	"reservations/internal/bookings/events"
	"reservations/internal/bookings/repository"
	"reservations/internal/bookings/validator"
	"reservations/internal/mail"
	"reservations/pkg/config"
	apperrors "reservations/pkg/errors"
	"reservations/pkg/mailer"
	"reservations/pkg/model"
	"reservations/pkg/sanitizer"
	"reservations/pkg/timefmt"
	"reservations/pkg/validation"

	"github.com/google/uuid"
)

const (
	bookingIDLength      = 12
	maxIDAttempts        = 5
	msgFieldsRequired    = "All booking fields are required."
	msgStatusRequired    = "A response status is required."
	msgBookingEmailsFail = "Failed to send emails."
	msgResponseEmailFail = "Failed to send response email."
)

var errStatusRequired = errors.New("status is required")

type BookingService interface {
	SubmitBooking(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	RespondToBooking(ctx context.Context, req model.RespondRequest) (*model.Booking, error)
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	sender    mailer.Sender
	publisher events.Publisher
	cfg       *config.Config
	newID     func() string

	publishTimeout time.Duration
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	sender mailer.Sender,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		sender:    sender,
		publisher: publisher,
		cfg:       cfg,
		newID:     newBookingID,

		publishTimeout: events.PublishTimeout,
	}
}

// newBookingID returns 12 lowercase hex characters taken from a random UUID.
func newBookingID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:bookingIDLength]
}

func (s *bookingService) SubmitBooking(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		var verrs validation.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation(msgFieldsRequired, map[string]any{"fields": verrs.Fields()})
		}
		return nil, apperrors.Validation(msgFieldsRequired, nil)
	}

	booking := &model.Booking{
		Name:    req.Name,
		Email:   req.Email,
		Date:    req.Date,
		Time:    timefmt.Format(req.Time),
		Members: req.Members,
		Status:  model.StatusPending,
	}

	if err := s.store(ctx, booking); err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"date", booking.Date,
		"time", booking.Time,
		"members", booking.Members,
	)

	err := s.sendBookingEmails(ctx, booking)
	s.publish(ctx, events.BookingCreated(booking))
	if err != nil {
		// The record stays; the admin can still respond once mail recovers.
		s.cfg.Log.Error("Failed to send booking emails", "id", booking.ID, "error", err)
		return booking, apperrors.Delivery(msgBookingEmailsFail, err)
	}

	return booking, nil
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Members = model.Members(strings.TrimSpace(req.Members.String()))
}

// store inserts booking under a fresh id, drawing a new one on collision.
func (s *bookingService) store(ctx context.Context, booking *model.Booking) error {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		booking.ID = s.newID()

		_, err := s.repo.Create(ctx, booking)
		if err == nil {
			return nil
		}
		if !errors.Is(err, bookingserrors.ErrDuplicateID) {
			s.cfg.Log.Error("Failed to store booking", "error", err)
			return apperrors.Internal("Failed to create booking", err)
		}

		s.cfg.Log.Warn("Booking id collision, regenerating", "id", booking.ID, "attempt", attempt)
	}

	return apperrors.Internal("Failed to create booking", bookingserrors.ErrIDExhausted)
}

func (s *bookingService) sendBookingEmails(ctx context.Context, b *model.Booking) error {
	adminMail, err := mail.AdminNewBooking(mail.AdminNewBookingData{
		BookingID: b.ID,
		Name:      b.Name,
		Email:     b.Email,
		Date:      b.Date,
		Time:      b.Time,
		Members:   b.Members.String(),
		BaseURL:   s.cfg.PublicBaseURL,
	})
	if err != nil {
		return err
	}

	userMail, err := mail.UserBookingReceived(mail.UserBookingData{
		Name:    b.Name,
		Date:    b.Date,
		Time:    b.Time,
		Members: b.Members.String(),
	})
	if err != nil {
		return err
	}

	if err := s.sender.Send(ctx, s.message(s.cfg.AdminEmail, adminMail)); err != nil {
		return err
	}
	return s.sender.Send(ctx, s.message(b.Email, userMail))
}

func (s *bookingService) RespondToBooking(ctx context.Context, req model.RespondRequest) (*model.Booking, error) {
	id := strings.TrimSpace(req.BookingID)
	if id == "" {
		return nil, apperrors.NotFound("Booking")
	}

	status := model.Status(strings.TrimSpace(req.Status.String()))
	seats := strings.TrimSpace(req.Seats)

	booking, err := s.repo.Update(ctx, id, func(b *model.Booking) error {
		if status == "" {
			return errStatusRequired
		}
		b.Status = status
		b.Seats = seats
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound):
			return nil, apperrors.NotFound("Booking")
		case errors.Is(err, errStatusRequired):
			return nil, apperrors.Validation(msgStatusRequired, nil)
		default:
			s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
			return nil, apperrors.Internal("Failed to update booking", err)
		}
	}

	log := s.cfg.Log.With("id", id)
	if !booking.Status.IsKnown() {
		log.Warn("Booking responded with unrecognized status", "status", booking.Status)
	}
	log.Info("Booking responded", "status", booking.Status, "seats", booking.Seats)

	update, err := mail.UserStatusUpdate(mail.StatusUpdateData{
		Name:    booking.Name,
		Status:  booking.Status,
		Date:    booking.Date,
		Time:    booking.Time,
		Members: booking.Members.String(),
		Seats:   booking.Seats,
	})
	if err == nil {
		err = s.sender.Send(ctx, s.message(booking.Email, update))
	}
	s.publish(ctx, events.BookingResponded(booking))
	if err != nil {
		log.Error("Failed to send response email", "error", err)
		return booking, apperrors.Delivery(msgResponseEmailFail, err)
	}

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NotFound("Booking")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Booking")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) message(to string, email mail.Email) mailer.Message {
	return mailer.Message{
		FromName:    s.cfg.SenderName,
		FromAddress: s.cfg.SenderEmail,
		To:          to,
		Subject:     email.Subject,
		HTML:        email.HTML,
	}
}

// publish runs after mail delivery so a slow broker never delays the emails.
func (s *bookingService) publish(ctx context.Context, event events.Event) {
	if err := events.PublishDetached(ctx, s.publisher, event, s.publishTimeout); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "type", event.Type, "key", event.Key(), "error", err)
	}
}
