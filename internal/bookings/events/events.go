// Package events publishes reservation lifecycle events. Publishing is best
// effort: callers log failures and carry on.
package events

import (
	"context"
	"time"

	"reservations/pkg/model"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingResponded = "booking.responded"
	TypeContactReceived  = "contact.received"

	schemaVersion = "1"
	source        = "reservations"

	// PublishTimeout is the default bound for PublishDetached.
	PublishTimeout = 2 * time.Second
)

type Event struct {
	Type       string       `json:"type"`
	BookingID  string       `json:"booking_id,omitempty"`
	Status     model.Status `json:"status,omitempty"`
	Seats      string       `json:"seats,omitempty"`
	Email      string       `json:"email"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// Key is the partition key: the booking id, or the sender address for
// events that have no booking.
func (e Event) Key() string {
	if e.BookingID != "" {
		return e.BookingID
	}
	return e.Email
}

func BookingCreated(b *model.Booking) Event {
	return Event{
		Type:       TypeBookingCreated,
		BookingID:  b.ID,
		Status:     b.Status,
		Email:      b.Email,
		OccurredAt: time.Now().UTC(),
	}
}

func BookingResponded(b *model.Booking) Event {
	return Event{
		Type:       TypeBookingResponded,
		BookingID:  b.ID,
		Status:     b.Status,
		Seats:      b.Seats,
		Email:      b.Email,
		OccurredAt: time.Now().UTC(),
	}
}

func ContactReceived(email string) Event {
	return Event{
		Type:       TypeContactReceived,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// PublishDetached publishes event on a context that keeps ctx's values but
// not its cancellation, bounded by timeout. A slow broker can then neither
// eat the request deadline nor be cut short by it.
func PublishDetached(ctx context.Context, p Publisher, event Event, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	return p.Publish(ctx, event)
}
