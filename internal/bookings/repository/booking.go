package repository

import (
	"context"

	"reservations/pkg/model"
)

// BookingRepository stores booking records. Implementations return copies so
// callers never share a record with the store.
type BookingRepository interface {
	// Create stores a new booking under booking.ID and returns that id. An id
	// already in use yields ErrDuplicateID.
	Create(ctx context.Context, booking *model.Booking) (string, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	// Update applies fn to the stored booking and persists the result. A
	// non-nil error from fn aborts the update.
	Update(ctx context.Context, id string, fn func(*model.Booking) error) (*model.Booking, error)
	Count(ctx context.Context) (int64, error)
}
