package repository

import (
	"context"
	"sync"
	"time"

	bookingserrors "reservations/internal/bookings/errors"
	"reservations/pkg/model"
)

type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]model.Booking
	now      func() time.Time
}

// NewMemoryBookingRepository returns a process-local store. Records live until
// the process exits.
func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[string]model.Booking),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *model.Booking) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; exists {
		return "", bookingserrors.ErrDuplicateID
	}

	now := r.now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.bookings[booking.ID] = *booking

	return booking.ID, nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return &booking, nil
}

// Update holds the write lock for the whole read-modify-write, so concurrent
// updates of one booking apply one after another.
func (r *memoryBookingRepository) Update(ctx context.Context, id string, fn func(*model.Booking) error) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}

	if err := fn(&booking); err != nil {
		return nil, err
	}

	booking.ID = id
	booking.UpdatedAt = r.now()
	r.bookings[id] = booking

	return &booking, nil
}

func (r *memoryBookingRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.bookings)), nil
}
