package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "reservations/internal/bookings/errors"
	"reservations/pkg/config"
	"reservations/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"

	maxUpdateAttempts = 5
)

var errConcurrentUpdate = errors.New("booking was modified concurrently")

// bookingCollection is the part of *mongo.Collection the repository uses.
type bookingCollection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection bookingCollection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds ctx by timeout without extending an earlier deadline.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func now() time.Time {
	// Mongo stores milliseconds; truncating keeps round-tripped values equal.
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) (string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	ts := now()
	booking.CreatedAt = ts
	booking.UpdatedAt = ts

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", bookingserrors.ErrDuplicateID
		}
		return "", fmt.Errorf("failed to create booking: %w", err)
	}

	return booking.ID, nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findByID(ctx, id)
}

func (r *mongoBookingRepository) findByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

// Update replaces the document only if updated_at still matches the value
// that was read, retrying on a lost race. Standalone servers have no
// multi-document transactions, so this is the per-record guard.
func (r *mongoBookingRepository) Update(ctx context.Context, id string, fn func(*model.Booking) error) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		booking, err := r.findByID(ctx, id)
		if err != nil {
			return nil, err
		}

		previous := booking.UpdatedAt
		if err := fn(booking); err != nil {
			return nil, err
		}
		booking.ID = id
		booking.UpdatedAt = now()

		filter := bson.M{"_id": id, "updated_at": previous}
		result, err := r.collection.ReplaceOne(ctx, filter, booking)
		if err != nil {
			return nil, fmt.Errorf("failed to update booking: %w", err)
		}
		if result.MatchedCount == 1 {
			return booking, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", errConcurrentUpdate, id)
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
