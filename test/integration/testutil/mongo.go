package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reservations/pkg/model"
)

const (
	DefaultDatabaseName = "reservations"
	ConnectionTimeout   = 10 * time.Second
	BookingsCollection  = "Bookings"
)

// MongoHelper reads what the server stored, so tests can recover booking ids
// that the public API never returns.
type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}

// BookingByEmail returns the most recent booking submitted with email.
func (m *MongoHelper) BookingByEmail(t *testing.T, email string) model.Booking {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var booking model.Booking
	if err := m.Database.Collection(BookingsCollection).FindOne(ctx, bson.M{"email": email}, opts).Decode(&booking); err != nil {
		t.Fatalf("failed to find booking for %s: %v", email, err)
	}
	return booking
}

// DeleteBookingsByEmail removes the records a test created.
func (m *MongoHelper) DeleteBookingsByEmail(t *testing.T, email string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := m.Database.Collection(BookingsCollection).DeleteMany(ctx, bson.M{"email": email}); err != nil {
		t.Logf("warning: failed to clean bookings for %s: %v", email, err)
	}
}
