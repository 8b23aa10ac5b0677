package testutil

import (
	"os"
	"testing"
	"time"
)

const DefaultHealthCheckTimeout = 30 * time.Second

// TestEnv describes a running reservations server. Integration tests are
// skipped unless TEST_SERVER_URL points at one. Run the server with
// MAIL_TRANSPORT=log so no real mail leaves the test, and with
// RATE_LIMIT_REQUESTS above the default since the suite posts more than ten
// requests a minute from one address.
type TestEnv struct {
	ServerURL    string
	MongoURI     string
	DatabaseName string
}

func NewTestEnv() *TestEnv {
	return &TestEnv{
		ServerURL:    os.Getenv("TEST_SERVER_URL"),
		MongoURI:     os.Getenv("TEST_MONGO_URI"),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
	}
}

// Setup returns a client for the server, plus a Mongo helper when the server
// is backed by Mongo and TEST_MONGO_URI is set.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *Client) {
	t.Helper()

	if e.ServerURL == "" {
		t.Skip("TEST_SERVER_URL not set; skipping integration test")
	}

	client := NewClient(e.ServerURL)
	client.WaitForHealthy(t, DefaultHealthCheckTimeout)

	var mongo *MongoHelper
	if e.MongoURI != "" {
		mongo = NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	}
	return mongo, client
}

// RequireMongo skips the test when no Mongo helper is available.
func RequireMongo(t *testing.T, mongo *MongoHelper) {
	t.Helper()
	if mongo == nil {
		t.Skip("TEST_MONGO_URI not set; skipping test that inspects stored bookings")
	}
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()
	if mongo != nil {
		mongo.Close(t)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
