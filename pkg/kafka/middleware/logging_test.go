package kafka_middleware

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"reservations/pkg/kafka"
	"reservations/pkg/logger"
)

func TestLoggingProducerMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		nextErr  error
		wantLogs []string
	}{
		{
			name:     "success logged at debug",
			wantLogs: []string{"Published kafka message", "topic=bookings", "key=abc123"},
		},
		{
			name:     "failure logged and returned",
			nextErr:  errors.New("broker down"),
			wantLogs: []string{"Failed to publish kafka message", "broker down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.Config{Level: logger.DEBUG, Format: logger.TEXT, Output: &buf})

			mw := LoggingProducerMiddleware(log)
			called := false
			err := mw(context.Background(), kafka.Message{Topic: "bookings", Key: "abc123"}, func(context.Context, kafka.Message) error {
				called = true
				return tt.nextErr
			})

			if !called {
				t.Fatal("expected next to be called")
			}
			if !errors.Is(err, tt.nextErr) {
				t.Errorf("expected error %v, got %v", tt.nextErr, err)
			}
			for _, want := range tt.wantLogs {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("expected log to contain %q, got %s", want, buf.String())
				}
			}
		})
	}
}
