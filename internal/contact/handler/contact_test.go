package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "reservations/pkg/errors"
	"reservations/pkg/logger"
	"reservations/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockContactService struct {
	SubmitContactFunc func(ctx context.Context, msg *model.ContactMessage) error
}

func (m *mockContactService) SubmitContact(ctx context.Context, msg *model.ContactMessage) error {
	return m.SubmitContactFunc(ctx, msg)
}

func TestContactHandler_Submit(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		err         error
		wantStatus  int
		wantSuccess bool
		wantMessage string
	}{
		{
			name:        "success",
			body:        `{"name":"Eve","email":"eve@example.com","message":"Hi"}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Message sent successfully.",
		},
		{
			name:        "blank field",
			body:        `{"name":"Eve","email":"","message":"Hi"}`,
			err:         apperrors.Validation("All fields are required.", nil),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "All fields are required.",
		},
		{
			name:        "malformed json",
			body:        `not json`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body.",
		},
		{
			name:        "delivery failure",
			body:        `{"name":"Eve","email":"eve@example.com","message":"Hi"}`,
			err:         apperrors.Delivery("Failed to send message. Please try again later.", errors.New("smtp down")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to send message. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockContactService{
				SubmitContactFunc: func(context.Context, *model.ContactMessage) error { return tt.err },
			}
			router := httprouter.New()
			NewContactHandler(svc, logger.Discard()).RegisterRoutes(router)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Success != tt.wantSuccess || body.Message != tt.wantMessage {
				t.Errorf("body = %+v", body)
			}
		})
	}
}
