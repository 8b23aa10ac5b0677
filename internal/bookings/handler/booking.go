package handler

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"reservations/internal/bookings/service"
	apperrors "reservations/pkg/errors"
	httputil "reservations/pkg/http"
	"reservations/pkg/logger"
	"reservations/pkg/model"
	"reservations/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
)

const (
	msgAPIRunning     = "API is running..."
	msgBookingSent    = "Booking request sent."
	msgInvalidBody    = "Invalid request body."
	msgInvalidBooking = "<h3>❌ Invalid or expired booking ID.</h3>"
)

//go:embed templates/respond.html
var pageFS embed.FS

var respondPage = template.Must(template.ParseFS(pageFS, "templates/respond.html"))

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Root(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteText(w, http.StatusOK, msgAPIRunning); err != nil {
		h.log.Error("failed to write text response", "handler", "Root", "operation", "WriteText", "error", err)
	}
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Rejected booking request body", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(msgInvalidBody)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if _, err := h.service.SubmitBooking(r.Context(), &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, msgBookingSent); err != nil {
		h.log.Error("failed to write success response", "handler", "Book", "operation", "WriteSuccess", "error", err)
	}
}

// AdminRespondPage serves the page linked from the admin notice. The page
// collects a status (and seat count for "limited") and calls /api/respond.
func (h *BookingHandler) AdminRespondPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	booking, err := h.service.GetBooking(r.Context(), r.URL.Query().Get("bookingId"))
	if err != nil {
		status, body := http.StatusInternalServerError, "<h3>Something went wrong. Please try again.</h3>"
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			status, body = http.StatusNotFound, msgInvalidBooking
		}
		if writeErr := httputil.WriteHTML(w, status, body); writeErr != nil {
			h.log.Error("failed to write HTML response", "handler", "AdminRespondPage", "operation", "WriteHTML", "error", writeErr)
		}
		return
	}

	var buf bytes.Buffer
	if err := respondPage.Execute(&buf, booking); err != nil {
		h.log.Error("failed to render respond page", "id", booking.ID, "error", err)
		_ = httputil.WriteHTML(w, http.StatusInternalServerError, "<h3>Something went wrong. Please try again.</h3>")
		return
	}

	if err := httputil.WriteHTML(w, http.StatusOK, buf.String()); err != nil {
		h.log.Error("failed to write HTML response", "handler", "AdminRespondPage", "operation", "WriteHTML", "error", err)
	}
}

// Respond answers with an HTML fragment because the admin page shows the
// body verbatim in its dialog.
func (h *BookingHandler) Respond(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	booking, err := h.service.RespondToBooking(r.Context(), model.RespondRequest{
		BookingID: query.Get("bookingId"),
		Status:    model.Status(query.Get("status")),
		Seats:     query.Get("seats"),
	})
	if err != nil {
		appErr := apperrors.AsAppError(err)
		if writeErr := httputil.WriteHTML(w, appErr.StatusCode(), sanitizer.EscapeHTML(appErr.Message)); writeErr != nil {
			h.log.Error("failed to write HTML response", "handler", "Respond", "operation", "WriteHTML", "error", writeErr)
		}
		return
	}

	body := fmt.Sprintf("<h3>%s response sent successfully.</h3><p>Email sent to <b>%s</b>.</p>",
		sanitizer.EscapeHTML(strings.ToUpper(booking.Status.String())),
		sanitizer.EscapeHTML(booking.Email),
	)
	if err := httputil.WriteHTML(w, http.StatusOK, body); err != nil {
		h.log.Error("failed to write HTML response", "handler", "Respond", "operation", "WriteHTML", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Root)
	router.POST("/api/book", h.Book)
	router.GET("/admin/respond", h.AdminRespondPage)
	router.GET("/api/respond", h.Respond)
}
