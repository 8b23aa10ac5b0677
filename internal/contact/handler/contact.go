package handler

import (
	"encoding/json"
	"net/http"

	"reservations/internal/contact/service"
	apperrors "reservations/pkg/errors"
	httputil "reservations/pkg/http"
	"reservations/pkg/logger"
	"reservations/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const msgContactSent = "Message sent successfully."

type ContactHandler struct {
	service service.ContactService
	log     *logger.Logger
}

func NewContactHandler(service service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log,
	}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var msg model.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body.")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.SubmitContact(r.Context(), &msg); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, msgContactSent); err != nil {
		h.log.Error("failed to write success response", "handler", "Submit", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ContactHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/contact", h.Submit)
}
