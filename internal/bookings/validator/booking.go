package validator

import (
	"errors"

	"reservations/pkg/logger"
	"reservations/pkg/model"
	"reservations/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var bookingMessages = map[string]string{
	"required": "%s is required",
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(validation.JSONFieldName)

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// Validate is a presence check only. Dates, times and party sizes are kept
// as the client sent them.
func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs, bookingMessages)
		}
		return err
	}
	return nil
}
