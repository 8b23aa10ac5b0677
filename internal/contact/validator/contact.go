package validator

import (
	"errors"
	"reflect"

	"reservations/pkg/logger"
	"reservations/pkg/model"
	"reservations/pkg/sanitizer"
	"reservations/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var contactMessages = map[string]string{
	"notblank": "%s must not be blank",
}

type ContactValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewContactValidator(log *logger.Logger) *ContactValidator {
	v := validator.New()
	v.RegisterTagNameFunc(validation.JSONFieldName)

	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		log.Fatal("Failed to register 'notblank' validator",
			"error", err,
		)
	}

	log.Info("Contact validator initialized successfully")

	return &ContactValidator{
		validate: v,
		logger:   log,
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return !sanitizer.IsBlank(field.String())
}

func (v *ContactValidator) Validate(msg *model.ContactMessage) error {
	if err := v.validate.Struct(msg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs, contactMessages)
		}
		return err
	}
	return nil
}
