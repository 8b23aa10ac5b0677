// Package validation holds the field-level error types shared by the request
// validators, and the helpers that translate go-playground errors into them.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Fields lists the offending field names in declaration order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, err := range v {
		fields = append(fields, err.Field)
	}
	return fields
}

// JSONFieldName reports fields by their wire name so messages match what the
// client sent. Register it with RegisterTagNameFunc.
func JSONFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// Translate converts go-playground errors, using messages[tag] as a format
// taking the field name. Tags without an entry keep the library message.
func Translate(errs validator.ValidationErrors, messages map[string]string) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		message := err.Error()
		if format, ok := messages[err.Tag()]; ok {
			message = fmt.Sprintf(format, err.Field())
		}
		out = append(out, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}
	return out
}
