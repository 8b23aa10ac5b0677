package validator

import (
	"errors"
	"testing"

	"reservations/pkg/logger"
	"reservations/pkg/model"
	"reservations/pkg/validation"
)

func TestContactValidator_Validate(t *testing.T) {
	v := NewContactValidator(logger.Discard())

	tests := []struct {
		name      string
		msg       model.ContactMessage
		wantField string
	}{
		{name: "valid", msg: model.ContactMessage{Name: "Eve", Email: "eve@example.com", Message: "Hello"}},
		{name: "blank name", msg: model.ContactMessage{Name: "  ", Email: "eve@example.com", Message: "Hello"}, wantField: "name"},
		{name: "empty email", msg: model.ContactMessage{Name: "Eve", Message: "Hello"}, wantField: "email"},
		{name: "whitespace message", msg: model.ContactMessage{Name: "Eve", Email: "eve@example.com", Message: "\n\t "}, wantField: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.msg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}

			var verrs validation.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			if len(verrs) != 1 || verrs[0].Field != tt.wantField {
				t.Errorf("errors = %v, want single error on %q", verrs, tt.wantField)
			}
		})
	}
}
