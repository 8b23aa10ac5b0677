package validation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email,omitempty" validate:"required"`
	Secret string `json:"-" validate:"required"`
	Plain  string `validate:"required"`
}

func TestTranslate(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(JSONFieldName)

	err := v.Struct(sample{})
	var raw validator.ValidationErrors
	if !errors.As(err, &raw) {
		t.Fatalf("Struct() error = %v, want validator.ValidationErrors", err)
	}

	got := Translate(raw, map[string]string{"required": "%s is required"})

	if want := []string{"name", "email", "Secret", "Plain"}; !reflect.DeepEqual(got.Fields(), want) {
		t.Errorf("Fields() = %v, want %v", got.Fields(), want)
	}
	if got[0].Message != "name is required" {
		t.Errorf("message = %q", got[0].Message)
	}
}

func TestTranslate_UnknownTagKeepsLibraryMessage(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(JSONFieldName)

	var raw validator.ValidationErrors
	if !errors.As(v.Struct(sample{Name: "a", Email: "b", Secret: "c"}), &raw) {
		t.Fatal("expected validation errors")
	}

	got := Translate(raw, nil)
	if len(got) != 1 || got[0].Message != raw[0].Error() {
		t.Errorf("Translate() = %v, want the library message", got)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	tests := []struct {
		name string
		errs ValidationErrors
		want string
	}{
		{name: "empty", errs: nil, want: ""},
		{
			name: "two fields",
			errs: ValidationErrors{{Field: "name", Message: "name is required"}, {Field: "email", Message: "email is required"}},
			want: "validation failed: 2 error(s): [name: name is required; email: email is required]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.errs.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
