package model

// ContactMessage is a contact-form submission. It is never stored.
type ContactMessage struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"notblank"`
	Message string `json:"message" validate:"notblank"`
}
