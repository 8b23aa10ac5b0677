package testutil

// BookingPayload is the wire shape of POST /api/book. Members is left as any
// so tests can send both numbers and strings.
type BookingPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Members any    `json:"members"`
}

type BookingBuilder struct {
	b BookingPayload
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		b: BookingPayload{
			Name:    "Ana Ruiz",
			Email:   UniqueEmail("ana"),
			Date:    "2025-03-14",
			Time:    "19:30",
			Members: 4,
		},
	}
}

func (b *BookingBuilder) WithName(name string) *BookingBuilder {
	b.b.Name = name
	return b
}

func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.b.Email = email
	return b
}

func (b *BookingBuilder) WithDate(date string) *BookingBuilder {
	b.b.Date = date
	return b
}

func (b *BookingBuilder) WithTime(t string) *BookingBuilder {
	b.b.Time = t
	return b
}

func (b *BookingBuilder) WithMembers(members any) *BookingBuilder {
	b.b.Members = members
	return b
}

func (b *BookingBuilder) Build() BookingPayload {
	return b.b
}

func ValidBooking() BookingPayload {
	return NewBookingBuilder().Build()
}

type ContactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func ValidContact() ContactPayload {
	return ContactPayload{
		Name:    "Bo Lind",
		Email:   UniqueEmail("bo"),
		Message: "Do you have vegan options?\nThanks!",
	}
}
