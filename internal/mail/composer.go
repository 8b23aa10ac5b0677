// Package mail composes the reservation emails. Every value interpolated into
// a template is escaped by html/template.
package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"

	"reservations/pkg/model"
	"reservations/pkg/sanitizer"
	"reservations/pkg/timefmt"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	subjectAdminNewBooking     = "📩 New Table Reservation Request – Maison d'Élite"
	subjectUserBookingReceived = "✅ Maison d'Élite Booking Request Received"
	subjectUserStatusUpdate    = "📢 Your Table Reservation Status – Maison d'Élite"
	subjectUserContactAck      = "✅ We've received your message - Maison d'Élite"
	subjectAdminContactFormat  = "📩 New Contact Form Message from %s"

	defaultLimitedSeats = "a limited number of"
)

type Email struct {
	Subject string
	HTML    string
}

type AdminNewBookingData struct {
	BookingID string
	Name      string
	Email     string
	Date      string
	Time      string
	Members   string
	BaseURL   string
}

type UserBookingData struct {
	Name    string
	Date    string
	Time    string
	Members string
}

type StatusUpdateData struct {
	Name    string
	Status  model.Status
	Date    string
	Time    string
	Members string
	Seats   string
}

type ContactData struct {
	Name    string
	Email   string
	Message string
}

// RespondLink is the admin link embedded in the new-booking notice.
func RespondLink(baseURL, bookingID string) string {
	return baseURL + "/admin/respond?bookingId=" + url.QueryEscape(bookingID)
}

func AdminNewBooking(d AdminNewBookingData) (Email, error) {
	d.Time = timefmt.Format(d.Time)
	return render("admin_new_booking.html", subjectAdminNewBooking, struct {
		AdminNewBookingData
		RespondURL string
	}{
		AdminNewBookingData: d,
		RespondURL:          RespondLink(d.BaseURL, d.BookingID),
	})
}

func UserBookingReceived(d UserBookingData) (Email, error) {
	d.Time = timefmt.Format(d.Time)
	return render("user_booking_received.html", subjectUserBookingReceived, d)
}

// UserStatusUpdate renders the outcome of an admin response. Statuses outside
// the known set get a generic "updated" line rather than an error.
func UserStatusUpdate(d StatusUpdateData) (Email, error) {
	d.Time = timefmt.Format(d.Time)
	if d.Status == model.StatusLimited && d.Seats == "" {
		d.Seats = defaultLimitedSeats
	}
	return render("user_status_update.html", subjectUserStatusUpdate, struct {
		StatusUpdateData
		Kind string
	}{
		StatusUpdateData: d,
		Kind:             statusKind(d.Status),
	})
}

func statusKind(s model.Status) string {
	if s.IsResponse() {
		return string(s)
	}
	return "other"
}

func AdminContactNotice(d ContactData) (Email, error) {
	subject := fmt.Sprintf(subjectAdminContactFormat, sanitizer.EscapeHTML(d.Name))
	return render("admin_contact_notice.html", subject, contactView(d))
}

func UserContactAck(d ContactData) (Email, error) {
	return render("user_contact_ack.html", subjectUserContactAck, contactView(d))
}

type contactTemplateData struct {
	Name    string
	Email   string
	Message template.HTML
}

func contactView(d ContactData) contactTemplateData {
	return contactTemplateData{
		Name:  d.Name,
		Email: d.Email,
		// Already escaped; only the <br> line breaks are markup.
		Message: template.HTML(sanitizer.EscapeMultiline(d.Message)),
	}
}

func render(name, subject string, data any) (Email, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return Email{}, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return Email{Subject: subject, HTML: buf.String()}, nil
}
