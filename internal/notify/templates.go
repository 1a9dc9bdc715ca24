package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

// Subjects of the transactional emails.
const (
	SubjectPasswordReset = "Redefinição de senha • Agenda Beleza"
	SubjectBookingClient = "🗓️ Marcação registada"
	SubjectBookingAdmin  = "📢 Nova marcação pendente"
)

const (
	templateResetEmail    = "reset_email.html"
	templateBookingNotice = "confirmacao_marcacao.html"
	templateBookingAdmin  = "nova_marcacao_admin.html"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ResetEmailData fills the password reset email.
type ResetEmailData struct {
	Name      string
	ResetLink string
	ValidFor  string
}

// BookingConfirmationData fills the email sent to the client.
type BookingConfirmationData struct {
	Name    string
	Service string
	When    string
}

// BookingAlertData fills the email sent to the salon.
type BookingAlertData struct {
	ClientName  string
	ClientEmail string
	Service     string
	When        string
	Notes       string
}

// RenderResetEmail renders the password reset email body.
func RenderResetEmail(data ResetEmailData) (string, error) {
	return render(templateResetEmail, data)
}

// RenderBookingConfirmation renders the client confirmation body.
func RenderBookingConfirmation(data BookingConfirmationData) (string, error) {
	return render(templateBookingNotice, data)
}

// RenderBookingAlert renders the admin alert body.
func RenderBookingAlert(data BookingAlertData) (string, error) {
	return render(templateBookingAdmin, data)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
