package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ekusasirakwe/portfolio-api/internal/domain"
)

// The body template interpolates untrusted form fields; html/template
// escapes them contextually, which is the XSS control for content that
// arrives from an anonymous public form.
var bodyTemplate = template.Must(template.New("contact-notification").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="font-size: 24px;">New Contact Form Submission</h1>
  <div style="margin-bottom: 20px; padding-bottom: 20px; border-bottom: 2px solid #e5e7eb;">
    <h2 style="font-size: 18px;">Contact Information</h2>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
    {{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
    {{if .Purpose}}<p><strong>Purpose:</strong> {{.Purpose}}</p>{{end}}
  </div>
  <div style="margin-bottom: 20px;">
    <h2 style="font-size: 18px;">Message</h2>
    <div style="background-color: #f3f4f6; padding: 15px; border-radius: 5px;">{{.Message}}</div>
  </div>
  <div style="padding-top: 20px; border-top: 2px solid #e5e7eb; color: #9ca3af; font-size: 12px;">
    <p>Received on: {{.ReceivedOn}}</p>
    <p>Submission ID: {{.ID}}</p>
  </div>
</div>`))

type bodyData struct {
	Name       string
	Email      string
	Phone      string
	Company    string
	Purpose    string
	Message    template.HTML
	ReceivedOn string
	ID         string
}

// RenderBody produces the HTML owner notification for one persisted
// submission. All present optional fields are included.
func RenderBody(sub *domain.ContactSubmission) (string, error) {
	data := bodyData{
		Name:       sub.Name,
		Email:      sub.Email,
		Phone:      sub.Phone,
		Company:    sub.Company,
		Purpose:    sub.Purpose,
		Message:    messageHTML(sub.Message),
		ReceivedOn: sub.CreatedAt.UTC().Format("Monday, January 2, 2006 at 15:04 MST"),
		ID:         sub.ID,
	}

	var b strings.Builder
	if err := bodyTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render notification body: %w", err)
	}
	return b.String(), nil
}

// messageHTML escapes the message text first, then turns newlines into
// line breaks. The escape must come first so the <br> tags survive.
func messageHTML(message string) template.HTML {
	escaped := template.HTMLEscapeString(message)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(escaped)
}
