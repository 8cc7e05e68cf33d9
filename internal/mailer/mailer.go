package mailer

import (
	"context"

	"github.com/ekusasirakwe/portfolio-api/internal/config"
)

// Backend names, used as the metrics label and in dispatch logs.
const (
	BackendResend   = "resend"
	BackendSendGrid = "sendgrid"
	BackendSMTP     = "smtp"
)

// Mailer is the outbound email delivery port. Exactly one concrete
// implementation is active per process, selected at startup by which
// credentials are configured.
type Mailer interface {
	Send(ctx context.Context, email Email) (*Receipt, error)
	Backend() string
}

// Email is the normalized message handed to a transport.
type Email struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Receipt stores transport call metadata for logging.
type Receipt struct {
	StatusCode int
	MessageID  string
}

// NewFromConfig picks the single active transport by credential
// presence: Resend first, then SendGrid, then SMTP. A nil Mailer with
// a nil error means no backend is configured; the caller treats that
// as a skipped (non-fatal) notification path.
func NewFromConfig(cfg *config.Config) (Mailer, error) {
	switch {
	case cfg.ResendAPIKey != "":
		return NewResendMailer(cfg.ResendAPIKey)
	case cfg.SendGridAPIKey != "":
		return NewSendGridMailer(cfg.SendGridAPIKey)
	case cfg.HasSMTP():
		return NewSMTPMailer(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			Implicit: cfg.SMTPSecure,
		})
	default:
		return nil, nil
	}
}
