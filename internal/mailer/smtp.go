package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig carries relay credentials. Implicit selects TLS-on-connect
// (port 465 style); otherwise STARTTLS is required on the submission port.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Implicit bool
}

// SMTPMailer delivers notifications through a plain SMTP relay
// (e.g. Gmail with an app password).
type SMTPMailer struct {
	client *gomail.Client
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if strings.TrimSpace(cfg.Username) == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp credentials are required")
	}

	port := cfg.Port
	if port <= 0 {
		port = 587
	}

	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(strings.TrimSpace(cfg.Username)),
		gomail.WithPassword(cfg.Password),
		gomail.WithTimeout(defaultSendTimeout),
	}
	if cfg.Implicit {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build smtp client: %w", err)
	}

	return &SMTPMailer{client: client}, nil
}

func (m *SMTPMailer) Backend() string { return BackendSMTP }

func (m *SMTPMailer) Send(ctx context.Context, email Email) (*Receipt, error) {
	if m == nil || m.client == nil {
		return nil, fmt.Errorf("mailer is not initialized")
	}

	msg := gomail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return nil, &MailerError{
			Message: fmt.Sprintf("invalid from address %q", email.From),
			Cause:   err,
		}
	}
	if err := msg.To(email.To); err != nil {
		return nil, &MailerError{
			Message: fmt.Sprintf("invalid recipient address %q", email.To),
			Cause:   err,
		}
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return nil, &MailerError{
				Message: fmt.Sprintf("invalid reply-to address %q", email.ReplyTo),
				Cause:   err,
			}
		}
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, email.HTML)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return nil, &MailerError{
			Message:   "smtp delivery failed",
			Transient: !errors.Is(err, context.Canceled),
			Cause:     err,
		}
	}

	return &Receipt{}, nil
}
