package mailer

import (
	"testing"

	"github.com/ekusasirakwe/portfolio-api/internal/config"
)

func TestNewFromConfigSelectionOrder(t *testing.T) {
	t.Parallel()

	smtpCfg := config.Config{
		SMTPHost: "smtp.gmail.com",
		SMTPPort: 587,
		SMTPUser: "owner@example.com",
		SMTPPass: "app-password",
	}

	tests := []struct {
		name        string
		cfg         config.Config
		wantBackend string
	}{
		{
			name:        "resend key wins over everything",
			cfg:         func() config.Config { c := smtpCfg; c.ResendAPIKey = "re_key"; c.SendGridAPIKey = "sg_key"; return c }(),
			wantBackend: BackendResend,
		},
		{
			name:        "sendgrid key wins over smtp",
			cfg:         func() config.Config { c := smtpCfg; c.SendGridAPIKey = "sg_key"; return c }(),
			wantBackend: BackendSendGrid,
		},
		{
			name:        "smtp credentials alone select smtp",
			cfg:         smtpCfg,
			wantBackend: BackendSMTP,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := NewFromConfig(&tt.cfg)
			if err != nil {
				t.Fatalf("NewFromConfig() error = %v", err)
			}
			if m == nil {
				t.Fatal("NewFromConfig() returned nil mailer with credentials present")
			}
			if m.Backend() != tt.wantBackend {
				t.Fatalf("Backend() = %s, want %s", m.Backend(), tt.wantBackend)
			}
		})
	}
}

func TestNewFromConfigNoBackend(t *testing.T) {
	t.Parallel()

	m, err := NewFromConfig(&config.Config{})
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	if m != nil {
		t.Fatalf("NewFromConfig() = %T, want nil when nothing is configured", m)
	}
}

func TestNewFromConfigIncompleteSMTP(t *testing.T) {
	t.Parallel()

	m, err := NewFromConfig(&config.Config{SMTPHost: "smtp.gmail.com"})
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	if m != nil {
		t.Fatal("incomplete SMTP credentials should not select a backend")
	}
}
