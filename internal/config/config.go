package config

import (
	"fmt"
	"strings"

	"github.com/Netflix/go-env"
)

// Config is the full environment surface of the API process. Exactly
// one mail transport is activated by which credentials are present;
// Redis and the assistant gateway are optional.
type Config struct {
	DatabaseDSN string `env:"DATABASE_DSN,required=true"`
	APIPort     int    `env:"API_PORT,default=8080"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	ContactRecipient string `env:"CONTACT_RECIPIENT,required=true"`
	MailFrom         string `env:"MAIL_FROM,default=Portfolio Contact <onboarding@resend.dev>"`

	ResendAPIKey   string `env:"RESEND_API_KEY"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       int    `env:"SMTP_PORT,default=587"`
	SMTPUser       string `env:"SMTP_USER"`
	SMTPPass       string `env:"SMTP_PASS"`
	SMTPSecure     bool   `env:"SMTP_SECURE,default=false"`

	RedisURL        string `env:"REDIS_URL"`
	RateLimitPerMin int    `env:"RATE_LIMIT_PER_MIN,default=5"`

	AssistantAPIKey       string `env:"ASSISTANT_API_KEY"`
	AssistantAPIURL       string `env:"ASSISTANT_API_URL,default=https://ai.gateway.lovable.dev/v1/chat/completions"`
	AssistantModel        string `env:"ASSISTANT_MODEL,default=google/gemini-2.5-flash"`
	AssistantSystemPrompt string `env:"ASSISTANT_SYSTEM_PROMPT"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// HasSMTP reports whether SMTP relay credentials are complete.
func (c *Config) HasSMTP() bool {
	return strings.TrimSpace(c.SMTPHost) != "" &&
		strings.TrimSpace(c.SMTPUser) != "" &&
		strings.TrimSpace(c.SMTPPass) != ""
}
