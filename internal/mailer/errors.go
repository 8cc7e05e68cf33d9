package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// MailerError classifies transport failures as transient/permanent.
// The pipeline never retries either kind; the flag exists for logs
// and for operators reading them.
type MailerError struct {
	StatusCode int
	Message    string
	Transient  bool
	Cause      error
}

func (e *MailerError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 4)
	parts = append(parts, "mailer error")

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *MailerError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// IsTransient reports whether a send failure looks retriable.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var mailerErr *MailerError
	if errors.As(err, &mailerErr) {
		return mailerErr.Transient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
