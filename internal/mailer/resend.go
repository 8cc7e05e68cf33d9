package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	resendEndpoint     = "https://api.resend.com/emails"
	defaultSendTimeout = 10 * time.Second
)

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// ResendMailer delivers notifications through the Resend HTTP API.
type ResendMailer struct {
	client   *resty.Client
	endpoint string
	apiKey   string
}

func NewResendMailer(apiKey string) (*ResendMailer, error) {
	client := resty.New()
	client.SetTimeout(defaultSendTimeout)
	client.SetRetryCount(0)

	return NewResendMailerWithClient(apiKey, resendEndpoint, client)
}

func NewResendMailerWithClient(apiKey string, endpoint string, client *resty.Client) (*ResendMailer, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if trimmedEndpoint == "" {
		trimmedEndpoint = resendEndpoint
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}
	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultSendTimeout)
	}
	client.SetRetryCount(0)

	return &ResendMailer{
		client:   client,
		endpoint: trimmedEndpoint,
		apiKey:   trimmedKey,
	}, nil
}

func (m *ResendMailer) Backend() string { return BackendResend }

func (m *ResendMailer) Send(ctx context.Context, email Email) (*Receipt, error) {
	if m == nil || m.client == nil {
		return nil, fmt.Errorf("mailer is not initialized")
	}

	reqBody := resendRequest{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		HTML:    email.HTML,
		ReplyTo: email.ReplyTo,
	}

	response, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(m.apiKey).
		SetBody(reqBody).
		Post(m.endpoint)
	if err != nil {
		return nil, &MailerError{
			Message:   "resend request failed",
			Transient: !errors.Is(err, context.Canceled),
			Cause:     err,
		}
	}

	statusCode := response.StatusCode()
	responseBody := strings.TrimSpace(response.String())

	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		var parsed resendResponse
		_ = json.Unmarshal(response.Body(), &parsed)
		return &Receipt{
			StatusCode: statusCode,
			MessageID:  parsed.ID,
		}, nil
	}

	return nil, &MailerError{
		StatusCode: statusCode,
		Message:    apiErrorMessage("resend", statusCode, responseBody),
		Transient:  isTransientHTTPStatus(statusCode),
	}
}

func isTransientHTTPStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || (statusCode >= http.StatusInternalServerError && statusCode <= 599)
}

func apiErrorMessage(backend string, statusCode int, body string) string {
	base := fmt.Sprintf("%s returned status %d", backend, statusCode)
	if body == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, body)
}
