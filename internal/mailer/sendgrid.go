package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

const sendgridEndpoint = "https://api.sendgrid.com/v3/mail/send"

type sendgridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendgridPersonalization struct {
	To []sendgridAddress `json:"to"`
}

type sendgridRequest struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	ReplyTo          *sendgridAddress          `json:"reply_to,omitempty"`
	Subject          string                    `json:"subject"`
	Content          []sendgridContent         `json:"content"`
}

// SendGridMailer delivers notifications through the SendGrid v3 API.
type SendGridMailer struct {
	client   *resty.Client
	endpoint string
	apiKey   string
}

func NewSendGridMailer(apiKey string) (*SendGridMailer, error) {
	client := resty.New()
	client.SetTimeout(defaultSendTimeout)
	client.SetRetryCount(0)

	return NewSendGridMailerWithClient(apiKey, sendgridEndpoint, client)
}

func NewSendGridMailerWithClient(apiKey string, endpoint string, client *resty.Client) (*SendGridMailer, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, fmt.Errorf("sendgrid api key is required")
	}
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if trimmedEndpoint == "" {
		trimmedEndpoint = sendgridEndpoint
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}
	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultSendTimeout)
	}
	client.SetRetryCount(0)

	return &SendGridMailer{
		client:   client,
		endpoint: trimmedEndpoint,
		apiKey:   trimmedKey,
	}, nil
}

func (m *SendGridMailer) Backend() string { return BackendSendGrid }

func (m *SendGridMailer) Send(ctx context.Context, email Email) (*Receipt, error) {
	if m == nil || m.client == nil {
		return nil, fmt.Errorf("mailer is not initialized")
	}

	reqBody := sendgridRequest{
		Personalizations: []sendgridPersonalization{
			{To: []sendgridAddress{{Email: email.To}}},
		},
		From:    sendgridAddress{Email: email.From},
		Subject: email.Subject,
		Content: []sendgridContent{{Type: "text/html", Value: email.HTML}},
	}
	if email.ReplyTo != "" {
		reqBody.ReplyTo = &sendgridAddress{Email: email.ReplyTo}
	}

	response, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(m.apiKey).
		SetBody(reqBody).
		Post(m.endpoint)
	if err != nil {
		return nil, &MailerError{
			Message:   "sendgrid request failed",
			Transient: !errors.Is(err, context.Canceled),
			Cause:     err,
		}
	}

	statusCode := response.StatusCode()
	responseBody := strings.TrimSpace(response.String())

	// SendGrid acknowledges accepted mail with 202 and an empty body;
	// the message id only appears in a response header.
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return &Receipt{
			StatusCode: statusCode,
			MessageID:  strings.TrimSpace(response.Header().Get("X-Message-Id")),
		}, nil
	}

	return nil, &MailerError{
		StatusCode: statusCode,
		Message:    apiErrorMessage("sendgrid", statusCode, responseBody),
		Transient:  isTransientHTTPStatus(statusCode),
	}
}
