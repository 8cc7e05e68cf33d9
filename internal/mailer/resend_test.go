package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResendMailerSendSuccess(t *testing.T) {
	t.Parallel()

	var gotBody resendRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")

		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"re-msg-1"}`))
	}))
	defer server.Close()

	m, err := NewResendMailerWithClient("re_test_key", server.URL, newTestRestyClient())
	if err != nil {
		t.Fatalf("NewResendMailerWithClient() error = %v", err)
	}

	email := Email{
		From:    "Portfolio Contact <onboarding@resend.dev>",
		To:      "owner@example.com",
		ReplyTo: "jane@example.com",
		Subject: "New Contact: Jane Doe - freelance",
		HTML:    "<p>Hello</p>",
	}

	receipt, err := m.Send(context.Background(), email)
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}

	if receipt.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200", receipt.StatusCode)
	}
	if receipt.MessageID != "re-msg-1" {
		t.Fatalf("MessageID = %q, want re-msg-1", receipt.MessageID)
	}
	if gotAuth != "Bearer re_test_key" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}

	if len(gotBody.To) != 1 || gotBody.To[0] != email.To {
		t.Fatalf("request.to = %v, want [%s]", gotBody.To, email.To)
	}
	if gotBody.ReplyTo != email.ReplyTo {
		t.Fatalf("request.reply_to = %q, want %q", gotBody.ReplyTo, email.ReplyTo)
	}
	if gotBody.Subject != email.Subject {
		t.Fatalf("request.subject = %q, want %q", gotBody.Subject, email.Subject)
	}
	if gotBody.HTML != email.HTML {
		t.Fatalf("request.html = %q, want %q", gotBody.HTML, email.HTML)
	}
}

func TestResendMailerSendStatusClassification(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		statusCode    int
		wantTransient bool
	}{
		{name: "too many requests is transient", statusCode: http.StatusTooManyRequests, wantTransient: true},
		{name: "unauthorized is permanent", statusCode: http.StatusUnauthorized, wantTransient: false},
		{name: "unprocessable entity is permanent", statusCode: http.StatusUnprocessableEntity, wantTransient: false},
		{name: "internal server error is transient", statusCode: http.StatusInternalServerError, wantTransient: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			}))
			defer server.Close()

			m, err := NewResendMailerWithClient("re_test_key", server.URL, newTestRestyClient())
			if err != nil {
				t.Fatalf("NewResendMailerWithClient() error = %v", err)
			}

			_, err = m.Send(context.Background(), Email{To: "owner@example.com"})
			if err == nil {
				t.Fatal("Send() expected error, got nil")
			}

			var mailerErr *MailerError
			if !errors.As(err, &mailerErr) {
				t.Fatalf("error type = %T, want *MailerError", err)
			}
			if mailerErr.StatusCode != tc.statusCode {
				t.Fatalf("StatusCode = %d, want %d", mailerErr.StatusCode, tc.statusCode)
			}
			if IsTransient(err) != tc.wantTransient {
				t.Fatalf("IsTransient() = %v, want %v", IsTransient(err), tc.wantTransient)
			}
		})
	}
}

func TestNewResendMailerValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewResendMailer("   "); err == nil {
		t.Fatal("NewResendMailer() should reject a blank api key")
	}
	if _, err := NewResendMailerWithClient("re_key", "", nil); err == nil {
		t.Fatal("NewResendMailerWithClient() should reject a nil client")
	}
}
