package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ekusasirakwe/portfolio-api/internal/domain"
	"github.com/ekusasirakwe/portfolio-api/internal/mailer"
)

type fakeMailer struct {
	backend string
	sendFn  func(ctx context.Context, email mailer.Email) (*mailer.Receipt, error)
}

func (f *fakeMailer) Backend() string {
	if f.backend == "" {
		return "fake"
	}
	return f.backend
}

func (f *fakeMailer) Send(ctx context.Context, email mailer.Email) (*mailer.Receipt, error) {
	if f.sendFn == nil {
		return &mailer.Receipt{}, nil
	}
	return f.sendFn(ctx, email)
}

func persistedSubmission() *domain.ContactSubmission {
	return &domain.ContactSubmission{
		ID:        "3f1aef20-0a68-4fbb-8d7e-2c2a5a3f7e01",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Message:   "Hello there",
		Purpose:   "freelance",
		Status:    domain.StatusNew,
		CreatedAt: time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestDispatcherNotifyDelivered(t *testing.T) {
	t.Parallel()

	var gotEmail mailer.Email
	m := &fakeMailer{
		sendFn: func(ctx context.Context, email mailer.Email) (*mailer.Receipt, error) {
			gotEmail = email
			return &mailer.Receipt{StatusCode: 200, MessageID: "msg-1"}, nil
		},
	}

	d, err := NewDispatcher(m, "Portfolio Contact <onboarding@resend.dev>", "owner@example.com", nil, nil)
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	outcome := d.Notify(context.Background(), persistedSubmission())
	if outcome.Status != OutcomeDelivered {
		t.Fatalf("Status = %s, want delivered (reason=%s)", outcome.Status, outcome.Reason)
	}
	if outcome.MessageID != "msg-1" {
		t.Fatalf("MessageID = %q, want msg-1", outcome.MessageID)
	}

	if gotEmail.To != "owner@example.com" {
		t.Fatalf("To = %q, want configured recipient", gotEmail.To)
	}
	if gotEmail.ReplyTo != "jane@example.com" {
		t.Fatalf("ReplyTo = %q, want the submitter's address", gotEmail.ReplyTo)
	}
	if gotEmail.Subject != "New Contact: Jane Doe - freelance" {
		t.Fatalf("Subject = %q", gotEmail.Subject)
	}
	if !strings.Contains(gotEmail.HTML, "Jane Doe") {
		t.Fatal("body should contain the submitter's name")
	}
	if !strings.Contains(gotEmail.HTML, persistedSubmission().ID) {
		t.Fatal("body should contain the submission id")
	}
}

func TestDispatcherNotifyFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	m := &fakeMailer{
		sendFn: func(ctx context.Context, email mailer.Email) (*mailer.Receipt, error) {
			return nil, &mailer.MailerError{StatusCode: 500, Message: "upstream down", Transient: true}
		},
	}

	d, err := NewDispatcher(m, "owner@example.com", "owner@example.com", nil, nil)
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	outcome := d.Notify(context.Background(), persistedSubmission())
	if outcome.Status != OutcomeFailed {
		t.Fatalf("Status = %s, want failed", outcome.Status)
	}
	if !strings.Contains(outcome.Reason, "upstream down") {
		t.Fatalf("Reason = %q, want transport message", outcome.Reason)
	}
}

func TestDispatcherNotifySkippedWithoutBackend(t *testing.T) {
	t.Parallel()

	d, err := NewDispatcher(nil, "owner@example.com", "owner@example.com", nil, nil)
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	outcome := d.Notify(context.Background(), persistedSubmission())
	if outcome.Status != OutcomeSkipped {
		t.Fatalf("Status = %s, want skipped", outcome.Status)
	}
	if !strings.Contains(outcome.Reason, "no mail backend") {
		t.Fatalf("Reason = %q", outcome.Reason)
	}
}

func TestDispatcherNotifyTimesOut(t *testing.T) {
	t.Parallel()

	m := &fakeMailer{
		sendFn: func(ctx context.Context, email mailer.Email) (*mailer.Receipt, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	d, err := NewDispatcher(m, "owner@example.com", "owner@example.com", nil, nil)
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}
	d.timeout = 10 * time.Millisecond

	outcome := d.Notify(context.Background(), persistedSubmission())
	if outcome.Status != OutcomeFailed {
		t.Fatalf("Status = %s, want failed after timeout", outcome.Status)
	}
	if !strings.Contains(outcome.Reason, "deadline") {
		t.Fatalf("Reason = %q, want a deadline error", outcome.Reason)
	}
}

func TestNewDispatcherValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewDispatcher(nil, "owner@example.com", "  ", nil, nil); err == nil {
		t.Fatal("NewDispatcher() should require a recipient")
	}
	if _, err := NewDispatcher(nil, "", "owner@example.com", nil, nil); err == nil {
		t.Fatal("NewDispatcher() should require a sender")
	}
}
