package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ekusasirakwe/portfolio-api/internal/domain"
	"github.com/ekusasirakwe/portfolio-api/internal/mailer"
	"github.com/ekusasirakwe/portfolio-api/internal/observability"
	"go.uber.org/zap"
)

// OutcomeStatus classifies one notification attempt.
type OutcomeStatus string

const (
	OutcomeDelivered OutcomeStatus = "delivered"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)

func (s OutcomeStatus) String() string { return string(s) }

// Outcome is the result of a single best-effort delivery attempt.
// Attempts are never queued, retried, or persisted.
type Outcome struct {
	Status    OutcomeStatus
	Reason    string
	MessageID string
}

const defaultNotifyTimeout = 15 * time.Second

// Dispatcher formats a persisted submission into an owner notification
// and hands it to the configured mail transport. A nil mailer means no
// backend is configured; every attempt then reports Skipped.
type Dispatcher struct {
	mailer  mailer.Mailer
	from    string
	to      string
	timeout time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

func NewDispatcher(
	m mailer.Mailer,
	from string,
	to string,
	logger *zap.Logger,
	metrics *observability.Metrics,
) (*Dispatcher, error) {
	if strings.TrimSpace(to) == "" {
		return nil, fmt.Errorf("notification recipient is required")
	}
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("notification sender is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		mailer:  m,
		from:    strings.TrimSpace(from),
		to:      strings.TrimSpace(to),
		timeout: defaultNotifyTimeout,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Notify attempts delivery exactly once and never returns an error:
// transport failures are folded into the outcome so they cannot
// unwind an already persisted submission.
func (d *Dispatcher) Notify(ctx context.Context, sub *domain.ContactSubmission) Outcome {
	if sub == nil {
		return Outcome{Status: OutcomeFailed, Reason: "submission is nil"}
	}

	log := observability.WithContextLogger(d.logger, ctx).With(
		zap.String("submissionId", sub.ID),
	)

	if d.mailer == nil {
		d.metrics.IncNotification("none", OutcomeSkipped.String())
		log.Info("notification skipped: no mail backend configured")
		return Outcome{Status: OutcomeSkipped, Reason: "no mail backend configured"}
	}

	backend := d.mailer.Backend()

	html, err := RenderBody(sub)
	if err != nil {
		d.metrics.IncNotification(backend, OutcomeFailed.String())
		log.Error("notification body rendering failed", zap.Error(err))
		return Outcome{Status: OutcomeFailed, Reason: err.Error()}
	}

	email := mailer.Email{
		From:    d.from,
		To:      d.to,
		ReplyTo: sub.Email,
		Subject: subjectLine(sub),
		HTML:    html,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	receipt, err := d.mailer.Send(sendCtx, email)
	d.metrics.ObserveNotificationSendDuration(backend, time.Since(start))

	if err != nil {
		d.metrics.IncNotification(backend, OutcomeFailed.String())
		log.Warn("notification delivery failed",
			zap.String("backend", backend),
			zap.Bool("transient", mailer.IsTransient(err)),
			zap.Error(err),
		)
		return Outcome{Status: OutcomeFailed, Reason: err.Error()}
	}

	d.metrics.IncNotification(backend, OutcomeDelivered.String())
	log.Info("notification delivered",
		zap.String("backend", backend),
		zap.String("messageId", receipt.MessageID),
	)
	return Outcome{Status: OutcomeDelivered, MessageID: receipt.MessageID}
}

func subjectLine(sub *domain.ContactSubmission) string {
	purpose := sub.Purpose
	if purpose == "" {
		purpose = "General Inquiry"
	}
	return fmt.Sprintf("New Contact: %s - %s", sub.Name, purpose)
}
