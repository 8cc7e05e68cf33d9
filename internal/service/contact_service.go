package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ekusasirakwe/portfolio-api/internal/domain"
	"github.com/ekusasirakwe/portfolio-api/internal/notify"
	"github.com/ekusasirakwe/portfolio-api/internal/observability"
	"github.com/ekusasirakwe/portfolio-api/internal/repository"
	"go.uber.org/zap"
)

// Submission results as counted in metrics.
const (
	resultAccepted   = "accepted"
	resultRejected   = "rejected"
	resultStoreError = "store_error"
)

// Notifier delivers a best-effort owner notification for a persisted
// submission. Its outcome never fails a request.
type Notifier interface {
	Notify(ctx context.Context, sub *domain.ContactSubmission) notify.Outcome
}

// ContactService orchestrates the submission pipeline:
// validate, persist, then notify best-effort.
type ContactService struct {
	contacts repository.ContactRepository
	notifier Notifier
	logger   *zap.Logger
	metrics  *observability.Metrics
}

func NewContactService(
	contacts repository.ContactRepository,
	notifier Notifier,
	logger *zap.Logger,
	metrics *observability.Metrics,
) (*ContactService, error) {
	if contacts == nil {
		return nil, fmt.Errorf("contact repository is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ContactService{
		contacts: contacts,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// Submit runs the pipeline for one raw submission. Validation and
// store errors are returned to the caller; the notification outcome is
// observed but cannot change an accepted result. A visitor's message
// must never appear lost because an email provider is down.
func (s *ContactService) Submit(ctx context.Context, sub *domain.ContactSubmission) (*domain.ContactSubmission, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: submission is required", domain.ErrValidation)
	}

	log := observability.WithContextLogger(s.logger, ctx)

	sub.Normalize()
	if err := sub.Validate(); err != nil {
		s.metrics.IncSubmission(resultRejected)
		return nil, err
	}

	if err := s.contacts.Create(ctx, sub); err != nil {
		s.metrics.IncSubmission(resultStoreError)
		log.Error("failed to persist contact submission", zap.Error(err))
		return nil, err
	}
	s.metrics.IncSubmission(resultAccepted)

	outcome := s.notifier.Notify(ctx, sub)
	log.Info("contact submission processed",
		zap.String("submissionId", sub.ID),
		zap.String("notification", outcome.Status.String()),
	)

	return sub, nil
}

func (s *ContactService) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: submission id is required", domain.ErrValidation)
	}
	return s.contacts.GetByID(ctx, strings.TrimSpace(id))
}

func (s *ContactService) List(
	ctx context.Context,
	params repository.ListParams,
) ([]domain.ContactSubmission, int64, error) {
	return s.contacts.List(ctx, params)
}
