package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ekusasirakwe/portfolio-api/internal/domain"
	"github.com/ekusasirakwe/portfolio-api/internal/observability"
	"github.com/ekusasirakwe/portfolio-api/internal/ratelimit"
	"github.com/ekusasirakwe/portfolio-api/internal/repository"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
	maxPageSize     = 100
)

// ContactService is the slice of the submission service the HTTP layer
// depends on.
type ContactService interface {
	Submit(ctx context.Context, sub *domain.ContactSubmission) (*domain.ContactSubmission, error)
	GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error)
	List(ctx context.Context, params repository.ListParams) ([]domain.ContactSubmission, int64, error)
}

type ContactHandler struct {
	service ContactService
	limiter ratelimit.RateLimiter
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewContactHandler wires the contact endpoints. The rate limiter and
// metrics are optional; passing nil disables them.
func NewContactHandler(
	service ContactService,
	limiter ratelimit.RateLimiter,
	logger *zap.Logger,
	metrics *observability.Metrics,
) (*ContactHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("contact service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ContactHandler{
		service: service,
		limiter: limiter,
		logger:  logger,
		metrics: metrics,
	}, nil
}

func RegisterContactRoutes(
	router fiber.Router,
	service ContactService,
	limiter ratelimit.RateLimiter,
	logger *zap.Logger,
	metrics *observability.Metrics,
) error {
	h, err := NewContactHandler(service, limiter, logger, metrics)
	if err != nil {
		return err
	}

	api := router.Group("/api")
	api.Post("/contact", h.SubmitContact)
	api.Get("/contacts", h.ListContacts)
	api.Get("/contacts/:id", h.GetContact)

	return nil
}

type submitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Purpose string `json:"purpose"`
}

type submitContactResponse struct {
	OK        bool      `json:"ok"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Purpose   string    `json:"purpose,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type listContactsResponse struct {
	Data []contactResponse `json:"data"`
	Meta listMeta          `json:"meta"`
}

type listMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

func (h *ContactHandler) SubmitContact(c *fiber.Ctx) error {
	if !h.allow(c) {
		h.metrics.IncRateLimitRejected()
		return fiber.NewError(fiber.StatusTooManyRequests, "too many submissions, please try again later")
	}

	var req submitContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	sub := &domain.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Phone:   req.Phone,
		Company: req.Company,
		Purpose: req.Purpose,
	}

	created, err := h.service.Submit(c.Context(), sub)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return toHTTPError(err)
		}
		// Raw store errors stay in the log, not in the response.
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save contact")
	}

	return c.Status(fiber.StatusOK).JSON(submitContactResponse{
		OK:        true,
		ID:        created.ID,
		CreatedAt: created.CreatedAt,
	})
}

func (h *ContactHandler) GetContact(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	sub, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toContactResponse(sub))
}

func (h *ContactHandler) ListContacts(c *fiber.Ctx) error {
	params, err := parseListParams(c)
	if err != nil {
		return toHTTPError(err)
	}

	contacts, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(listContactsResponse{
		Data: toContactResponses(contacts),
		Meta: listMeta{
			Page:     params.Page,
			PageSize: params.PageSize,
			Total:    total,
		},
	})
}

// allow consults the rate limiter for the client IP. A missing limiter
// or a limiter error never blocks a submission; losing a contact
// message over a Redis hiccup costs more than letting one extra
// request through.
func (h *ContactHandler) allow(c *fiber.Ctx) bool {
	if h.limiter == nil {
		return true
	}

	ok, err := h.limiter.Allow(c.Context(), c.IP())
	if err != nil {
		h.logger.Warn("rate limiter unavailable, allowing request",
			zap.String("ip", c.IP()),
			zap.Error(err),
		)
		return true
	}
	return ok
}

func parseListParams(c *fiber.Ctx) (repository.ListParams, error) {
	params := repository.ListParams{
		Page:     c.QueryInt("page", defaultPage),
		PageSize: c.QueryInt("pageSize", defaultPageSize),
	}

	if params.Page < 1 {
		return repository.ListParams{}, fmt.Errorf("%w: page must be >= 1", domain.ErrValidation)
	}
	if params.PageSize < 1 || params.PageSize > maxPageSize {
		return repository.ListParams{}, fmt.Errorf("%w: pageSize must be between 1 and %d", domain.ErrValidation, maxPageSize)
	}

	if rawStatus := strings.TrimSpace(c.Query("status")); rawStatus != "" {
		params.Status = &rawStatus
	}

	return params, nil
}

func toContactResponses(contacts []domain.ContactSubmission) []contactResponse {
	responses := make([]contactResponse, 0, len(contacts))
	for _, contact := range contacts {
		sub := contact
		responses = append(responses, toContactResponse(&sub))
	}
	return responses
}

func toContactResponse(sub *domain.ContactSubmission) contactResponse {
	if sub == nil {
		return contactResponse{}
	}

	return contactResponse{
		ID:        sub.ID,
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
		Phone:     sub.Phone,
		Company:   sub.Company,
		Purpose:   sub.Purpose,
		Status:    sub.Status,
		CreatedAt: sub.CreatedAt,
	}
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}
