package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/ekusasirakwe/portfolio-api/internal/assistant"
)

// ChatAssistant answers visitor questions for the chat widget.
type ChatAssistant interface {
	Reply(ctx context.Context, messages []assistant.Message) (string, error)
}

type ChatHandler struct {
	assistant ChatAssistant
}

func NewChatHandler(a ChatAssistant) (*ChatHandler, error) {
	if a == nil {
		return nil, fmt.Errorf("assistant is required")
	}
	return &ChatHandler{assistant: a}, nil
}

func RegisterChatRoutes(router fiber.Router, a ChatAssistant) error {
	h, err := NewChatHandler(a)
	if err != nil {
		return err
	}

	router.Group("/api").Post("/chat", h.Chat)
	return nil
}

type chatRequest struct {
	Messages []assistant.Message `json:"messages"`
}

type chatReplyResponse struct {
	Reply string `json:"reply"`
}

func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	reply, err := h.assistant.Reply(c.Context(), req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrEmptyConversation):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, assistant.ErrRateLimited):
			return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
		case errors.Is(err, assistant.ErrQuotaExhausted):
			return fiber.NewError(fiber.StatusServiceUnavailable, assistant.ErrQuotaExhausted.Error())
		default:
			return fiber.NewError(fiber.StatusBadGateway, assistant.ErrUpstreamFailure.Error())
		}
	}

	return c.Status(fiber.StatusOK).JSON(chatReplyResponse{Reply: reply})
}
