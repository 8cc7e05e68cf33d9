package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultChatTimeout = 30 * time.Second

// Friendly upstream failures surfaced to the chat widget.
var (
	ErrRateLimited       = errors.New("assistant is receiving too many requests, please try again shortly")
	ErrQuotaExhausted    = errors.New("assistant is temporarily unavailable")
	ErrUpstreamFailure   = errors.New("assistant could not produce a reply")
	ErrEmptyConversation = errors.New("at least one message is required")
)

// Message is one turn of the chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Config selects between the LLM gateway (when APIKey is set) and the
// scripted fallback answers.
type Config struct {
	APIKey       string
	APIURL       string
	Model        string
	SystemPrompt string
}

// Assistant answers visitor questions about the portfolio owner. With
// an API key it proxies an OpenAI-compatible chat completions gateway;
// without one it falls back to a small scripted topic table so the
// widget keeps working.
type Assistant struct {
	client *resty.Client
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New()
	client.SetTimeout(defaultChatTimeout)
	client.SetRetryCount(0)

	return &Assistant{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Scripted reports whether replies come from the local topic table
// instead of the upstream gateway.
func (a *Assistant) Scripted() bool {
	return strings.TrimSpace(a.cfg.APIKey) == ""
}

func (a *Assistant) Reply(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", ErrEmptyConversation
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if a.Scripted() {
		return scriptedReply(messages), nil
	}

	return a.gatewayReply(ctx, messages)
}

func (a *Assistant) gatewayReply(ctx context.Context, messages []Message) (string, error) {
	payload := chatRequest{
		Model:    a.cfg.Model,
		Messages: make([]Message, 0, len(messages)+1),
	}
	if prompt := strings.TrimSpace(a.cfg.SystemPrompt); prompt != "" {
		payload.Messages = append(payload.Messages, Message{Role: "system", Content: prompt})
	}
	payload.Messages = append(payload.Messages, messages...)

	response, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(a.cfg.APIKey).
		SetBody(payload).
		Post(a.cfg.APIURL)
	if err != nil {
		a.logger.Warn("assistant gateway request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	switch response.StatusCode() {
	case http.StatusTooManyRequests:
		return "", ErrRateLimited
	case http.StatusPaymentRequired:
		return "", ErrQuotaExhausted
	}
	if response.StatusCode() >= http.StatusMultipleChoices {
		a.logger.Warn("assistant gateway returned error",
			zap.Int("status", response.StatusCode()),
			zap.String("body", strings.TrimSpace(response.String())),
		)
		return "", fmt.Errorf("%w: status %d", ErrUpstreamFailure, response.StatusCode())
	}

	var parsed chatResponse
	if err := json.Unmarshal(response.Body(), &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUpstreamFailure)
	}

	return parsed.Choices[0].Message.Content, nil
}

// scriptedTopics maps question keywords to canned answers. The first
// matching topic wins, scanning the latest user message.
var scriptedTopics = []struct {
	keywords []string
	answer   string
}{
	{
		keywords: []string{"skill", "stack", "technolog", "language"},
		answer:   "I work across the stack: TypeScript, React and Next.js on the frontend, Node.js and Go on the backend, with PostgreSQL, Firebase and Supabase for data.",
	},
	{
		keywords: []string{"project", "portfolio", "built", "work"},
		answer:   "Recent projects include a civic incident-reporting platform, an AI meal-planning app, and several production dashboards. Scroll to the projects section for details and source links.",
	},
	{
		keywords: []string{"hire", "available", "contact", "freelance", "job", "reach"},
		answer:   "The best way to get in touch is the contact form on this page: pick a purpose, leave a message, and you'll get a reply within a day or two.",
	},
	{
		keywords: []string{"experience", "year", "background"},
		answer:   "Several years of professional full-stack development with a focus on clean, well-tested code and measurable product improvements.",
	},
}

const scriptedFallback = "I can answer questions about skills, projects, and availability. For anything else, the contact form on this page is the fastest way to get a direct answer."

func scriptedReply(messages []Message) string {
	question := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if strings.EqualFold(messages[i].Role, "user") {
			question = strings.ToLower(messages[i].Content)
			break
		}
	}

	for _, topic := range scriptedTopics {
		for _, keyword := range topic.keywords {
			if strings.Contains(question, keyword) {
				return topic.answer
			}
		}
	}

	return scriptedFallback
}
