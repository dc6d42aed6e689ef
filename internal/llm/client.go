// ABOUTME: Completion adapter wrapping the Groq chat-completion API via go-openai
// ABOUTME: Classifies provider failures into user-presentable sentinel errors

package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/shopease/support-gateway/internal/config"
	"github.com/shopease/support-gateway/internal/store"
)

// Sentinel errors for completion failures. Their messages are
// user-presentable on purpose: the orchestrator turns them into fallback
// chat replies, so they must read like something a support agent would say.
var (
	// ErrNotConfigured is returned when no API key was supplied at startup.
	ErrNotConfigured = errors.New("The support assistant is not configured yet. Please set GROQ_API_KEY and restart.")

	// ErrEmptyResponse is returned when the provider answers with no text.
	ErrEmptyResponse = errors.New("I'm sorry, I couldn't come up with a response. Please try again.")

	// ErrAuth covers credential and permission failures (401/403).
	ErrAuth = errors.New("There's a configuration issue on our end. Please contact support.")

	// ErrRateLimit covers provider throttling (429).
	ErrRateLimit = errors.New("I'm experiencing high demand right now. Please wait a moment and try again.")

	// ErrGeneric covers every other provider failure.
	ErrGeneric = errors.New("I'm sorry, something went wrong. Please try again.")
)

// completionAPI is the slice of the go-openai client this adapter uses.
// Tests substitute a stub.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client generates support replies from conversation history.
type Client struct {
	api         completionAPI
	model       string
	temperature float32
	maxTokens   int
	window      int
	logger      *slog.Logger
}

// New creates a completion client from configuration. The credential is
// checked once here: with no API key the client is still usable, but every
// GenerateReply call returns ErrNotConfigured.
func New(cfg config.LLMConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		window:      cfg.HistoryWindow,
		logger:      logger.With("component", "llm"),
	}

	if cfg.APIKey == "" {
		c.logger.Warn("no API key configured, completion disabled")
		return c
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}
	c.api = openai.NewClientWithConfig(apiConfig)

	c.logger.Info("completion client initialized", "model", cfg.Model, "base_url", apiConfig.BaseURL)
	return c
}

// GenerateReply produces the assistant's reply for a conversation.
// history is the ordered prior turns (at most the configured window is
// forwarded); userMessage is appended as the final user turn.
func (c *Client) GenerateReply(ctx context.Context, history []*store.Message, userMessage string) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    buildMessages(history, userMessage, c.window),
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", c.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", ErrEmptyResponse
	}

	return reply, nil
}

// classify maps a provider error onto a user-presentable sentinel.
// The raw error is logged here and never shown to the user.
func (c *Client) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		c.logger.Error("completion request failed",
			"status", apiErr.HTTPStatusCode,
			"type", apiErr.Type,
			"error", fmt.Sprintf("%v", apiErr))

		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrAuth
		case http.StatusTooManyRequests:
			return ErrRateLimit
		default:
			return ErrGeneric
		}
	}

	c.logger.Error("completion request failed", "error", err)
	return ErrGeneric
}
