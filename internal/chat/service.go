// ABOUTME: Service is the central layer orchestrating one support-chat request
// ABOUTME: Validate, resolve session, persist, complete, persist reply - fail-soft on completion errors

package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopease/support-gateway/internal/store"
)

// fallbackReply is used when a completion failure carries no message of its
// own. The user always gets a reply; completion errors never surface as
// HTTP failures.
const fallbackReply = "I'm sorry, I'm having trouble responding right now. Please try again in a moment."

// Store defines what the service needs from storage
type Store interface {
	GetOrCreateConversation(ctx context.Context, sessionID string) (*store.Conversation, error)
	GetConversation(ctx context.Context, id string) (*store.Conversation, error)
	AddMessage(ctx context.Context, conversationID string, sender store.Sender, text string) (*store.Message, error)
	GetMessages(ctx context.Context, conversationID string) ([]*store.Message, error)
}

// Replier defines what the service needs from the completion layer
type Replier interface {
	GenerateReply(ctx context.Context, history []*store.Message, userMessage string) (string, error)
}

// Service owns the request lifecycle for incoming messages and history
// lookups. Each request is independent; the only shared state is the store.
type Service struct {
	store            Store
	replier          Replier
	maxMessageLength int
	logger           *slog.Logger
}

// New creates a new chat Service
func New(st Store, replier Replier, maxMessageLength int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:            st,
		replier:          replier,
		maxMessageLength: maxMessageLength,
		logger:           logger.With("component", "chat"),
	}
}

// Reply is the result of handling an incoming message
type Reply struct {
	Text      string // the assistant's (or fallback) reply
	SessionID string // conversation ID, echoed back as the session token
	Truncated bool   // set when the inbound message was cut to the maximum length
}

// HandleIncomingMessage validates and persists a user message, generates the
// assistant reply from conversation history, persists it, and returns it.
//
// Completion failures are absorbed: the failure's own message (which the llm
// package keeps user-presentable) becomes the reply and is persisted like a
// normal AI turn. This fail-soft path is deliberate.
func (s *Service) HandleIncomingMessage(ctx context.Context, message, sessionID string) (*Reply, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	finalMessage := trimmed
	wasTruncated := false
	if runes := []rune(trimmed); len(runes) > s.maxMessageLength {
		finalMessage = string(runes[:s.maxMessageLength])
		wasTruncated = true
		s.logger.Warn("message truncated",
			"original_length", len(runes),
			"max_length", s.maxMessageLength)
	}

	conv, err := s.store.GetOrCreateConversation(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("resolving conversation: %w", err)
	}

	if _, err := s.store.AddMessage(ctx, conv.ID, store.SenderUser, finalMessage); err != nil {
		return nil, fmt.Errorf("saving user message: %w", err)
	}

	// History now includes the message just saved
	history, err := s.store.GetMessages(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}

	reply, err := s.replier.GenerateReply(ctx, history, finalMessage)
	if err != nil {
		s.logger.Warn("completion failed, using fallback reply",
			"error", err,
			"conversation_id", conv.ID)
		reply = err.Error()
		if reply == "" {
			reply = fallbackReply
		}
	}

	if _, err := s.store.AddMessage(ctx, conv.ID, store.SenderAI, reply); err != nil {
		return nil, fmt.Errorf("saving reply: %w", err)
	}

	s.logger.Debug("message handled",
		"conversation_id", conv.ID,
		"history_len", len(history),
		"truncated", wasTruncated)

	return &Reply{
		Text:      reply,
		SessionID: conv.ID,
		Truncated: wasTruncated,
	}, nil
}

// History returns the full ordered message sequence for a session.
func (s *Service) History(ctx context.Context, sessionID string) ([]*store.Message, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}

	if _, err := s.store.GetConversation(ctx, sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("fetching conversation: %w", err)
	}

	messages, err := s.store.GetMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}

	return messages, nil
}
