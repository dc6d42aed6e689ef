// ABOUTME: Store interface and data types for support-gateway persistence
// ABOUTME: Defines Conversation, Message structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// Sender identifies which side of the conversation produced a message.
// It is a closed enumeration: only SenderUser and SenderAI are valid,
// and the schema enforces the same constraint.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Valid reports whether s is one of the two known sender values.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAI
}

// Conversation represents one support session. Its ID doubles as the
// session token clients echo back on subsequent requests.
type Conversation struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]any
}

// Message represents a single turn within a conversation.
// Messages are immutable once created.
type Message struct {
	ID             string
	ConversationID string
	Sender         Sender
	Text           string
	CreatedAt      time.Time
}

// Store defines the interface for conversation and message persistence
type Store interface {
	// Conversations
	CreateConversation(ctx context.Context) (*Conversation, error)
	GetConversation(ctx context.Context, id string) (*Conversation, error)
	TouchConversation(ctx context.Context, id string) error
	GetOrCreateConversation(ctx context.Context, sessionID string) (*Conversation, error)
	ListConversations(ctx context.Context, limit int) ([]*Conversation, error)

	// Messages
	AddMessage(ctx context.Context, conversationID string, sender Sender, text string) (*Message, error)
	GetMessages(ctx context.Context, conversationID string) ([]*Message, error)

	// Close releases any resources held by the store
	Close() error
}
