// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides conversation/message persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeFormat is a fixed-width UTC timestamp layout. Unlike RFC3339Nano it
// never trims trailing zeros, so the stored TEXT column sorts
// lexicographically in chronological order.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS conversations (
			id            TEXT PRIMARY KEY,
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL,
			metadata_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_conversations_updated
			ON conversations(updated_at DESC);

		CREATE TABLE IF NOT EXISTS messages (
			id              TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			sender          TEXT NOT NULL,
			text            TEXT NOT NULL,
			created_at      TEXT NOT NULL,
			FOREIGN KEY (conversation_id) REFERENCES conversations(id),

			CHECK (sender IN ('user', 'ai')),
			CHECK (text <> '')
		);

		CREATE INDEX IF NOT EXISTS idx_messages_conversation_created
			ON messages(conversation_id, created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// CreateConversation creates a new conversation with a freshly generated ID
// and equal created/updated timestamps.
func (s *SQLiteStore) CreateConversation(ctx context.Context) (*Conversation, error) {
	now := time.Now().UTC()
	conv := &Conversation{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO conversations (id, created_at, updated_at, metadata_json)
		VALUES (?, ?, ?, NULL)
	`

	_, err := s.db.ExecContext(ctx, query,
		conv.ID,
		conv.CreatedAt.Format(timeFormat),
		conv.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting conversation: %w", err)
	}

	s.logger.Debug("created conversation", "id", conv.ID)
	return conv, nil
}

// GetConversation retrieves a conversation by ID.
// Returns ErrNotFound if the conversation doesn't exist.
func (s *SQLiteStore) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	query := `
		SELECT id, created_at, updated_at, metadata_json
		FROM conversations
		WHERE id = ?
	`

	var conv Conversation
	var createdAtStr, updatedAtStr string
	var metadataJSON sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&conv.ID,
		&createdAtStr,
		&updatedAtStr,
		&metadataJSON,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying conversation: %w", err)
	}

	conv.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	conv.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &conv.Metadata); err != nil {
			return nil, fmt.Errorf("parsing metadata: %w", err)
		}
	}

	return &conv, nil
}

// TouchConversation updates a conversation's updated_at to the current time.
// Callers treat failure as best-effort; the method itself just reports it.
func (s *SQLiteStore) TouchConversation(ctx context.Context, id string) error {
	query := `UPDATE conversations SET updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC().Format(timeFormat), id)
	if err != nil {
		return fmt.Errorf("touching conversation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetOrCreateConversation resolves which conversation a request belongs to.
// If sessionID is non-empty and matches an existing conversation, that
// conversation is returned; otherwise a new one is created.
func (s *SQLiteStore) GetOrCreateConversation(ctx context.Context, sessionID string) (*Conversation, error) {
	if sessionID != "" {
		conv, err := s.GetConversation(ctx, sessionID)
		if err == nil {
			return conv, nil
		}
		if err != ErrNotFound {
			return nil, err
		}
	}

	return s.CreateConversation(ctx)
}

// ListConversations retrieves conversations ordered by most recent activity.
// If limit is 0 or negative, a default limit of 100 is used.
func (s *SQLiteStore) ListConversations(ctx context.Context, limit int) ([]*Conversation, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	query := `
		SELECT id, created_at, updated_at, metadata_json
		FROM conversations
		ORDER BY updated_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*Conversation
	for rows.Next() {
		var conv Conversation
		var createdAtStr, updatedAtStr string
		var metadataJSON sql.NullString

		if err := rows.Scan(&conv.ID, &createdAtStr, &updatedAtStr, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning conversation row: %w", err)
		}

		conv.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		conv.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}

		if metadataJSON.Valid && metadataJSON.String != "" {
			if err := json.Unmarshal([]byte(metadataJSON.String), &conv.Metadata); err != nil {
				return nil, fmt.Errorf("parsing metadata: %w", err)
			}
		}

		conversations = append(conversations, &conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversation rows: %w", err)
	}

	return conversations, nil
}

// AddMessage creates and persists a message with a fresh ID and current
// timestamp, then bumps the parent conversation's updated_at. The touch is
// best-effort: its failure is logged and does not roll back the insert.
func (s *SQLiteStore) AddMessage(ctx context.Context, conversationID string, sender Sender, text string) (*Message, error) {
	if !sender.Valid() {
		return nil, fmt.Errorf("invalid sender %q", sender)
	}

	msg := &Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}

	query := `
		INSERT INTO messages (id, conversation_id, sender, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		msg.ID,
		msg.ConversationID,
		string(msg.Sender),
		msg.Text,
		msg.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	if err := s.TouchConversation(ctx, conversationID); err != nil {
		s.logger.Error("failed to touch conversation",
			"error", err,
			"conversation_id", conversationID)
	}

	s.logger.Debug("saved message", "id", msg.ID, "conversation_id", conversationID, "sender", sender)
	return msg, nil
}

// GetMessages retrieves all messages for a conversation in chronological
// order (oldest first). Returns an empty slice, not an error, when the
// conversation has no messages or does not exist.
func (s *SQLiteStore) GetMessages(ctx context.Context, conversationID string) ([]*Message, error) {
	query := `
		SELECT id, conversation_id, sender, text, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := s.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	messages := []*Message{}
	for rows.Next() {
		var msg Message
		var sender string
		var createdAtStr string

		if err := rows.Scan(&msg.ID, &msg.ConversationID, &sender, &msg.Text, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}

		msg.Sender = Sender(sender)
		msg.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing message created_at: %w", err)
		}

		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}

	return messages, nil
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)
