// Package store provides persistent storage for support-gateway using SQLite.
//
// # Data Models
//
//   - Conversation: one support session; its ID is the session token
//   - Message: an immutable turn (sender "user" or "ai") within a conversation
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// Timestamps are stored as fixed-width UTC text so the created_at column
// sorts lexicographically in chronological order; message retrieval adds a
// rowid tiebreak to preserve insertion order for identical stamps.
//
// # Semantics
//
//   - GetConversation returns ErrNotFound for unknown IDs; other failures are
//     wrapped storage errors.
//   - AddMessage inserts the message, then best-effort bumps the parent
//     conversation's updated_at (failure logged, never rolled back).
//   - GetMessages returns an empty slice for unknown conversations.
//   - GetOrCreateConversation is the single session-resolution entry point:
//     a known session ID returns its conversation, anything else creates one.
package store
