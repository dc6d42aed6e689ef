// ABOUTME: Request-scoped error taxonomy for the chat orchestrator
// ABOUTME: Each error carries a stable machine code and the HTTP status it maps to

package chat

import "net/http"

// Error is a client-caused failure. The HTTP layer propagates Code and
// Message verbatim; everything that is not an *Error becomes a generic 500.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	// ErrInvalidMessage covers a missing or non-string message field.
	ErrInvalidMessage = &Error{
		Status:  http.StatusBadRequest,
		Code:    "INVALID_MESSAGE",
		Message: "Message is required and must be a string",
	}

	// ErrEmptyMessage covers a message that is empty after trimming.
	ErrEmptyMessage = &Error{
		Status:  http.StatusBadRequest,
		Code:    "EMPTY_MESSAGE",
		Message: "Message cannot be empty",
	}

	// ErrMissingSessionID covers a history request without a session ID.
	ErrMissingSessionID = &Error{
		Status:  http.StatusBadRequest,
		Code:    "MISSING_SESSION_ID",
		Message: "Session ID is required",
	}

	// ErrConversationNotFound covers a history request for an unknown session.
	ErrConversationNotFound = &Error{
		Status:  http.StatusNotFound,
		Code:    "CONVERSATION_NOT_FOUND",
		Message: "Conversation not found",
	}
)
