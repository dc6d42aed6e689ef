// ABOUTME: HTTP handlers and wire types for the chat API
// ABOUTME: JSON in/out, stable error codes, detail field only in development

package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopease/support-gateway/internal/chat"
	"github.com/shopease/support-gateway/internal/store"
)

// maxRequestBody bounds inbound JSON bodies (1 MB).
const maxRequestBody = 1 << 20

// SendMessageRequest is the POST /chat/message body. Message is a pointer so
// a missing field is distinguishable from an empty string.
type SendMessageRequest struct {
	Message   *string `json:"message"`
	SessionID string  `json:"sessionId"`
}

// SendMessageResponse is the POST /chat/message reply.
type SendMessageResponse struct {
	Reply        string `json:"reply"`
	SessionID    string `json:"sessionId"`
	WasTruncated bool   `json:"wasTruncated,omitempty"`
}

// MessageResponse is one message in a history listing.
type MessageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	Sender         string `json:"sender"`
	Text           string `json:"text"`
	CreatedAt      string `json:"created_at"`
}

// HistoryResponse is the GET /chat/history/:sessionId reply.
type HistoryResponse struct {
	SessionID string            `json:"sessionId"`
	Messages  []MessageResponse `json:"messages"`
}

// SessionResponse is one conversation in a sessions listing.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SessionsResponse is the GET /chat/sessions reply.
type SessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

func toMessageResponse(m *store.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         string(m.Sender),
		Text:           m.Text,
		CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (g *Gateway) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.sendError(w, r, &chat.Error{
			Status:  http.StatusMethodNotAllowed,
			Code:    "METHOD_NOT_ALLOWED",
			Message: "Method not allowed",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.sendError(w, r, chat.ErrInvalidMessage)
		return
	}
	if req.Message == nil {
		g.sendError(w, r, chat.ErrInvalidMessage)
		return
	}

	reply, err := g.chat.HandleIncomingMessage(r.Context(), *req.Message, req.SessionID)
	if err != nil {
		g.sendError(w, r, err)
		return
	}

	g.sendJSON(w, http.StatusOK, SendMessageResponse{
		Reply:        reply.Text,
		SessionID:    reply.SessionID,
		WasTruncated: reply.Truncated,
	})
}

func (g *Gateway) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.sendError(w, r, &chat.Error{
			Status:  http.StatusMethodNotAllowed,
			Code:    "METHOD_NOT_ALLOWED",
			Message: "Method not allowed",
		})
		return
	}

	sessionID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/chat/history/"), "/")

	messages, err := g.chat.History(r.Context(), sessionID)
	if err != nil {
		g.sendError(w, r, err)
		return
	}

	resp := HistoryResponse{
		SessionID: sessionID,
		Messages:  make([]MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, toMessageResponse(m))
	}

	g.sendJSON(w, http.StatusOK, resp)
}

func (g *Gateway) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.sendError(w, r, &chat.Error{
			Status:  http.StatusMethodNotAllowed,
			Code:    "METHOD_NOT_ALLOWED",
			Message: "Method not allowed",
		})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			g.sendError(w, r, &chat.Error{
				Status:  http.StatusBadRequest,
				Code:    "INVALID_LIMIT",
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	convs, err := g.conversations.ListConversations(r.Context(), limit)
	if err != nil {
		g.sendError(w, r, fmt.Errorf("listing conversations: %w", err))
		return
	}

	resp := SessionsResponse{Sessions: make([]SessionResponse, 0, len(convs))}
	for _, c := range convs {
		resp.Sessions = append(resp.Sessions, SessionResponse{
			SessionID: c.ID,
			CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
			UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	g.sendJSON(w, http.StatusOK, resp)
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.sendError(w, r, &chat.Error{
			Status:  http.StatusMethodNotAllowed,
			Code:    "METHOD_NOT_ALLOWED",
			Message: "Method not allowed",
		})
		return
	}

	g.sendJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (g *Gateway) sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		g.logger.Error("failed to encode response", "error", err)
	}
}

// sendError maps a failure to the wire. Client-caused errors (*chat.Error)
// keep their status, code, and message; everything else becomes a 500 with a
// fixed message, and the underlying detail is exposed only in development.
func (g *Gateway) sendError(w http.ResponseWriter, r *http.Request, err error) {
	var chatErr *chat.Error
	if errors.As(err, &chatErr) {
		g.sendJSON(w, chatErr.Status, ErrorResponse{
			Error: chatErr.Message,
			Code:  chatErr.Code,
		})
		return
	}

	g.logger.Error("request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path)

	resp := ErrorResponse{
		Error: "An unexpected error occurred. Please try again later.",
		Code:  "INTERNAL_ERROR",
	}
	if g.config.Development() {
		resp.Detail = err.Error()
	}
	g.sendJSON(w, http.StatusInternalServerError, resp)
}
