// ABOUTME: HTTP-level tests for the gateway exercising the full request path
// ABOUTME: Real SQLite store plus a stubbed completion layer behind httptest

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopease/support-gateway/internal/chat"
	"github.com/shopease/support-gateway/internal/config"
	"github.com/shopease/support-gateway/internal/store"
)

type stubReplier struct {
	reply string
	err   error
}

func (r *stubReplier) GenerateReply(_ context.Context, _ []*store.Message, _ string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.reply, nil
}

func newTestGateway(t *testing.T, replier chat.Replier) (*Gateway, *store.SQLiteStore) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.NewSQLiteStore(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	svc := chat.New(st, replier, cfg.Chat.MaxMessageLength, nil)
	return New(cfg, svc, st, nil), st
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSendMessage_RoundTrip(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "Hi there! How can I help?"})
	h := g.Handler()

	rec := postJSON(t, h, "/chat/message", `{"message": "Hello"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp SendMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hi there! How can I help?", resp.Reply)
	require.NotEmpty(t, resp.SessionID)

	histRec := get(t, h, "/chat/history/"+resp.SessionID)
	require.Equal(t, http.StatusOK, histRec.Code, histRec.Body.String())

	var hist HistoryResponse
	require.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &hist))
	assert.Equal(t, resp.SessionID, hist.SessionID)
	require.Len(t, hist.Messages, 2)
	assert.Equal(t, "user", hist.Messages[0].Sender)
	assert.Equal(t, "Hello", hist.Messages[0].Text)
	assert.Equal(t, "ai", hist.Messages[1].Sender)
	assert.Equal(t, "Hi there! How can I help?", hist.Messages[1].Text)
}

func TestSendMessage_SessionContinuity(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "ok"})
	h := g.Handler()

	rec := postJSON(t, h, "/chat/message", `{"message": "first"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var first SendMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = postJSON(t, h, "/chat/message",
		`{"message": "second", "sessionId": "`+first.SessionID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var second SendMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.SessionID, second.SessionID)
}

func TestSendMessage_InvalidBodies(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "ok"})
	h := g.Handler()

	cases := []struct {
		name string
		body string
		code string
	}{
		{"malformed JSON", `{not json`, "INVALID_MESSAGE"},
		{"missing message field", `{"sessionId": "abc"}`, "INVALID_MESSAGE"},
		{"non-string message", `{"message": 42}`, "INVALID_MESSAGE"},
		{"empty message", `{"message": ""}`, "EMPTY_MESSAGE"},
		{"whitespace message", `{"message": "   "}`, "EMPTY_MESSAGE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h, "/chat/message", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tc.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestSendMessage_TruncationFlag(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "ok"})
	h := g.Handler()

	long := strings.Repeat("a", 2500)
	rec := postJSON(t, h, "/chat/message", `{"message": "`+long+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["wasTruncated"])

	// At exactly the limit the key is omitted entirely
	exact := strings.Repeat("b", 2000)
	rec = postJSON(t, h, "/chat/message", `{"message": "`+exact+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	raw = map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	_, present := raw["wasTruncated"]
	assert.False(t, present)
}

func TestSendMessage_FailSoftIsStill200(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{
		err: errors.New("I'm experiencing high demand right now. Please wait a moment and try again."),
	})
	h := g.Handler()

	rec := postJSON(t, h, "/chat/message", `{"message": "Hello"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SendMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "high demand")
}

func TestHistory_MissingSessionID(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "ok"})

	rec := get(t, g.Handler(), "/chat/history/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_SESSION_ID", decodeError(t, rec).Code)
}

func TestHistory_UnknownSession(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "ok"})

	rec := get(t, g.Handler(), "/chat/history/no-such-session")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CONVERSATION_NOT_FOUND", decodeError(t, rec).Code)
}

func TestListSessions(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "ok"})
	h := g.Handler()

	rec := postJSON(t, h, "/chat/message", `{"message": "first conversation"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = postJSON(t, h, "/chat/message", `{"message": "second conversation"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var latest SendMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))

	listRec := get(t, h, "/chat/sessions")
	require.Equal(t, http.StatusOK, listRec.Code)

	var resp SessionsResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &resp))
	require.Len(t, resp.Sessions, 2)
	assert.Equal(t, latest.SessionID, resp.Sessions[0].SessionID)
}

func TestListSessions_InvalidLimit(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "ok"})

	for _, limit := range []string{"abc", "0", "-5"} {
		rec := get(t, g.Handler(), "/chat/sessions?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit %q", limit)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, rec).Code)
	}
}

func TestHealth(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "ok"})

	rec := get(t, g.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestMethodNotAllowed(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "ok"})
	h := g.Handler()

	rec := get(t, h, "/chat/message")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = postJSON(t, h, "/health", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = postJSON(t, h, "/chat/history/some-session", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	g, _ := newTestGateway(t, &stubReplier{reply: "ok"})

	req := httptest.NewRequest(http.MethodOptions, "/chat/message", nil)
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorDetail_OnlyInDevelopment(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.NewSQLiteStore(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	cfg.Server.Environment = "development"
	svc := chat.New(st, &stubReplier{reply: "ok"}, cfg.Chat.MaxMessageLength, nil)
	g := New(cfg, svc, failingLister{}, nil)

	rec := get(t, g.Handler(), "/chat/sessions")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
	assert.Contains(t, resp.Detail, "disk exploded")

	cfg2 := config.Default()
	g2 := New(cfg2, svc, failingLister{}, nil)
	rec = get(t, g2.Handler(), "/chat/sessions")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, decodeError(t, rec).Detail)
}

type failingLister struct{}

func (failingLister) ListConversations(context.Context, int) ([]*store.Conversation, error) {
	return nil, errors.New("disk exploded")
}
