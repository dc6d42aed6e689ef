// ABOUTME: Gateway wires the HTTP surface to the chat service and manages server lifecycle
// ABOUTME: Plain TCP listener, permissive CORS, graceful shutdown on context cancellation

package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/shopease/support-gateway/internal/chat"
	"github.com/shopease/support-gateway/internal/config"
	"github.com/shopease/support-gateway/internal/store"
)

// ConversationLister is the slice of the store the gateway itself needs
// (the chat service owns everything else).
type ConversationLister interface {
	ListConversations(ctx context.Context, limit int) ([]*store.Conversation, error)
}

// Gateway exposes the chat service over HTTP.
type Gateway struct {
	config        *config.Config
	chat          *chat.Service
	conversations ConversationLister
	logger        *slog.Logger
	httpServer    *http.Server
}

// New creates a Gateway. Dependencies are constructed by the caller and
// injected here so tests can substitute them.
func New(cfg *config.Config, chatService *chat.Service, conversations ConversationLister, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gateway{
		config:        cfg,
		chat:          chatService,
		conversations: conversations,
		logger:        logger.With("component", "gateway"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat/message", g.handleSendMessage)
	mux.HandleFunc("/chat/history/", g.handleHistory)
	mux.HandleFunc("/chat/sessions", g.handleListSessions)
	mux.HandleFunc("/health", g.handleHealth)

	g.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           corsMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return g
}

// Handler returns the root HTTP handler (CORS included), for tests.
func (g *Gateway) Handler() http.Handler {
	return g.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown, or an error if the server fails.
func (g *Gateway) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", g.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := g.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		g.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		g.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := g.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is
// already canceled.
func (g *Gateway) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return g.httpServer.Shutdown(ctx)
}

// corsMiddleware allows any origin. The frontend is served from a different
// host and the API carries no credentials.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
