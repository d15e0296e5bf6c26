// Package server is the demo backend for nftdesk. It serves the collection,
// chat, clear and transfer endpoints the client consumes.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhubert/nftdesk/internal/api"
	"github.com/zhubert/nftdesk/internal/config"
	"github.com/zhubert/nftdesk/internal/logger"
)

// Server is the demo backend. It implements http.Handler.
type Server struct {
	catalog   Catalog
	responder Responder
	store     *ConversationStore
	version   string
	now       func() time.Time
	log       *slog.Logger
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithResponder replaces the CatalogResponder.
func WithResponder(r Responder) Option {
	return func(s *Server) { s.responder = r }
}

// WithMaxTurns caps each session's conversation.
func WithMaxTurns(n int) Option {
	return func(s *Server) { s.store = NewConversationStore(n) }
}

// WithVersion sets the version reported by /api/status.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates a server over catalog.
func New(catalog Catalog, opts ...Option) *Server {
	s := &Server{
		catalog: catalog,
		store:   NewConversationStore(50),
		version: "dev",
		now:     time.Now,
		log:     logger.WithComponent("server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.responder == nil {
		s.responder = NewCatalogResponder(catalog)
	}
	s.router = s.routes()
	return s
}

// NewFromConfig loads the catalog and picks the responder from cfg. A Gemini
// responder is used when an API key is configured.
func NewFromConfig(ctx context.Context, cfg *config.ServerConfig, version string) (*Server, error) {
	catalog := DefaultCatalog()
	if cfg.CatalogPath != "" {
		c, err := LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	opts := []Option{WithVersion(version), WithMaxTurns(cfg.MaxTurns)}
	if cfg.GeminiAPIKey != "" {
		r, err := NewGeminiResponder(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithResponder(r))
	}
	return New(catalog, opts...), nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(withSession)
		r.Get(stripAPI(api.PathCollections), s.handleCollections)
		r.Post(stripAPI(api.PathChat), s.handleChat)
		r.Post(stripAPI(api.PathClear), s.handleClear)
		r.Post(stripAPI(api.PathSimulateTransfer), s.handleSimulateTransfer)
		r.Get(stripAPI(api.PathStatus), s.handleStatus)
	})
	return r
}

// stripAPI turns "/api/chat" into "/chat" for mounting under /api
func stripAPI(path string) string {
	return path[len("/api"):]
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Responder returns the responder in use.
func (s *Server) Responder() Responder {
	return s.responder
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "responder", s.responder.Name(), "collections", len(s.catalog))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
