package interactions

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jonny/dispatchbot/internal/adapter/inbound/interactions/middleware"
)

// DefaultPath is where the platform posts interactions.
const DefaultPath = "/interactions"

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int
	Path            string
	PublicKey       ed25519.PublicKey
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server wraps an HTTP server with graceful shutdown support.
type Server struct {
	cfg     ServerConfig
	handler *Handler
	logger  *slog.Logger
	srv     *http.Server
}

// NewServer creates a new Server with the given config and interaction handler.
func NewServer(cfg ServerConfig, handler *Handler, logger *slog.Logger) *Server {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
	}
}

// SetupRoutes builds and returns an http.Handler with all middleware applied.
// Route layout:
//
//	GET  /health        - Health check
//	POST /interactions  - Signed interaction callbacks
func (s *Server) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Outermost first: RequestID -> Recoverer -> BodyReader -> Logging -> SecurityHeaders
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.BodyReader)
	r.Use(middleware.NewLoggingMiddleware(s.logger))
	r.Use(middleware.SecurityHeaders)

	r.Get("/health", HealthHandler())
	r.With(middleware.SignatureAuth(s.cfg.PublicKey, s.logger)).
		Post(s.cfg.Path, s.handler.ServeHTTP)

	return r
}

// Start starts the HTTP server and blocks until ctx is cancelled, then performs
// a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.SetupRoutes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("interactions server listening", "port", s.cfg.Port, "path", s.cfg.Path)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("interactions server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
