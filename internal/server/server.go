// Package server assembles the reference REST server that the rest sync
// backend talks to.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/gophsync/internal/server/handlers"
	"github.com/iudanet/gophsync/internal/server/jwt"
	"github.com/iudanet/gophsync/internal/server/middleware"
	"github.com/iudanet/gophsync/internal/server/storage"
	"github.com/iudanet/gophsync/pkg/api"
)

// ShutdownTimeout ограничивает graceful shutdown
const ShutdownTimeout = 5 * time.Second

// KeysPath выпуск anon keys, только для service_role
const KeysPath = "/auth/v1/keys"

// Config configures the HTTP server.
type Config struct {
	Addr       string
	RateLimit  int
	RateWindow time.Duration
}

// Server serves table rows and key issuing over HTTP.
type Server struct {
	handler http.Handler
	limiter *middleware.RateLimiter
	logger  *slog.Logger
	cfg     Config
}

// New builds the route table and the middleware chain
// recovery → logging → rate limit → auth. /health skips auth and logging.
func New(cfg Config, store storage.RecordStorage, keys *jwt.Service, logger *slog.Logger) *Server {
	records := handlers.NewRecordHandler(logger, store)
	health := handlers.NewHealthHandler(logger, store)
	issuer := handlers.NewKeyHandler(logger, keys)

	tablePattern := api.TablePath("{table}")

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+tablePattern, records.Select)
	mux.HandleFunc("POST "+tablePattern, records.Write)
	mux.HandleFunc("DELETE "+tablePattern, records.Delete)
	mux.HandleFunc("POST "+KeysPath, issuer.Issue)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, logger)
	protected := middleware.AuthMiddleware(logger, keys)(mux)

	root := http.NewServeMux()
	root.HandleFunc("GET "+api.HealthPath, health.Health)
	root.Handle("/", limiter.Middleware(protected))

	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingMiddleware(logger, api.HealthPath)(root),
	)

	return &Server{handler: handler, limiter: limiter, logger: logger, cfg: cfg}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}
