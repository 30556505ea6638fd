// Package api implements the HTTP layer for the mailer. Handlers are methods
// on *Server and only import the dependencies they actually use.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/nyashahama/mandrill-mailer/internal/mailer"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// Env is "production", "staging", or "development".
	Env string

	// CORSAllowedOrigin pins Access-Control-Allow-Origin. Empty echoes the
	// request Origin outside production and falls back to "*" in production.
	CORSAllowedOrigin string

	// RateLimitPerMin caps guest send requests per client IP.
	RateLimitPerMin int
}

// Server holds all shared dependencies.
type Server struct {
	// mailer validates and dispatches templated sends.
	mailer mailer.Sender

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to an http.Server.
func NewServer(sender mailer.Sender, cfg Config, logger *slog.Logger) http.Handler {
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 60
	}
	s := &Server{
		mailer: sender,
		cfg:    cfg,
		logger: logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// ── Whitelisted methods ───────────────────────────────────────────────────
	r.Route("/api/method", func(r chi.Router) {
		// Guest accessible; throttled per client IP instead.
		r.With(httprate.LimitByIP(s.cfg.RateLimitPerMin, time.Minute)).
			Post("/send_email_with_template", s.handleSendEmailWithTemplate)
	})

	return r
}
