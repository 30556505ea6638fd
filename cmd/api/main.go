package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/soheilhy/cmux"
	"google.golang.org/grpc"

	"github.com/nyashahama/mandrill-mailer/internal/api"
	"github.com/nyashahama/mandrill-mailer/internal/config"
	"github.com/nyashahama/mandrill-mailer/internal/db"
	"github.com/nyashahama/mandrill-mailer/internal/errlog"
	"github.com/nyashahama/mandrill-mailer/internal/mailer"
	"github.com/nyashahama/mandrill-mailer/internal/mandrill"
	"github.com/nyashahama/mandrill-mailer/internal/rpc"
	"github.com/nyashahama/mandrill-mailer/internal/settings"
)

func main() {
	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	var logger *slog.Logger
	if os.Getenv("ENV") == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded", "env", cfg.Env, "port", cfg.Port)

	// ── Database (optional) ───────────────────────────────────────────────────
	// Without DATABASE_URL the key comes from MANDRILL_API_KEY and swallowed
	// errors are only logged.
	var (
		sources  []settings.Source
		recorder = errlog.LogOnly(logger)
	)
	if cfg.DatabaseURL != "" {
		pool, queries, err := openDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		defer queries.Close()
		logger.Info("database connected")

		sources = append(sources, settings.NewDBSource(queries, cfg.SettingsDoctype, cfg.SettingsAPIKeyField))
		recorder = errlog.New(queries, logger)
	}
	if cfg.MandrillAPIKey != "" {
		sources = append(sources, settings.Static(cfg.MandrillAPIKey))
	}

	// ── Mandrill ──────────────────────────────────────────────────────────────
	client := mandrill.New(
		mandrill.WithBaseURL(cfg.MandrillBaseURL),
		mandrill.WithTimeout(cfg.MandrillTimeout),
	)

	dispatcher := mailer.New(client, settings.Chain(sources...), recorder, logger)

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv := &http.Server{
		Handler: api.NewServer(dispatcher, api.Config{
			Env:               cfg.Env,
			CORSAllowedOrigin: cfg.CORSAllowedOrigin,
			RateLimitPerMin:   cfg.RateLimitPerMin,
		}, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generous, the provider call is synchronous
		IdleTimeout:  120 * time.Second,
	}

	// ── gRPC server ───────────────────────────────────────────────────────────
	grpcSrv := grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingInterceptor(logger)))
	rpc.Register(grpcSrv, rpc.NewService(dispatcher, logger))

	// ── Listener ──────────────────────────────────────────────────────────────
	// One port for both protocols. gRPC clients are matched on the HTTP/2
	// content-type header; everything else falls through to HTTP.
	lis, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	mux := cmux.New(lis)
	grpcL := mux.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	httpL := mux.Match(cmux.Any())

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 3)
	go func() {
		if err := grpcSrv.Serve(grpcL); err != nil && !isClosed(err) {
			serverErr <- fmt.Errorf("grpc: %w", err)
		}
	}()
	go func() {
		if err := srv.Serve(httpL); err != nil && !isClosed(err) {
			serverErr <- fmt.Errorf("http: %w", err)
		}
	}()
	go func() {
		logger.Info("server listening", "addr", lis.Addr().String())
		if err := mux.Serve(); err != nil && !isClosed(err) {
			serverErr <- fmt.Errorf("cmux: %w", err)
		}
	}()

	// Block until either a signal arrives or a server dies unexpectedly.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// Give in-flight requests up to 20 seconds to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	grpcStopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(grpcStopped)
	}()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	select {
	case <-grpcStopped:
	case <-shutdownCtx.Done():
		grpcSrv.Stop()
	}
	mux.Close()

	logger.Info("shutdown complete")
	return nil
}

// isClosed reports errors that only mean a listener was shut down.
func isClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed) ||
		errors.Is(err, grpc.ErrServerStopped) ||
		errors.Is(err, cmux.ErrListenerClosed) ||
		errors.Is(err, cmux.ErrServerClosed) ||
		errors.Is(err, net.ErrClosed)
}

// openDB opens the connection pool and prepares all sqlc statements.
// Using db.Prepare (rather than db.New) means every query is validated against
// the database schema at startup, so the server refuses to start if the
// schema is out of sync.
func openDB(dsn string) (*sql.DB, *db.Queries, error) {
	pool, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}

	// One settings read and at most one error-log insert per send.
	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(5 * time.Minute)
	pool.SetConnMaxIdleTime(2 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}

	queries, err := db.Prepare(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("prepare statements: %w", err)
	}

	return pool, queries, nil
}
