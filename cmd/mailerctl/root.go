package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/spf13/cobra"

	"github.com/nyashahama/mandrill-mailer/internal/config"
	"github.com/nyashahama/mandrill-mailer/internal/db"
	"github.com/nyashahama/mandrill-mailer/internal/errlog"
	"github.com/nyashahama/mandrill-mailer/internal/mandrill"
	"github.com/nyashahama/mandrill-mailer/internal/settings"
)

var (
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
	pool   *sql.DB
)

var rootCmd = &cobra.Command{
	Use:           "mailerctl",
	Short:         "mailerctl - Mandrill transactional email tool",
	Long:          "Manage the Mailchimp Settings record and send templated emails through Mandrill.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if pool != nil {
			pool.Close()
		}
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(setKeyCmd)
	rootCmd.AddCommand(checkKeyCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(errorsCmd)
}

// ─── DEPENDENCIES ─────────────────────────────────────────────────────────────

var errNoDatabase = errors.New("DATABASE_URL is not set")

// queries opens the database on first use. Commands that do not touch the
// settings record never connect.
func queries(ctx context.Context) (*db.Queries, error) {
	if cfg.DatabaseURL == "" {
		return nil, errNoDatabase
	}
	if pool == nil {
		p, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("database: open: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := p.PingContext(pingCtx); err != nil {
			p.Close()
			return nil, fmt.Errorf("database: ping: %w", err)
		}
		pool = p
	}
	return db.New(pool), nil
}

// keySource mirrors the server: settings record first, then MANDRILL_API_KEY.
func keySource(ctx context.Context) (settings.Source, error) {
	var sources []settings.Source
	if cfg.DatabaseURL != "" {
		q, err := queries(ctx)
		if err != nil {
			return nil, err
		}
		sources = append(sources, settings.NewDBSource(q, cfg.SettingsDoctype, cfg.SettingsAPIKeyField))
	}
	if cfg.MandrillAPIKey != "" {
		sources = append(sources, settings.Static(cfg.MandrillAPIKey))
	}
	return settings.Chain(sources...), nil
}

func recorder(ctx context.Context) errlog.Recorder {
	if cfg.DatabaseURL == "" {
		return errlog.LogOnly(logger)
	}
	q, err := queries(ctx)
	if err != nil {
		logger.Warn("errlog: falling back to log only", "error", err)
		return errlog.LogOnly(logger)
	}
	return errlog.New(q, logger)
}

func mandrillClient() mandrill.Client {
	return mandrill.New(
		mandrill.WithBaseURL(cfg.MandrillBaseURL),
		mandrill.WithTimeout(cfg.MandrillTimeout),
	)
}
