package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jroosing/gordap/internal/api"
	"github.com/jroosing/gordap/internal/config"
	"github.com/jroosing/gordap/internal/database"
)

// Runner orchestrates daemon startup, the API server, and shutdown.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run starts the daemon and blocks until SIGINT/SIGTERM.
func (r *Runner) Run(loader *config.Loader, opts StackOptions) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, loader, opts)
}

// RunWithContext starts the daemon and blocks until ctx is canceled or
// the API server fails.
//
// Lifecycle:
//  1. Assemble the lookup stack (config, caches, resolver, client)
//  2. Open the history store when one is configured
//  3. Serve the REST API
//  4. Gracefully stop on signal with a shutdown timeout
func (r *Runner) RunWithContext(ctx context.Context, loader *config.Loader, opts StackOptions) error {
	stack, err := BuildStack(loader, r.logger, opts)
	if err != nil {
		return err
	}
	cfg := stack.Config

	var db *database.DB
	if cfg.API.HistoryPath != "" {
		db, err = database.Open(cfg.API.HistoryPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.API.HistoryRetentionDays > 0 {
			retention := time.Duration(cfg.API.HistoryRetentionDays) * 24 * time.Hour
			go r.pruneHistory(ctx, db, retention)
		}
	}

	srv := api.New(cfg, stack.Client, db, r.logger)
	r.logger.Info("rdapd starting",
		"addr", srv.Addr(),
		"history", cfg.API.HistoryPath != "",
		"auth", cfg.API.APIKey != "",
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		// shutdown requested via signal
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("shutdown incomplete", "error", err)
	}
	r.logger.Info("rdapd stopped")
	return nil
}

// pruneInterval spaces out history retention sweeps.
const pruneInterval = time.Hour

// pruneHistory trims expired history rows once at startup and then on
// every interval tick until ctx is canceled.
func (r *Runner) pruneHistory(ctx context.Context, db *database.DB, retention time.Duration) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		if n, err := db.PruneHistory(ctx, retention); err != nil {
			r.logger.Warn("history prune failed", "error", err)
		} else if n > 0 {
			r.logger.Info("history pruned", "rows", n, "retention", retention)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
