package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleSessionJob cancels picking sessions abandoned past the configured
// window. Runs every minute so orders stuck in an orphaned session return to
// the pool without operator intervention.
type StaleSessionJob struct {
	handler commands.CancelStaleSessionsCommandHandler
	maxIdle time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleSessionJob creates a new watchdog job for abandoned sessions.
// Uses CancelStaleSessionsCommandHandler to sweep active sessions every minute.
func NewStaleSessionJob(
	handler commands.CancelStaleSessionsCommandHandler,
	maxIdle time.Duration,
	logger *slog.Logger,
) *StaleSessionJob {
	return &StaleSessionJob{
		handler: handler,
		maxIdle: maxIdle,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_session_job"),
	}
}

// Start begins the watchdog job to run every minute.
func (j *StaleSessionJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCancelStaleSessionsCommand(j.maxIdle)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale session job misconfigured", "error", err)
			return
		}

		cancelled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale session job failed", "error", err)
		}
		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Cancelled stale picking sessions", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale session job started (running every minute)")
	return nil
}

// Stop stops the watchdog job.
func (j *StaleSessionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale session job stopped")
}
