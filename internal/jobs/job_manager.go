package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reconciliationJob *LedgerReconciliationJob
	staleSessionJob   *StaleSessionJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the handlers as dependencies to wire up the job execution.
func NewJobManager(
	reconcileHandler queries.ReconcileStockQueryHandler,
	staleSessionsHandler commands.CancelStaleSessionsCommandHandler,
	sessionMaxIdle time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reconciliationJob: NewLedgerReconciliationJob(reconcileHandler, logger),
		staleSessionJob:   NewStaleSessionJob(staleSessionsHandler, sessionMaxIdle, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start ledger reconciliation job: %w", err)
	}

	if err := jm.staleSessionJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconciliationJob.Stop()
		return fmt.Errorf("failed to start stale session job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleSessionJob.Stop()
	jm.reconciliationJob.Stop()
}
