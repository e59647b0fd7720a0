// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping required by the warehouse service.
//
// # Available Jobs
//
// 1. LedgerReconciliationJob - Runs every minute to cross-check stock counters against the inventory ledger
// 2. StaleSessionJob - Runs every minute to cancel picking sessions abandoned past the configured window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, staleSessionsHandler, maxIdle, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs use the cron expression "0 * * * * *" which means they run at the
// start of every minute. Reconciliation is a read-only audit; the watchdog
// only writes when it finds sessions past the abandonment window.
//
// # Error Handling
//
// - Reconciliation divergences are logged per product; they never abort the job
// - Watchdog failures on one session do not stop the sweep over the rest
// - Failed job starts will stop any already running jobs
package jobs
