package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// LedgerReconciliationJob audits the denormalized stock counters against the
// inventory ledger. Runs every minute and logs every product whose counter
// disagrees with the sum of its movements.
type LedgerReconciliationJob struct {
	handler queries.ReconcileStockQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewLedgerReconciliationJob creates a new job for ledger reconciliation.
// Uses ReconcileStockQueryHandler to detect counter divergences every minute.
func NewLedgerReconciliationJob(handler queries.ReconcileStockQueryHandler, logger *slog.Logger) *LedgerReconciliationJob {
	return &LedgerReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "ledger_reconciliation_job"),
	}
}

// Start begins the reconciliation job to run every minute.
func (j *LedgerReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		query := queries.NewReconcileStockQuery()

		divergences, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Ledger reconciliation job failed", "error", err)
			return
		}

		for _, divergence := range divergences {
			j.logger.ErrorContext(ctx, "Stock counter diverged from ledger",
				"product_id", divergence.ProductID.String(),
				"current_stock", divergence.CurrentStock,
				"ledger_total", divergence.LedgerTotal,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *LedgerReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Ledger reconciliation job stopped")
}
