package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReconcileStockQueryHandler compares stock counters with ledger sums in a
// single aggregate query.
type ReconcileStockQueryHandler struct {
	db *gorm.DB
}

// NewReconcileStockQueryHandler creates a handler for stock reconciliation.
// Requires a GORM database connection for query execution.
func NewReconcileStockQueryHandler(db *gorm.DB) ReconcileStockQueryHandler {
	return ReconcileStockQueryHandler{db: db}
}

// Handle returns one row per product whose counter diverged from its ledger.
func (h ReconcileStockQueryHandler) Handle(
	ctx context.Context,
	query ReconcileStockQuery,
) ([]ReconcileStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	divergences := make([]ReconcileStockQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.current_stock,
			COALESCE(SUM(m.delta), 0) AS ledger_total
		FROM products p
		LEFT JOIN inventory_movements m ON m.product_id = p.id
		GROUP BY p.id, p.current_stock
		HAVING p.current_stock <> COALESCE(SUM(m.delta), 0)
		ORDER BY p.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ReconcileStockQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.CurrentStock,
			&resp.LedgerTotal,
		)
		if err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ProductID = productID

		divergences = append(divergences, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return divergences, nil
}
