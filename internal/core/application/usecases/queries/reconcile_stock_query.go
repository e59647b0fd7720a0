package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReconcileStockQueryIsNotConstructed = errors.New(
	"ReconcileStockQuery must be created via NewReconcileStockQuery constructor",
)

// ReconcileStockQuery cross-checks every product's denormalized stock counter
// against the sum of its ledger deltas. The two are written in the same
// transaction, so any difference means corruption and needs investigation.
type ReconcileStockQuery struct {
	guard guard.ConstructorGuard
}

// NewReconcileStockQuery creates a reconciliation query over all products.
func NewReconcileStockQuery() ReconcileStockQuery {
	return ReconcileStockQuery{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q ReconcileStockQuery) Validate() error {
	return q.guard.Validate(ErrReconcileStockQueryIsNotConstructed)
}

// ReconcileStockQueryResponse is one product whose counter disagrees with its
// ledger. An empty result set means the store is consistent.
type ReconcileStockQueryResponse struct {
	ProductID    kernel.UUID
	CurrentStock int
	LedgerTotal  int
}
