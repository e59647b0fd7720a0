package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// LedgerRepository defines the persistence contract for the append-only
// inventory ledger. Movements are immutable once written; corrections are
// expressed as new compensating movements, never as updates.
type LedgerRepository interface {
	// Append persists a new movement. The caller holds the product row lock
	// taken by ProductRepository.GetForUpdate, so the movement and the
	// counter update it mirrors are written atomically.
	Append(ctx context.Context, movement *product.Movement) error

	// GetByProduct retrieves every movement for a product, oldest first.
	GetByProduct(ctx context.Context, productID kernel.UUID) ([]*product.Movement, error)

	// SumDeltas returns the sum of all movement deltas for a product. Used
	// by reconciliation to cross-check the denormalized stock counter.
	SumDeltas(ctx context.Context, productID kernel.UUID) (int, error)
}
