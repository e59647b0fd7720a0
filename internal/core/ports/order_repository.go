package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and deleting order entities
// together with their line items.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its line items and current status.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIDs retrieves the order aggregates for the given identifiers.
	// Fails if any of them is missing.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// Delete removes an order aggregate and its line items from storage.
	// Callers enforce the lifecycle rules that decide whether deletion is
	// permitted; the repository only performs the removal.
	Delete(ctx context.Context, id kernel.UUID) error
}
