// Package ports defines repository interfaces for the fulfillment domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
// Provides methods for storing, retrieving, and locking product entities
// together with their current stock counter.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	// The product must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate, including
	// its current stock counter.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate retrieves a product aggregate and takes an exclusive row
	// lock on it for the duration of the surrounding transaction. Every
	// stock mutation loads the product through this method so the counter
	// and its ledger entry are written under the same lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetByIDs retrieves the product aggregates for the given identifiers.
	// Fails if any of them is missing.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)
}
