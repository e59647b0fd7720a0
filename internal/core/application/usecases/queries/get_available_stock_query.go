// Package queries contains read-only operations over the fulfillment store.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return plain response structs, bypassing the
// aggregates and their invariants.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAvailableStockQueryIsNotConstructed = errors.New(
	"GetAvailableStockQuery must be created via NewGetAvailableStockQuery constructor",
)

// GetAvailableStockQuery retrieves the current stock counters for a tenant.
//
// The returned numbers are advisory: they are read without locks and may be
// stale by the time the caller acts on them. The authoritative check happens
// inside the transactional stock mutations.
type GetAvailableStockQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailableStockQuery creates a query for a tenant's stock levels.
func NewGetAvailableStockQuery(tenantID kernel.UUID) (GetAvailableStockQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetAvailableStockQuery{}, err
	}

	return GetAvailableStockQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableStockQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableStockQueryIsNotConstructed)
}

// TenantID returns the tenant whose stock is read.
func (q GetAvailableStockQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// GetAvailableStockQueryResponse is one product's advisory stock level.
type GetAvailableStockQueryResponse struct {
	ProductID    kernel.UUID
	Name         string
	CurrentStock int
	UnitCost     int
}
