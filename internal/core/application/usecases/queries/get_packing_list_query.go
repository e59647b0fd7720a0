package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPackingListQueryIsNotConstructed = errors.New(
	"GetPackingListQuery must be created via NewGetPackingListQuery constructor",
)

// GetPackingListQuery retrieves the packing state of a session: each member
// order's line items with their packed progress, plus the per-product basket
// remainder still waiting for allocation.
type GetPackingListQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPackingListQuery creates a query for a session's packing list.
func NewGetPackingListQuery(sessionID kernel.UUID) (GetPackingListQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetPackingListQuery{}, err
	}

	return GetPackingListQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPackingListQuery) Validate() error {
	return q.guard.Validate(ErrGetPackingListQueryIsNotConstructed)
}

// SessionID returns the session whose packing list is read.
func (q GetPackingListQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// PackingListItem is one (order, product) allocation row.
type PackingListItem struct {
	OrderID        kernel.UUID
	ProductID      kernel.UUID
	QuantityNeeded int
	QuantityPacked int
}

// BasketRemainder is the unallocated picked quantity of one product.
type BasketRemainder struct {
	ProductID kernel.UUID
	Remaining int
}

// GetPackingListQueryResponse is the full packing state of a session.
type GetPackingListQueryResponse struct {
	SessionID kernel.UUID
	Code      string
	Status    string
	Items     []PackingListItem
	Basket    []BasketRemainder
}
