package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetLedgerQueryIsNotConstructed = errors.New(
	"GetLedgerQuery must be created via NewGetLedgerQuery constructor",
)

// GetLedgerQuery retrieves a product's full movement history, oldest first.
// This is the audit surface: every stock change, including compensations, is
// visible here with the business event that caused it.
type GetLedgerQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLedgerQuery creates a query for a product's movement history.
func NewGetLedgerQuery(productID kernel.UUID) (GetLedgerQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetLedgerQuery{}, err
	}

	return GetLedgerQuery{
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetLedgerQueryIsNotConstructed)
}

// ProductID returns the product whose history is read.
func (q GetLedgerQuery) ProductID() kernel.UUID {
	return q.productID
}

// GetLedgerQueryResponse is one movement row of the ledger.
type GetLedgerQueryResponse struct {
	MovementID     kernel.UUID
	Delta          int
	ResultingStock int
	ReferenceType  string
	ReferenceID    kernel.UUID
	RecordedAt     time.Time
}
