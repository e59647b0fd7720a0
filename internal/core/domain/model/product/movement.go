package product

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ReferenceType names the kind of business event a movement traces back to.
type ReferenceType string

const (
	// ReferenceAdjustment marks manual stock corrections and initial intake.
	ReferenceAdjustment ReferenceType = "adjustment"

	// ReferenceOrder marks the permanent decrement written when an order
	// becomes ready to ship.
	ReferenceOrder ReferenceType = "order"

	// ReferenceCancellation marks the compensating increment written when a
	// dispatched order is cancelled.
	ReferenceCancellation ReferenceType = "order_cancellation"
)

// Validate checks that the reference type is one of the known kinds.
func (t ReferenceType) Validate() error {
	switch t {
	case ReferenceAdjustment, ReferenceOrder, ReferenceCancellation:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("referenceType",
			fmt.Errorf("%q is not a valid reference type", string(t)))
	}
}

// Reference ties a movement to the business event that caused it.
type Reference struct {
	Type ReferenceType
	ID   kernel.UUID
}

// NewReference creates a Reference after validating both parts.
func NewReference(refType ReferenceType, id kernel.UUID) (Reference, error) {
	r := Reference{Type: refType, ID: id}
	if err := r.Validate(); err != nil {
		return Reference{}, err
	}
	return r, nil
}

// Validate checks the reference holds a known type and a valid ID.
func (r Reference) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if err := r.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("referenceID", err)
	}
	return nil
}

// Movement is one immutable row of the inventory ledger. Movements are
// append-only: they are never updated or deleted, and together they are the
// audit source of truth for a product's stock. ResultingStock snapshots the
// counter immediately after this movement applied, which makes per-row
// reconciliation possible without replaying the whole ledger.
type Movement struct {
	id             kernel.UUID
	productID      kernel.UUID
	delta          int
	resultingStock int
	reference      Reference
	recordedAt     time.Time
}

// newMovement is called by Product.Adjust; the bounds were already checked there.
func newMovement(productID kernel.UUID, delta, resultingStock int, reference Reference) (*Movement, error) {
	return &Movement{
		id:             kernel.NewUUID(),
		productID:      productID,
		delta:          delta,
		resultingStock: resultingStock,
		reference:      reference,
		recordedAt:     time.Now().UTC(),
	}, nil
}

// RestoreMovement reconstructs a Movement from persistence.
func RestoreMovement(id, productID kernel.UUID, delta, resultingStock int,
	reference Reference, recordedAt time.Time) (*Movement, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if err := reference.Validate(); err != nil {
		return nil, err
	}
	if resultingStock < 0 {
		return nil, errs.NewValueIsInvalidError("resultingStock")
	}

	return &Movement{
		id:             id,
		productID:      productID,
		delta:          delta,
		resultingStock: resultingStock,
		reference:      reference,
		recordedAt:     recordedAt,
	}, nil
}

// ID returns the movement's unique identifier.
func (m *Movement) ID() kernel.UUID {
	return m.id
}

// ProductID returns the product the movement applies to.
func (m *Movement) ProductID() kernel.UUID {
	return m.productID
}

// Delta returns the signed stock change.
func (m *Movement) Delta() int {
	return m.delta
}

// ResultingStock returns the stock counter value right after this movement.
func (m *Movement) ResultingStock() int {
	return m.resultingStock
}

// Reference returns the business event the movement traces back to.
func (m *Movement) Reference() Reference {
	return m.reference
}

// RecordedAt returns when the movement was recorded.
func (m *Movement) RecordedAt() time.Time {
	return m.recordedAt
}
