package session

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// PickingProgress tracks cumulative picked units against the aggregated
// quantity needed for one product across all member orders of a session.
// quantityPicked is monotonically non-decreasing while the session is picking
// and never exceeds quantityNeeded.
type PickingProgress struct {
	productID      kernel.UUID
	quantityNeeded int
	quantityPicked int
}

func newPickingProgress(productID kernel.UUID, quantityNeeded int) (*PickingProgress, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if quantityNeeded <= 0 {
		return nil, errs.NewValueIsInvalidError("quantityNeeded")
	}
	return &PickingProgress{productID: productID, quantityNeeded: quantityNeeded}, nil
}

// RestorePickingProgress reconstructs a PickingProgress row from persistence.
func RestorePickingProgress(productID kernel.UUID, quantityNeeded, quantityPicked int) (*PickingProgress, error) {
	p, err := newPickingProgress(productID, quantityNeeded)
	if err != nil {
		return nil, err
	}
	if quantityPicked < 0 || quantityPicked > quantityNeeded {
		return nil, errs.NewValueIsOutOfRangeError("quantityPicked", quantityPicked, 0, quantityNeeded)
	}
	p.quantityPicked = quantityPicked
	return p, nil
}

// ProductID returns the product this row aggregates.
func (p *PickingProgress) ProductID() kernel.UUID {
	return p.productID
}

// QuantityNeeded returns the aggregated required quantity across member orders.
func (p *PickingProgress) QuantityNeeded() int {
	return p.quantityNeeded
}

// QuantityPicked returns the cumulative picked quantity.
func (p *PickingProgress) QuantityPicked() int {
	return p.quantityPicked
}

// IsSatisfied reports whether the aggregated need is fully picked.
func (p *PickingProgress) IsSatisfied() bool {
	return p.quantityPicked >= p.quantityNeeded
}

// PackingProgress tracks units allocated from the session's basket into one
// order's line item. quantityPacked is monotonically non-decreasing and
// bounded above by the order's own quantityNeeded.
type PackingProgress struct {
	orderID        kernel.UUID
	productID      kernel.UUID
	quantityNeeded int
	quantityPacked int
}

func newPackingProgress(orderID, productID kernel.UUID, quantityNeeded int) (*PackingProgress, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if quantityNeeded <= 0 {
		return nil, errs.NewValueIsInvalidError("quantityNeeded")
	}
	return &PackingProgress{orderID: orderID, productID: productID, quantityNeeded: quantityNeeded}, nil
}

// RestorePackingProgress reconstructs a PackingProgress row from persistence.
func RestorePackingProgress(orderID, productID kernel.UUID, quantityNeeded, quantityPacked int) (*PackingProgress, error) {
	p, err := newPackingProgress(orderID, productID, quantityNeeded)
	if err != nil {
		return nil, err
	}
	if quantityPacked < 0 || quantityPacked > quantityNeeded {
		return nil, errs.NewValueIsOutOfRangeError("quantityPacked", quantityPacked, 0, quantityNeeded)
	}
	p.quantityPacked = quantityPacked
	return p, nil
}

// OrderID returns the order this row allocates units to.
func (p *PackingProgress) OrderID() kernel.UUID {
	return p.orderID
}

// ProductID returns the product being allocated.
func (p *PackingProgress) ProductID() kernel.UUID {
	return p.productID
}

// QuantityNeeded returns the order's own required quantity for the product.
func (p *PackingProgress) QuantityNeeded() int {
	return p.quantityNeeded
}

// QuantityPacked returns the units already allocated to the order.
func (p *PackingProgress) QuantityPacked() int {
	return p.quantityPacked
}

// IsSatisfied reports whether the order's need for this product is fully packed.
func (p *PackingProgress) IsSatisfied() bool {
	return p.quantityPacked >= p.quantityNeeded
}
