package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents a customer order in the fulfillment system. It is the
// aggregate root that manages the order lifecycle from confirmation through
// picking, packing and dispatch.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and tenant
//   - Must have at least one line item; products are distinct across line items
//   - Line items are immutable once the order is constructed
//   - Status transitions follow the fulfillment workflow (see Status)
//   - The InPreparation -> ReadyToShip transition is the only point where
//     the order's stock is permanently decremented
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// tenantID scopes the order to a single tenant
	tenantID kernel.UUID

	// status represents the current state in the order lifecycle
	status Status

	// lineItems are the required quantities per product, fixed at intake
	lineItems []LineItem

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Confirmed status with validation. This is
// the way order intake hands orders to the fulfillment core.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - tenantID: Owning tenant (must be valid UUID)
//   - lineItems: Required quantities per product (at least one; products distinct)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id, tenantID kernel.UUID, lineItems []LineItem) (*Order, error) {
	o := &Order{
		status:        Confirmed,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its status.
// The restored order behaves identically to one that reached the same state
// through normal domain operations.
func RestoreOrder(id, tenantID kernel.UUID, status Status, lineItems []LineItem) (*Order, error) {
	o, err := NewOrder(id, tenantID, lineItems)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the tenant the order belongs to.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// LineItems returns a copy of the order's line items.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// QuantityOf returns the required quantity for the given product,
// or 0 if the order has no line item for it.
func (o *Order) QuantityOf(productID kernel.UUID) int {
	for _, li := range o.lineItems {
		if li.ProductID().IsEqual(productID) {
			return li.Quantity()
		}
	}
	return 0
}

// StockAffected reports whether the ledger already holds permanent decrements
// for this order. Deleting such an order fails with StockAlreadyAffected; it
// must be cancelled first so compensating movements restore the stock.
func (o *Order) StockAffected() bool {
	return o.status.StockAffected()
}

// StartPreparation moves the order into a picking session.
// Only Confirmed orders are eligible.
func (o *Order) StartPreparation() error {
	newStatus, err := o.status.StartPreparation()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Release returns the order to Confirmed after its session was cancelled.
// No stock has been decremented at this point, so there is nothing to restore.
func (o *Order) Release() error {
	newStatus, err := o.status.Release()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkReadyToShip records that every line item is fully packed.
//
// The caller must write the ledger decrements for all line items in the same
// transaction as this state change: the transition and the movements succeed
// or fail together, never partially.
func (o *Order) MarkReadyToShip() error {
	newStatus, err := o.status.MarkReadyToShip()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Ship records the carrier handoff.
func (o *Order) Ship() error {
	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkDelivered records a successful delivery.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.MarkDelivered()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkReturned records that the shipment came back.
func (o *Order) MarkReturned() error {
	newStatus, err := o.status.MarkReturned()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkDeliveryFailed records a failed delivery attempt.
func (o *Order) MarkDeliveryFailed() error {
	newStatus, err := o.status.MarkDeliveryFailed()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel abandons a pre-shipped order. Whether compensating ledger movements
// are needed is reported by StockAffected before calling this; the caller
// writes them in the same transaction as the state change.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setTenantID validates and sets the owning tenant.
func (o *Order) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	o.tenantID = tenantID
	return nil
}

// setLineItems validates and sets the order's line items.
// At least one item is required and products must be distinct.
func (o *Order) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}

	seen := make(map[kernel.UUID]struct{}, len(lineItems))
	for _, li := range lineItems {
		if li.Quantity() <= 0 {
			return errs.NewValueIsInvalidError("lineItems")
		}
		if _, dup := seen[li.ProductID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lineItems",
				errors.New("duplicate product in line items"))
		}
		seen[li.ProductID()] = struct{}{}
	}

	o.lineItems = make([]LineItem, len(lineItems))
	copy(o.lineItems, lineItems)
	return nil
}
