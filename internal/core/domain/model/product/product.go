package product

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created
	// through the NewProduct or RestoreProduct factory methods.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")
)

// Product is the aggregate root for a stocked item. It owns the current-stock
// counter, which is advisory everywhere except inside the atomic ledger append:
// the counter always equals the sum of all movement deltas recorded for the
// product since creation.
//
// Product follows these invariants:
//   - Must have a valid unique identifier and tenant
//   - Name must not be empty
//   - Current stock is never negative
//   - Unit cost is never negative
//   - The counter only changes through Adjust, which emits the matching
//     ledger movement
type Product struct {
	// id is the unique identifier for the product
	id kernel.UUID

	// tenantID scopes the product to a single tenant
	tenantID kernel.UUID

	// name is the human-readable product name
	name string

	// currentStock is the number of units on hand (never negative)
	currentStock int

	// unitCost is the per-unit cost in cents
	unitCost int

	// isConstructed ensures the product was created via a constructor
	isConstructed bool
}

// NewProduct creates a Product with zero stock. Initial stock enters through
// Adjust so the very first units already have a ledger trail.
func NewProduct(id, tenantID kernel.UUID, name string, unitCost int) (*Product, error) {
	p := &Product{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setTenantID(tenantID),
		p.setName(name),
		p.setUnitCost(unitCost),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistence, including its
// current stock counter.
func RestoreProduct(id, tenantID kernel.UUID, name string, unitCost, currentStock int) (*Product, error) {
	p, err := NewProduct(id, tenantID, name, unitCost)
	if err != nil {
		return nil, err
	}

	if currentStock < 0 {
		return nil, errs.NewValueIsOutOfRangeError("currentStock", currentStock, 0, int(^uint(0)>>1))
	}
	p.currentStock = currentStock

	return p, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// TenantID returns the tenant the product belongs to.
func (p *Product) TenantID() kernel.UUID {
	return p.tenantID
}

// Name returns the product's name.
func (p *Product) Name() string {
	return p.name
}

// CurrentStock returns the number of units on hand.
// Outside the atomic ledger append this value is advisory only.
func (p *Product) CurrentStock() int {
	return p.currentStock
}

// UnitCost returns the per-unit cost in cents.
func (p *Product) UnitCost() int {
	return p.unitCost
}

// Adjust applies delta to the stock counter and returns the ledger movement
// recording it. The movement and the counter update must be persisted in the
// same transaction; the ledger is the source of truth for reconciliation.
//
// Returns InsufficientStock if the delta would drive the counter negative;
// the counter is left unchanged and no movement is produced.
func (p *Product) Adjust(delta int, reference Reference) (*Movement, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if delta == 0 {
		return nil, errs.NewValueIsInvalidError("delta")
	}
	if err := reference.Validate(); err != nil {
		return nil, err
	}

	resulting := p.currentStock + delta
	if resulting < 0 {
		return nil, errs.NewInsufficientStockError(p.id.String(), -delta, p.currentStock)
	}

	movement, err := newMovement(p.id, delta, resulting, reference)
	if err != nil {
		return nil, err
	}

	p.currentStock = resulting
	return movement, nil
}

// setID validates and sets the product's unique identifier.
func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setTenantID validates and sets the owning tenant.
func (p *Product) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	p.tenantID = tenantID
	return nil
}

// setName validates and sets the product name.
func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

// setUnitCost validates and sets the per-unit cost.
func (p *Product) setUnitCost(unitCost int) error {
	if unitCost < 0 {
		return errs.NewValueIsInvalidError("unitCost")
	}
	p.unitCost = unitCost
	return nil
}
