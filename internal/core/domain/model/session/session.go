package session

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrSessionIsNotConstructed is returned when a PickingSession instance was not
	// created through the NewPickingSession or RestorePickingSession factory methods.
	ErrSessionIsNotConstructed = errors.New(
		"PickingSession must be created via NewPickingSession or RestorePickingSession constructor")
)

// PickingSession is the aggregate root for batch fulfillment. It groups
// confirmed orders, aggregates their required quantities into one pick list
// row per product, and tracks how the picked basket is drained back into
// individual orders during packing.
//
// The progress rows are shared mutable counters under concurrency: every
// persistent mutation of them must go through the stock-control layer. The
// in-memory mutations on this aggregate implement the bound checks for the
// row-lock strategy, where the row is held exclusively for the duration of
// the transaction.
//
// PickingSession follows these invariants:
//   - Must have a valid unique identifier and tenant
//   - Member orders are fixed at creation and belong to the same tenant
//   - quantity_picked per product never exceeds the aggregated quantity_needed
//   - quantity_packed per (order, product) never exceeds that order's own
//     need, and the total packed per product never exceeds the picked basket
type PickingSession struct {
	// id is the unique identifier for the session
	id kernel.UUID

	// tenantID scopes the session to a single tenant
	tenantID kernel.UUID

	// code is the human-readable session code shown on pick lists
	code string

	// status represents the current phase of the session
	status Status

	// orderIDs are the member orders, fixed at creation
	orderIDs []kernel.UUID

	// picking holds one aggregated progress row per distinct product
	picking []*PickingProgress

	// packing holds one progress row per (member order, product)
	packing []*PackingProgress

	// createdAt is when the session was opened
	createdAt time.Time

	// isConstructed ensures the session was created via a constructor
	isConstructed bool
}

// NewPickingSession creates a session over the given member orders.
//
// Every order must be eligible (Confirmed) and belong to tenantID. The
// aggregated pick list is built here: one PickingProgress row per distinct
// product with quantity_needed equal to the sum of that product's required
// quantity across all member orders, and one PackingProgress row per
// (order, product) pair.
//
// The caller transitions the member orders to InPreparation in the same
// transaction that persists the session.
func NewPickingSession(id, tenantID kernel.UUID, orders []*order.Order) (*PickingSession, error) {
	s := &PickingSession{
		status:        Picking,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTenantID(tenantID),
	); err != nil {
		return nil, err
	}
	s.code = "PICK-" + strings.ToUpper(id.String()[:8])

	if err := s.buildProgress(orders); err != nil {
		return nil, err
	}

	return s, nil
}

// RestorePickingSession reconstructs a session from persistence, including
// its progress rows.
func RestorePickingSession(
	id, tenantID kernel.UUID,
	code string,
	status Status,
	orderIDs []kernel.UUID,
	picking []*PickingProgress,
	packing []*PackingProgress,
	createdAt time.Time,
) (*PickingSession, error) {
	s := &PickingSession{isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setTenantID(tenantID),
	); err != nil {
		return nil, err
	}

	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("orderIDs")
	}

	s.code = code
	s.status = status
	s.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(s.orderIDs, orderIDs)
	s.picking = picking
	s.packing = packing
	s.createdAt = createdAt

	return s, nil
}

// Validate ensures the PickingSession instance was properly constructed.
func (s *PickingSession) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// ID returns the session's unique identifier.
func (s *PickingSession) ID() kernel.UUID {
	return s.id
}

// TenantID returns the tenant the session belongs to.
func (s *PickingSession) TenantID() kernel.UUID {
	return s.tenantID
}

// Code returns the human-readable session code.
func (s *PickingSession) Code() string {
	return s.code
}

// Status returns the current phase of the session.
func (s *PickingSession) Status() Status {
	return s.status
}

// CreatedAt returns when the session was opened.
func (s *PickingSession) CreatedAt() time.Time {
	return s.createdAt
}

// OrderIDs returns a copy of the member order identifiers.
func (s *PickingSession) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(s.orderIDs))
	copy(ids, s.orderIDs)
	return ids
}

// HasOrder reports whether the given order is a member of the session.
func (s *PickingSession) HasOrder(orderID kernel.UUID) bool {
	for _, id := range s.orderIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// PickingRows returns the aggregated pick list rows.
// The returned slice is a copy; the rows are live.
func (s *PickingSession) PickingRows() []*PickingProgress {
	rows := make([]*PickingProgress, len(s.picking))
	copy(rows, s.picking)
	return rows
}

// PackingRows returns the per-(order, product) allocation rows.
// The returned slice is a copy; the rows are live.
func (s *PickingSession) PackingRows() []*PackingProgress {
	rows := make([]*PackingProgress, len(s.packing))
	copy(rows, s.packing)
	return rows
}

// PickingRow returns the aggregated progress row for the given product,
// or nil if the session needs none of it.
func (s *PickingSession) PickingRow(productID kernel.UUID) *PickingProgress {
	for _, row := range s.picking {
		if row.productID.IsEqual(productID) {
			return row
		}
	}
	return nil
}

// PackingRow returns the allocation row for (orderID, productID), or nil.
func (s *PickingSession) PackingRow(orderID, productID kernel.UUID) *PackingProgress {
	for _, row := range s.packing {
		if row.orderID.IsEqual(orderID) && row.productID.IsEqual(productID) {
			return row
		}
	}
	return nil
}

// BasketRemaining returns the number of picked units of productID not yet
// allocated to any member order.
func (s *PickingSession) BasketRemaining(productID kernel.UUID) int {
	row := s.PickingRow(productID)
	if row == nil {
		return 0
	}

	packed := 0
	for _, p := range s.packing {
		if p.productID.IsEqual(productID) {
			packed += p.quantityPacked
		}
	}
	return row.quantityPicked - packed
}

// RecordPicked applies a bounded +delta to the product's cumulative picked
// quantity and returns the new value, so callers avoid a second racy read.
//
// The bound is the aggregated quantity_needed; hitting it fails with
// AlreadyFullyPicked and leaves the counter unchanged. The session must be
// in Picking.
func (s *PickingSession) RecordPicked(productID kernel.UUID, delta int) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.status != Picking {
		return 0, invalidTransition(s.status, "record picked units")
	}
	if delta <= 0 {
		return 0, errs.NewValueIsInvalidError("delta")
	}

	row := s.PickingRow(productID)
	if row == nil {
		return 0, errs.NewObjectNotFoundError("productId", productID.String())
	}
	if row.quantityPicked+delta > row.quantityNeeded {
		return row.quantityPicked, errs.ErrAlreadyFullyPicked
	}

	row.quantityPicked += delta
	return row.quantityPicked, nil
}

// PackUnit allocates exactly one picked unit of productID to orderID and
// returns the order's new packed quantity for that product.
//
// Two bounds apply: the order's own quantity_needed (AlreadyFullyPacked at
// the bound) and the session-wide basket remainder (NoUnitsAvailable when
// exhausted). The session must be in Packing.
func (s *PickingSession) PackUnit(orderID, productID kernel.UUID) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.status != Packing {
		return 0, invalidTransition(s.status, "pack units")
	}

	row := s.PackingRow(orderID, productID)
	if row == nil {
		return 0, errs.NewObjectNotFoundError("packingProgress",
			orderID.String()+"/"+productID.String())
	}
	if row.quantityPacked >= row.quantityNeeded {
		return row.quantityPacked, errs.ErrAlreadyFullyPacked
	}
	if s.BasketRemaining(productID) <= 0 {
		return row.quantityPacked, errs.ErrNoUnitsAvailable
	}

	row.quantityPacked++
	return row.quantityPacked, nil
}

// IsFullyPicked reports whether every aggregated pick list row is satisfied.
func (s *PickingSession) IsFullyPicked() bool {
	for _, row := range s.picking {
		if !row.IsSatisfied() {
			return false
		}
	}
	return true
}

// PickingShortfalls returns the products still short of their aggregated
// need, in pick list order.
func (s *PickingSession) PickingShortfalls() []errs.ProductShortfall {
	var shortfalls []errs.ProductShortfall
	for _, row := range s.picking {
		if !row.IsSatisfied() {
			shortfalls = append(shortfalls, errs.ProductShortfall{
				ProductID: row.productID.String(),
				Missing:   row.quantityNeeded - row.quantityPicked,
			})
		}
	}
	return shortfalls
}

// IsOrderFullyPacked reports whether every line item of the given member
// order has reached its required quantity.
func (s *PickingSession) IsOrderFullyPacked(orderID kernel.UUID) bool {
	found := false
	for _, row := range s.packing {
		if !row.orderID.IsEqual(orderID) {
			continue
		}
		found = true
		if !row.IsSatisfied() {
			return false
		}
	}
	return found
}

// PackingShortfalls returns every under-packed (order, product) pair.
func (s *PickingSession) PackingShortfalls() []errs.Shortfall {
	var shortfalls []errs.Shortfall
	for _, row := range s.packing {
		if !row.IsSatisfied() {
			shortfalls = append(shortfalls, errs.Shortfall{
				OrderID:   row.orderID.String(),
				ProductID: row.productID.String(),
				Missing:   row.quantityNeeded - row.quantityPacked,
			})
		}
	}
	return shortfalls
}

// FinishPicking moves the session from Picking to Packing.
//
// Requires every pick list row satisfied, unless the caller explicitly
// acknowledges the shortfall (partial fulfillment). Idempotent: finishing a
// session already in Packing is a no-op success, tolerating retried requests.
func (s *PickingSession) FinishPicking(acknowledgeShortfall bool) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.status == Packing {
		return nil
	}

	if shortfalls := s.PickingShortfalls(); len(shortfalls) > 0 && !acknowledgeShortfall {
		return errs.NewPickingIncompleteError(shortfalls)
	}

	newStatus, err := s.status.StartPacking()
	if err != nil {
		return err
	}
	s.status = newStatus
	return nil
}

// Complete moves the session from Packing to Completed.
//
// Requires every member order fully packed; otherwise fails with
// IncompleteOrders naming each short (order, product) pair. Idempotent:
// completing a Completed session is a no-op success.
func (s *PickingSession) Complete() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.status == Completed {
		return nil
	}

	if shortfalls := s.PackingShortfalls(); len(shortfalls) > 0 {
		return errs.NewIncompleteOrdersError(shortfalls)
	}

	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}
	s.status = newStatus
	return nil
}

// Cancel abandons the session. Valid while Picking or Packing; there is no
// stock to restore because nothing has been decremented at this stage.
func (s *PickingSession) Cancel() error {
	if err := s.Validate(); err != nil {
		return err
	}

	newStatus, err := s.status.Cancel()
	if err != nil {
		return err
	}
	s.status = newStatus
	return nil
}

// setID validates and sets the session's unique identifier.
func (s *PickingSession) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

// setTenantID validates and sets the owning tenant.
func (s *PickingSession) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	s.tenantID = tenantID
	return nil
}

// buildProgress aggregates the member orders into pick list and allocation rows.
func (s *PickingSession) buildProgress(orders []*order.Order) error {
	if len(orders) == 0 {
		return errs.NewValueIsRequiredError("orders")
	}

	needed := make(map[kernel.UUID]int)
	var productOrder []kernel.UUID

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if !o.TenantID().IsEqual(s.tenantID) {
			return errs.NewValueIsInvalidErrorWithCause("orders",
				errors.New("order belongs to a different tenant"))
		}
		if !o.Status().IsEligibleForSession() {
			return errs.NewValueIsInvalidErrorWithCause("orders",
				errors.New("order is not eligible for a picking session"))
		}

		s.orderIDs = append(s.orderIDs, o.ID())

		for _, li := range o.LineItems() {
			if _, seen := needed[li.ProductID()]; !seen {
				productOrder = append(productOrder, li.ProductID())
			}
			needed[li.ProductID()] += li.Quantity()

			packingRow, err := newPackingProgress(o.ID(), li.ProductID(), li.Quantity())
			if err != nil {
				return err
			}
			s.packing = append(s.packing, packingRow)
		}
	}

	for _, productID := range productOrder {
		pickingRow, err := newPickingProgress(productID, needed[productID])
		if err != nil {
			return err
		}
		s.picking = append(s.picking, pickingRow)
	}

	return nil
}
