package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Stock and progress mutations fail in one of three ways that callers must be
// able to tell apart: a capacity boundary was reached (a business outcome, never
// retried), a concurrent writer got there first (transient, retried with
// backoff), or a protected invariant would be violated (never bypassed).
// Each specific sentinel wraps its kind sentinel, so errors.Is matches both
// the precise failure and its class.
var (
	// ErrCapacityExceeded classifies failures where a bounded counter is full.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrConcurrencyConflict classifies transient lost races with another writer.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrIntegrityViolation classifies attempts to break a protected invariant.
	ErrIntegrityViolation = errors.New("integrity violation")

	// ErrInsufficientStock is returned when a ledger decrement would drive a
	// product's stock negative.
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrCapacityExceeded)

	// ErrNoUnitsAvailable is returned when a session's basket holds no more
	// picked units of the requested product.
	ErrNoUnitsAvailable = fmt.Errorf("%w: no units available in basket", ErrCapacityExceeded)

	// ErrAlreadyFullyPicked is returned when a pick increment hits the
	// aggregated quantity needed by the session.
	ErrAlreadyFullyPicked = fmt.Errorf("%w: already fully picked", ErrCapacityExceeded)

	// ErrAlreadyFullyPacked is returned when a pack increment hits the order's
	// own required quantity.
	ErrAlreadyFullyPacked = fmt.Errorf("%w: already fully packed", ErrCapacityExceeded)

	// ErrStockAlreadyAffected is returned when deleting an order whose ledger
	// movements have not been compensated.
	ErrStockAlreadyAffected = fmt.Errorf("%w: stock already affected", ErrIntegrityViolation)

	// ErrIncompleteOrders is returned when completing a session whose member
	// orders are not all fully packed.
	ErrIncompleteOrders = fmt.Errorf("%w: incomplete orders", ErrIntegrityViolation)

	// ErrPickingIncomplete is returned when moving a session to packing while
	// some product is still short of its aggregated quantity needed and no
	// partial-fulfillment override was acknowledged.
	ErrPickingIncomplete = fmt.Errorf("%w: picking incomplete", ErrIntegrityViolation)

	// ErrPickingClosed is returned when a pick increment reaches a session
	// that has already left the picking phase.
	ErrPickingClosed = fmt.Errorf("%w: picking closed", ErrIntegrityViolation)
)

// InsufficientStockError reports a rejected ledger decrement with the quantities involved.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

// NewInsufficientStockError creates an InsufficientStockError for the given product.
func NewInsufficientStockError(productID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return sanitize(fmt.Sprintf("%s: product %s: requested %d, available %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ConcurrencyConflictError reports a conditional write that affected zero rows
// because a concurrent writer changed the target first. Resource names the
// contended row.
type ConcurrencyConflictError struct {
	Resource string
	Cause    error
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for the named resource.
func NewConcurrencyConflictError(resource string) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Resource: resource}
}

// NewConcurrencyConflictErrorWithCause creates a ConcurrencyConflictError wrapping an underlying cause.
func NewConcurrencyConflictErrorWithCause(resource string, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Resource: resource, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %v)", ErrConcurrencyConflict, e.Resource, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrConcurrencyConflict, e.Resource))
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// StockAlreadyAffectedError reports a blocked deletion of an order that has
// uncompensated ledger movements.
type StockAlreadyAffectedError struct {
	OrderID string
}

// NewStockAlreadyAffectedError creates a StockAlreadyAffectedError for the given order.
func NewStockAlreadyAffectedError(orderID string) *StockAlreadyAffectedError {
	return &StockAlreadyAffectedError{OrderID: orderID}
}

func (e *StockAlreadyAffectedError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %s", ErrStockAlreadyAffected, e.OrderID))
}

func (e *StockAlreadyAffectedError) Unwrap() error {
	return ErrStockAlreadyAffected
}

// ProductShortfall identifies one product still short of its aggregated
// quantity needed when finishing the picking phase.
type ProductShortfall struct {
	ProductID string
	Missing   int
}

func (s ProductShortfall) String() string {
	return fmt.Sprintf("product %s short by %d", s.ProductID, s.Missing)
}

// PickingIncompleteError reports a blocked transition to packing, naming every
// short product so workers know what is still missing from the basket.
type PickingIncompleteError struct {
	Shortfalls []ProductShortfall
}

// NewPickingIncompleteError creates a PickingIncompleteError from the detected shortfalls.
func NewPickingIncompleteError(shortfalls []ProductShortfall) *PickingIncompleteError {
	return &PickingIncompleteError{Shortfalls: shortfalls}
}

func (e *PickingIncompleteError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = s.String()
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrPickingIncomplete, strings.Join(parts, "; ")))
}

func (e *PickingIncompleteError) Unwrap() error {
	return ErrPickingIncomplete
}

// Shortfall identifies one under-packed line item blocking session completion.
type Shortfall struct {
	OrderID   string
	ProductID string
	Missing   int
}

func (s Shortfall) String() string {
	return fmt.Sprintf("order %s product %s short by %d", s.OrderID, s.ProductID, s.Missing)
}

// IncompleteOrdersError reports a blocked session completion, naming every
// short (order, product) pair so the caller can act on each.
type IncompleteOrdersError struct {
	Shortfalls []Shortfall
}

// NewIncompleteOrdersError creates an IncompleteOrdersError from the detected shortfalls.
func NewIncompleteOrdersError(shortfalls []Shortfall) *IncompleteOrdersError {
	return &IncompleteOrdersError{Shortfalls: shortfalls}
}

func (e *IncompleteOrdersError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = s.String()
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrIncompleteOrders, strings.Join(parts, "; ")))
}

func (e *IncompleteOrdersError) Unwrap() error {
	return ErrIncompleteOrders
}
