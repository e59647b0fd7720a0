package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Confirmed ──> InPreparation ──> ReadyToShip ──> Shipped ──> Delivered
//	    ^               │                                │
//	    └───────────────┘ (release)                      ├──> Returned
//	                                                     └──> DeliveryFailed
//
//	Cancelled is reachable from Confirmed, InPreparation and ReadyToShip.
//
// The InPreparation -> ReadyToShip transition is the single point where
// inventory ledger movements are written for the order's line items.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Confirmed is the initial status produced by order intake.
	// Only confirmed orders are eligible for picking sessions.
	Confirmed

	// InPreparation indicates the order is a member of an active picking
	// session. Line items are frozen while in this status.
	InPreparation

	// ReadyToShip indicates every line item is fully packed and the stock
	// decrement has been permanently recorded in the ledger.
	ReadyToShip

	// Shipped indicates the order was handed to a carrier.
	Shipped

	// Delivered indicates a successful delivery. Final state.
	Delivered

	// Returned indicates the shipment came back after being shipped.
	Returned

	// DeliveryFailed indicates the carrier could not deliver the shipment.
	DeliveryFailed

	// Cancelled indicates the order was abandoned before shipping.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Confirmed:      "Confirmed",
		InPreparation:  "InPreparation",
		ReadyToShip:    "ReadyToShip",
		Shipped:        "Shipped",
		Delivered:      "Delivered",
		Returned:       "Returned",
		DeliveryFailed: "DeliveryFailed",
		Cancelled:      "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Confirmed:      "Confirmed",
		InPreparation:  "InPreparation",
		ReadyToShip:    "ReadyToShip",
		Shipped:        "Shipped",
		Delivered:      "Delivered",
		Returned:       "Returned",
		DeliveryFailed: "DeliveryFailed",
		Cancelled:      "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other unmapped values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsEligibleForSession reports whether an order in this status may join a
// picking session. Only Confirmed orders are eligible.
func (s Status) IsEligibleForSession() bool {
	return s == Confirmed
}

// StockAffected reports whether this status implies the inventory ledger
// already holds permanent decrements for the order. Such orders cannot be
// deleted until the movements are compensated by cancellation.
func (s Status) StockAffected() bool {
	switch s {
	case ReadyToShip, Shipped, Delivered, Returned, DeliveryFailed:
		return true
	default:
		return false
	}
}

// StartPreparation transitions the status to InPreparation.
//
// Valid transitions:
//   - Confirmed -> InPreparation (order joins a picking session)
func (s Status) StartPreparation() (Status, error) {
	if s != Confirmed {
		return 0, invalidTransition(s, "start preparation")
	}
	return InPreparation, nil
}

// Release transitions the status back to Confirmed.
//
// Valid transitions:
//   - InPreparation -> Confirmed (the owning session was cancelled before
//     any stock was decremented)
func (s Status) Release() (Status, error) {
	if s != InPreparation {
		return 0, invalidTransition(s, "release")
	}
	return Confirmed, nil
}

// MarkReadyToShip transitions the status to ReadyToShip.
//
// Valid transitions:
//   - InPreparation -> ReadyToShip (all line items packed; must commit in the
//     same transaction as the ledger decrements)
func (s Status) MarkReadyToShip() (Status, error) {
	if s != InPreparation {
		return 0, invalidTransition(s, "mark ready to ship")
	}
	return ReadyToShip, nil
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - ReadyToShip -> Shipped (carrier handoff)
func (s Status) Ship() (Status, error) {
	if s != ReadyToShip {
		return 0, invalidTransition(s, "ship")
	}
	return Shipped, nil
}

// MarkDelivered transitions the status to Delivered.
//
// Valid transitions:
//   - Shipped -> Delivered
func (s Status) MarkDelivered() (Status, error) {
	if s != Shipped {
		return 0, invalidTransition(s, "mark delivered")
	}
	return Delivered, nil
}

// MarkReturned transitions the status to Returned.
//
// Valid transitions:
//   - Shipped -> Returned
func (s Status) MarkReturned() (Status, error) {
	if s != Shipped {
		return 0, invalidTransition(s, "mark returned")
	}
	return Returned, nil
}

// MarkDeliveryFailed transitions the status to DeliveryFailed.
//
// Valid transitions:
//   - Shipped -> DeliveryFailed
func (s Status) MarkDeliveryFailed() (Status, error) {
	if s != Shipped {
		return 0, invalidTransition(s, "mark delivery failed")
	}
	return DeliveryFailed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Confirmed -> Cancelled
//   - InPreparation -> Cancelled
//   - ReadyToShip -> Cancelled (requires compensating ledger movements,
//     written by the caller in the same transaction)
//
// Shipped and later statuses cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Confirmed, InPreparation, ReadyToShip:
		return Cancelled, nil
	default:
		return 0, invalidTransition(s, "cancel")
	}
}

func invalidTransition(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action),
	)
}
