package session

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a picking session.
//
// State transitions:
//
//	Picking ──> Packing ──> Completed
//	   │           │
//	   └───────────┴──> Cancelled
//
// A session in Picking accumulates picked units against the aggregated pick
// list; in Packing the picked basket is drained into member orders; Completed
// and Cancelled are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Picking is the initial status: workers record picked quantities
	// against the aggregated pick list.
	Picking

	// Packing indicates the pick list is satisfied (or a shortfall was
	// acknowledged) and the basket is being drained into member orders.
	Packing

	// Completed indicates every member order is fully packed and dispatched.
	// Final state.
	Completed

	// Cancelled indicates the session was abandoned. Nothing to restore:
	// stock is only decremented when individual orders become ready to ship.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Picking:   "Picking",
		Packing:   "Packing",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Picking:   "Picking",
		Packing:   "Packing",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StartPacking transitions the status to Packing.
//
// Valid transitions:
//   - Picking -> Packing
func (s Status) StartPacking() (Status, error) {
	if s != Picking {
		return 0, invalidTransition(s, "start packing")
	}
	return Packing, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Packing -> Completed
func (s Status) Complete() (Status, error) {
	if s != Packing {
		return 0, invalidTransition(s, "complete")
	}
	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Picking -> Cancelled
//   - Packing -> Cancelled
func (s Status) Cancel() (Status, error) {
	switch s {
	case Picking, Packing:
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
