package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/session"
)

// ErrNoEligibleOrders is returned when none of the candidate orders can join a
// picking session. Only confirmed orders are eligible; orders already being
// prepared in another session, or past preparation, are skipped.
var ErrNoEligibleOrders = errors.New("no eligible orders for picking session")

// SessionPlanner is a domain service responsible for opening a picking session
// over a batch of candidate orders.
//
// Business rules:
//   - Only confirmed orders join the session; ineligible candidates are
//     skipped, not failed
//   - At least one candidate must be eligible
//   - Every member order transitions to in_preparation together with the
//     session creation, so no order can be claimed by two sessions
type SessionPlanner struct{}

// NewSessionPlanner creates a new SessionPlanner instance.
func NewSessionPlanner() SessionPlanner {
	return SessionPlanner{}
}

// Plan filters candidates down to the eligible subset, opens a session over
// them and moves each member order to in_preparation.
//
// Returns the new session and the member orders whose status changed, so the
// caller can persist both in one transaction. Fails with ErrNoEligibleOrders
// when the eligible subset is empty.
func (p SessionPlanner) Plan(
	sessionID, tenantID kernel.UUID, candidates []*order.Order,
) (*session.PickingSession, []*order.Order, error) {
	var eligible []*order.Order
	for _, o := range candidates {
		if err := o.Validate(); err != nil {
			return nil, nil, err
		}
		if o.TenantID().IsEqual(tenantID) && o.Status().IsEligibleForSession() {
			eligible = append(eligible, o)
		}
	}

	if len(eligible) == 0 {
		return nil, nil, ErrNoEligibleOrders
	}

	s, err := session.NewPickingSession(sessionID, tenantID, eligible)
	if err != nil {
		return nil, nil, err
	}

	for _, o := range eligible {
		if err := o.StartPreparation(); err != nil {
			return nil, nil, err
		}
	}

	return s, eligible, nil
}
