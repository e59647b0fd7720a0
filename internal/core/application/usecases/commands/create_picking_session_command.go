package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreatePickingSessionCommandIsNotConstructed = errors.New(
		"CreatePickingSessionCommand must be created via NewCreatePickingSessionCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order ID is required")
)

// CreatePickingSessionCommand represents a request to open a picking session
// over a batch of candidate orders.
type CreatePickingSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	tenantID  kernel.UUID
	orderIDs  []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePickingSessionCommand creates a command to open a picking session.
// Validates the session and tenant identifiers and every candidate order ID.
func NewCreatePickingSessionCommand(
	sessionID, tenantID kernel.UUID, orderIDs []kernel.UUID,
) (CreatePickingSessionCommand, error) {
	cmd := CreatePickingSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setTenantID(tenantID),
		cmd.setOrderIDs(orderIDs),
	); err != nil {
		return CreatePickingSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePickingSessionCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickingSessionCommandIsNotConstructed)
}

// SessionID returns the unique identifier for the new session.
func (c CreatePickingSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// TenantID returns the tenant the session belongs to.
func (c CreatePickingSessionCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderIDs returns the candidate order identifiers.
func (c CreatePickingSessionCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

func (c *CreatePickingSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *CreatePickingSessionCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreatePickingSessionCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}
