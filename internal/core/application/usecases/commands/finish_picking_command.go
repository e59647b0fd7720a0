package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrFinishPickingCommandIsNotConstructed = errors.New(
	"FinishPickingCommand must be created via NewFinishPickingCommand constructor",
)

// FinishPickingCommand represents a request to close the picking phase and
// move the session to packing. Setting acknowledgeShortfall accepts partial
// fulfillment: the session proceeds even though some products were picked
// short of their aggregated need.
type FinishPickingCommand struct { //nolint:recvcheck //using for validation
	sessionID            kernel.UUID
	acknowledgeShortfall bool

	guard guard.ConstructorGuard
}

// NewFinishPickingCommand creates a command to finish the picking phase.
func NewFinishPickingCommand(sessionID kernel.UUID, acknowledgeShortfall bool) (FinishPickingCommand, error) {
	cmd := FinishPickingCommand{
		acknowledgeShortfall: acknowledgeShortfall,
		guard:                guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return FinishPickingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinishPickingCommand) Validate() error {
	return c.guard.Validate(ErrFinishPickingCommandIsNotConstructed)
}

// SessionID returns the session to finish picking for.
func (c FinishPickingCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// AcknowledgeShortfall reports whether the caller accepts partial fulfillment.
func (c FinishPickingCommand) AcknowledgeShortfall() bool {
	return c.acknowledgeShortfall
}

func (c *FinishPickingCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
