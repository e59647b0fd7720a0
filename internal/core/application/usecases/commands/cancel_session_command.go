package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelSessionCommandIsNotConstructed = errors.New(
	"CancelSessionCommand must be created via NewCancelSessionCommand constructor",
)

// CancelSessionCommand represents a request to abandon a picking session and
// return its member orders to the pool of confirmed orders.
type CancelSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelSessionCommand creates a command to cancel a session.
func NewCancelSessionCommand(sessionID kernel.UUID) (CancelSessionCommand, error) {
	cmd := CancelSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return CancelSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelSessionCommand) Validate() error {
	return c.guard.Validate(ErrCancelSessionCommandIsNotConstructed)
}

// SessionID returns the session to cancel.
func (c CancelSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *CancelSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
