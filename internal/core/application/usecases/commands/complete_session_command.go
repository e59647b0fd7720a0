package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteSessionCommandIsNotConstructed = errors.New(
	"CompleteSessionCommand must be created via NewCompleteSessionCommand constructor",
)

// CompleteSessionCommand represents a request to close a packing session
// after every member order has been fully packed.
type CompleteSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteSessionCommand creates a command to complete a session.
func NewCompleteSessionCommand(sessionID kernel.UUID) (CompleteSessionCommand, error) {
	cmd := CompleteSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return CompleteSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteSessionCommand) Validate() error {
	return c.guard.Validate(ErrCompleteSessionCommandIsNotConstructed)
}

// SessionID returns the session to complete.
func (c CompleteSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *CompleteSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
