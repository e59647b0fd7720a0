package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelStaleSessionsCommandIsNotConstructed = errors.New(
	"CancelStaleSessionsCommand must be created via NewCancelStaleSessionsCommand constructor",
)

// CancelStaleSessionsCommand represents a sweep over active picking sessions
// that abandons every one older than the given window. Fired by the watchdog
// job so sessions whose picker walked away release their orders eventually.
type CancelStaleSessionsCommand struct { //nolint:recvcheck //using for validation
	maxIdle time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleSessionsCommand creates a command sweeping sessions older
// than maxIdle.
func NewCancelStaleSessionsCommand(maxIdle time.Duration) (CancelStaleSessionsCommand, error) {
	cmd := CancelStaleSessionsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setMaxIdle(maxIdle); err != nil {
		return CancelStaleSessionsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleSessionsCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleSessionsCommandIsNotConstructed)
}

// MaxIdle returns the abandonment window.
func (c CancelStaleSessionsCommand) MaxIdle() time.Duration {
	return c.maxIdle
}

func (c *CancelStaleSessionsCommand) setMaxIdle(maxIdle time.Duration) error {
	if maxIdle <= 0 {
		return errs.NewValueIsInvalidError("maxIdle")
	}

	c.maxIdle = maxIdle
	return nil
}
