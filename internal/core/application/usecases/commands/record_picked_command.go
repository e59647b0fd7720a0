package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRecordPickedCommandIsNotConstructed = errors.New(
		"RecordPickedCommand must be created via NewRecordPickedCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// RecordPickedCommand represents a picker scanning units of a product into
// the session's shared basket.
type RecordPickedCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewRecordPickedCommand creates a command to record picked units.
// Validates both identifiers and that the quantity is positive.
func NewRecordPickedCommand(sessionID, productID kernel.UUID, quantity int) (RecordPickedCommand, error) {
	cmd := RecordPickedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return RecordPickedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPickedCommand) Validate() error {
	return c.guard.Validate(ErrRecordPickedCommandIsNotConstructed)
}

// SessionID returns the session the units were picked for.
func (c RecordPickedCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ProductID returns the picked product.
func (c RecordPickedCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns how many units were picked.
func (c RecordPickedCommand) Quantity() int {
	return c.quantity
}

func (c *RecordPickedCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *RecordPickedCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *RecordPickedCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
