package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrPackUnitCommandIsNotConstructed = errors.New(
	"PackUnitCommand must be created via NewPackUnitCommand constructor",
)

// PackUnitCommand represents a packer moving exactly one unit of a product
// from the session's shared basket into a member order's box.
type PackUnitCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	orderID   kernel.UUID
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPackUnitCommand creates a command to allocate one picked unit to an order.
func NewPackUnitCommand(sessionID, orderID, productID kernel.UUID) (PackUnitCommand, error) {
	cmd := PackUnitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
	); err != nil {
		return PackUnitCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PackUnitCommand) Validate() error {
	return c.guard.Validate(ErrPackUnitCommandIsNotConstructed)
}

// SessionID returns the session whose basket the unit comes from.
func (c PackUnitCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// OrderID returns the order receiving the unit.
func (c PackUnitCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the product being packed.
func (c PackUnitCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c *PackUnitCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *PackUnitCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PackUnitCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}
