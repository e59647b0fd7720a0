package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAdjustStockCommandIsNotConstructed = errors.New(
		"AdjustStockCommand must be created via NewAdjustStockCommand constructor",
	)
	ErrDeltaIsZero = errors.New("delta must not be zero")
)

// AdjustStockCommand represents a manual stock correction: goods received,
// damage write-offs, stocktake differences. The delta may be positive or
// negative but never zero, and the resulting stock may not go below zero.
//
// Example:
//
//	cmd, err := NewAdjustStockCommand(productID, 50)
//	if err != nil {
//	    return fmt.Errorf("invalid adjustment: %w", err)
//	}
//
//	handler := NewAdjustStockCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to adjust stock: %w", err)
//	}
type AdjustStockCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	delta     int

	guard guard.ConstructorGuard
}

// NewAdjustStockCommand creates a command to correct a product's stock level.
// Validates that the product ID is valid and the delta is not zero.
func NewAdjustStockCommand(productID kernel.UUID, delta int) (AdjustStockCommand, error) {
	cmd := AdjustStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setDelta(delta),
	); err != nil {
		return AdjustStockCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdjustStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustStockCommandIsNotConstructed)
}

// ProductID returns the product whose stock is adjusted.
func (c AdjustStockCommand) ProductID() kernel.UUID {
	return c.productID
}

// Delta returns the signed stock change.
func (c AdjustStockCommand) Delta() int {
	return c.delta
}

func (c *AdjustStockCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AdjustStockCommand) setDelta(delta int) error {
	if delta == 0 {
		return ErrDeltaIsZero
	}

	c.delta = delta
	return nil
}
