package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// AdjustStockCommandHandler handles manual stock corrections.
//
// The counter update and the ledger movement are written in one transaction
// under an exclusive product row lock, keeping the counter equal to the sum of
// movement deltas at every commit point.
type AdjustStockCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewAdjustStockCommandHandler creates a handler for stock adjustment operations.
// Requires a StockUoWFactory for transactional persistence.
func NewAdjustStockCommandHandler(uowFactory StockUoWFactory) AdjustStockCommandHandler {
	return AdjustStockCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the stock adjustment command.
// Locks the product row, applies the bounded delta on the aggregate, then
// persists the counter and appends the movement atomically. A delta that would
// drive the stock negative fails with InsufficientStock and writes nothing.
func (h AdjustStockCommandHandler) Handle(ctx context.Context, cmd AdjustStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()

	aggregate, err := productRepo.GetForUpdate(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	reference, err := product.NewReference(product.ReferenceAdjustment, kernel.NewUUID())
	if err != nil {
		return err
	}

	movement, err := aggregate.Adjust(cmd.Delta(), reference)
	if err != nil {
		return err
	}

	if err = productRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, movement); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
