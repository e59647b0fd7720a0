package commands

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

// DeleteOrderCommandHandler removes orders that never touched stock.
//
// The guard is encoded in the order's status: from ready_to_ship onward the
// ledger holds uncompensated movements for the order, and deleting the order
// row would orphan them. Cancelled orders delete cleanly because cancellation
// already wrote the compensations.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order deletion command.
// Fails with StockAlreadyAffected while the order's movements are uncompensated.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.StockAffected() {
		return errs.NewStockAlreadyAffectedError(cmd.OrderID().String())
	}

	if err = orderRepo.Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
