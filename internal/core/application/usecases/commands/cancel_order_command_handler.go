package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
)

// CancelOrderCommandHandler cancels an order before shipment.
//
// When the order already reached ready_to_ship its stock was decremented at
// dispatch; cancellation restores it with one compensating +quantity movement
// per line item, written in the same transaction as the status change. The
// ledger keeps both the original decrements and the compensations, so the
// history stays append-only.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order cancellation command.
// Fails when the order has already shipped; carrier returns flow through the
// returned status instead.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	restoreStock := aggregate.Status() == order.ReadyToShip

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if restoreStock {
		if err = h.restoreStock(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// restoreStock writes one compensating movement per line item, under the same
// product row locks as the original decrements.
func (h CancelOrderCommandHandler) restoreStock(ctx context.Context, uow UoW, aggregate *order.Order) error {
	reference, err := product.NewReference(product.ReferenceCancellation, aggregate.ID())
	if err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	ledgerRepo := uow.LedgerRepository()

	for _, item := range aggregate.LineItems() {
		prod, getErr := productRepo.GetForUpdate(ctx, item.ProductID())
		if getErr != nil {
			return getErr
		}

		movement, adjErr := prod.Adjust(item.Quantity(), reference)
		if adjErr != nil {
			return adjErr
		}

		if updErr := productRepo.Update(ctx, prod); updErr != nil {
			return updErr
		}

		if appErr := ledgerRepo.Append(ctx, movement); appErr != nil {
			return appErr
		}
	}

	return nil
}
