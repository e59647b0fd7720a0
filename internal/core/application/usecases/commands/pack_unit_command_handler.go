package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
)

// PackUnitCommandHandler allocates picked units to orders and drives the
// order transition that the final unit triggers.
//
// Everything happens in one transaction under the session's row lock: the
// bounded increment on the packing row, and, when this unit completes the
// order, the order's move to ready_to_ship together with every ledger
// decrement for its line items. If any line lacks stock the whole
// transaction rolls back, including the increment, so the order is never
// half dispatched.
type PackUnitCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.CompletionNotifier
}

// NewPackUnitCommandHandler creates a handler for packing operations.
// The notifier is invoked after commit when an order reaches ready_to_ship.
func NewPackUnitCommandHandler(uowFactory UoWFactory, notifier ports.CompletionNotifier) PackUnitCommandHandler {
	return PackUnitCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the pack-unit command and returns the order's new packed
// quantity for the product.
//
// Fails with AlreadyFullyPacked at the order's own bound and with
// NoUnitsAvailable when the shared basket has no unallocated units left.
func (h PackUnitCommandHandler) Handle(ctx context.Context, cmd PackUnitCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	aggregate, err := sessionRepo.GetForUpdate(ctx, cmd.SessionID())
	if err != nil {
		return 0, err
	}

	newValue, err := aggregate.PackUnit(cmd.OrderID(), cmd.ProductID())
	if err != nil {
		return 0, err
	}

	orderCompleted := aggregate.IsOrderFullyPacked(cmd.OrderID())
	if orderCompleted {
		if err = h.dispatchOrder(ctx, uow, cmd.OrderID()); err != nil {
			return 0, err
		}
	}

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if orderCompleted {
		h.notifier.OrderReadyToShip(ctx, cmd.OrderID())
	}

	return newValue, nil
}

// dispatchOrder moves a fully packed order to ready_to_ship and writes one
// ledger decrement per line item, all inside the caller's transaction.
func (h PackUnitCommandHandler) dispatchOrder(ctx context.Context, uow UoW, orderID kernel.UUID) error {
	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = aggregate.MarkReadyToShip(); err != nil {
		return err
	}

	reference, err := product.NewReference(product.ReferenceOrder, orderID)
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

		movement, adjErr := prod.Adjust(-item.Quantity(), reference)
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

	return orderRepo.Update(ctx, aggregate)
}
