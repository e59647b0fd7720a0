package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order registration.
// Verifies every referenced product exists before creating the order in
// confirmed status.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order registration operations.
// Requires a UoWFactory because the handler reads products and writes orders.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order registration command.
// Fails with ObjectNotFound when a line item references an unknown product.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	lineItems := cmd.LineItems()
	productIDs := make([]kernel.UUID, 0, len(lineItems))
	for _, item := range lineItems {
		productIDs = append(productIDs, item.ProductID())
	}

	if _, err := uow.ProductRepository().GetByIDs(ctx, productIDs); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.TenantID(), lineItems)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
