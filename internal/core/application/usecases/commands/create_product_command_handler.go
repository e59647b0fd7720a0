package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/product"
)

// CreateProductCommandHandler handles the business logic for product creation.
// Registers new products with a zero stock counter.
type CreateProductCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewCreateProductCommandHandler creates a handler for product creation operations.
// Requires a StockUoWFactory for transactional persistence.
func NewCreateProductCommandHandler(uowFactory StockUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the product creation command.
// Uses a transaction to ensure the product is properly persisted or rolled back on error.
func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
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

	aggregate, err := product.NewProduct(cmd.ProductID(), cmd.TenantID(), cmd.Name(), cmd.UnitCost())
	if err != nil {
		return err
	}

	if err = uow.ProductRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
