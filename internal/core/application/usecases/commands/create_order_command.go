package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLineItemsAreRequired = errors.New("at least one line item is required")
)

// LineItemInput carries one (product, quantity) pair of a new order.
type LineItemInput struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a request to register a confirmed order.
// Orders enter the system already confirmed; intake flows upstream of this
// service have validated payment and customer data.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(orderID, tenantID, []LineItemInput{
//	    {ProductID: productID, Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	tenantID  kernel.UUID
	lineItems []order.LineItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a confirmed order.
// Validates both identifiers and every line item (known product ID, positive
// quantity). Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID, tenantID kernel.UUID, items []LineItemInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenantID(tenantID),
		cmd.setLineItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TenantID returns the tenant the order belongs to.
func (c CreateOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// LineItems returns the validated line items.
func (c CreateOrderCommand) LineItems() []order.LineItem {
	items := make([]order.LineItem, len(c.lineItems))
	copy(items, c.lineItems)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setLineItems(items []LineItemInput) error {
	if len(items) == 0 {
		return ErrLineItemsAreRequired
	}

	lineItems := make([]order.LineItem, 0, len(items))
	for _, item := range items {
		lineItem, err := order.NewLineItem(item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		lineItems = append(lineItems, lineItem)
	}

	c.lineItems = lineItems
	return nil
}
