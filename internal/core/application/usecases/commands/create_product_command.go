package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateProductCommandIsNotConstructed = errors.New(
		"CreateProductCommand must be created via NewCreateProductCommand constructor",
	)
	ErrProductNameIsRequired = errors.New("product name is required")
	ErrUnitCostIsInvalid     = errors.New("unit cost must not be negative")
)

// CreateProductCommand represents a request to register a new product in the
// catalog. The product starts with zero stock; initial stock enters through a
// stock adjustment so the ledger carries the full history.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	tenantID  kernel.UUID
	name      string
	unitCost  int

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to register a new product.
// Validates that both identifiers are valid, the name is not empty, and the
// unit cost is not negative.
func NewCreateProductCommand(
	productID, tenantID kernel.UUID, name string, unitCost int,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setTenantID(tenantID),
		cmd.setName(name),
		cmd.setUnitCost(unitCost),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// ProductID returns the unique identifier for the product.
func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// TenantID returns the tenant the product belongs to.
func (c CreateProductCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// Name returns the product's display name.
func (c CreateProductCommand) Name() string {
	return c.name
}

// UnitCost returns the unit cost in cents.
func (c CreateProductCommand) UnitCost() int {
	return c.unitCost
}

func (c *CreateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CreateProductCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateProductCommand) setName(name string) error {
	if name == "" {
		return ErrProductNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateProductCommand) setUnitCost(unitCost int) error {
	if unitCost < 0 {
		return ErrUnitCostIsInvalid
	}

	c.unitCost = unitCost
	return nil
}
