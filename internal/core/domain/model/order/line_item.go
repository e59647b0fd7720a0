package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LineItem is a value object binding a required quantity of one product to an
// order. Line items are fixed by order intake and never mutated by this core
// once the order is inside a session.
type LineItem struct {
	productID kernel.UUID
	quantity  int
}

// NewLineItem creates a LineItem with validation.
// Quantity must be positive.
func NewLineItem(productID kernel.UUID, quantity int) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return LineItem{productID: productID, quantity: quantity}, nil
}

// ProductID returns the product this line item requires.
func (li LineItem) ProductID() kernel.UUID {
	return li.productID
}

// Quantity returns the required number of units.
func (li LineItem) Quantity() int {
	return li.quantity
}
