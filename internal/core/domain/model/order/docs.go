// Package order provides domain entities and business logic for order management
// in the fulfillment system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, and lifecycle
//   - LineItem: A value object binding a required quantity of one product to an order
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, tenant, and at least one line item
//   - Order status follows the fulfillment workflow:
//     Confirmed -> InPreparation -> ReadyToShip -> Shipped -> Delivered,
//     with Returned/DeliveryFailed branching off Shipped and Cancelled
//     reachable from any pre-shipped status
//   - The InPreparation -> ReadyToShip transition is the single point where
//     the inventory ledger is decremented for the order's line items
//   - Orders whose stock was already decremented cannot be deleted; they must
//     be cancelled first so compensating movements restore the stock
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
