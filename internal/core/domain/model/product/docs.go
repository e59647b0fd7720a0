// Package product provides domain entities for stocked items and the inventory
// ledger in the fulfillment system.
//
// The package includes:
//   - Product: The aggregate root owning the current-stock counter
//   - Movement: One immutable, append-only ledger row
//   - Reference: The business event a movement traces back to
//
// Key business rules:
//   - Current stock never goes negative; a decrement that would is rejected
//     with InsufficientStock and no movement is written
//   - Every counter change emits exactly one movement; counter and movement
//     are persisted atomically
//   - Reconciliation invariant: current stock always equals the sum of all
//     movement deltas recorded for the product
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package product
