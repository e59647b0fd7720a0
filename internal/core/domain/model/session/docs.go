// Package session provides the PickingSession aggregate for batch fulfillment
// in the warehouse.
//
// The package includes:
//   - PickingSession: The aggregate root grouping orders into one pick batch
//   - PickingProgress: One aggregated pick list row per distinct product
//   - PackingProgress: One allocation row per (member order, product)
//   - Status: A state machine over Picking -> Packing -> Completed, with
//     Cancelled reachable from the two active phases
//
// Key business rules:
//   - The pick list aggregates required quantities across all member orders
//   - Picked quantities never exceed the aggregated need; packed quantities
//     never exceed an order's own need nor the picked basket remainder
//   - The basket (picked minus packed units) is shared only among the
//     session's own member orders: a physical unit is allocated exactly once
//   - Finishing picking requires a satisfied pick list or an explicitly
//     acknowledged shortfall; the transition is idempotent
//   - Completing requires every member order fully packed
//
// The progress rows are shared mutable counters: persistent increments must
// go through the stock-control layer, never ad-hoc read-modify-write.
package session
