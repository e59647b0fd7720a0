package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// CompletionNotifier receives fulfillment milestones after they are committed.
// Implementations hand the events to downstream systems (carrier handoff,
// dashboards); delivery guarantees beyond at-least-once are out of scope here.
type CompletionNotifier interface {
	// OrderReadyToShip is invoked after an order's stock has been decremented
	// and the order committed in ready_to_ship.
	OrderReadyToShip(ctx context.Context, orderID kernel.UUID)

	// SessionCompleted is invoked after a picking session commits in
	// completed with every member order fully packed.
	SessionCompleted(ctx context.Context, sessionID kernel.UUID)
}
