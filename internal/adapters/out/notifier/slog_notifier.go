// Package notifier provides the default CompletionNotifier implementation.
// Downstream systems (carrier handoff, billing) are expected to consume these
// events from the log pipeline; swapping in a message broker implementation
// only touches the composition root.
package notifier

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
)

// SlogNotifier emits completion events as structured log records.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{
		logger: logger.With("component", "completion_notifier"),
	}
}

// OrderReadyToShip reports that an order was fully packed and dispatched.
func (n *SlogNotifier) OrderReadyToShip(ctx context.Context, orderID kernel.UUID) {
	n.logger.InfoContext(ctx, "Order ready to ship", "order_id", orderID.String())
}

// SessionCompleted reports that a picking session finished all its orders.
func (n *SlogNotifier) SessionCompleted(ctx context.Context, sessionID kernel.UUID) {
	n.logger.InfoContext(ctx, "Picking session completed", "session_id", sessionID.String())
}
