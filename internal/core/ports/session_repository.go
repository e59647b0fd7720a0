package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for picking session
// aggregates, including their pick list and packing allocation rows.
type SessionRepository interface {
	// Add persists a new session aggregate with all its progress rows.
	Add(ctx context.Context, aggregate *session.PickingSession) error

	// Update persists changes to an existing session aggregate: its status
	// and the current values of every progress counter.
	Update(ctx context.Context, aggregate *session.PickingSession) error

	// Get retrieves a session aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*session.PickingSession, error)

	// GetForUpdate retrieves a session aggregate and takes an exclusive row
	// lock on its session row for the duration of the surrounding
	// transaction. Phase transitions and packing allocations load the
	// session through this method.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*session.PickingSession, error)

	// GetAllActive retrieves every session still in the picking or packing
	// phase, oldest first.
	GetAllActive(ctx context.Context) ([]*session.PickingSession, error)
}
