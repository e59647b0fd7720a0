package ports

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// StockControlStrategy names a scheme for mutating shared counters under
// concurrent access.
type StockControlStrategy string

const (
	// StrategyRowLock takes an exclusive row lock, re-reads the counter and
	// writes the new value while the lock is held. Concurrent workers queue;
	// no retries needed.
	StrategyRowLock StockControlStrategy = "row_lock"

	// StrategyAtomicUpdate pushes the bound check into a single conditional
	// UPDATE, so the database applies check and increment atomically.
	StrategyAtomicUpdate StockControlStrategy = "atomic_update"

	// StrategyOptimisticCAS reads the counter without a lock and writes it
	// back conditioned on the value not having changed. A lost race fails
	// with a concurrency conflict and is retried a bounded number of times.
	StrategyOptimisticCAS StockControlStrategy = "optimistic_cas"
)

// Validate checks that the strategy is one of the known schemes.
func (s StockControlStrategy) Validate() error {
	switch s {
	case StrategyRowLock, StrategyAtomicUpdate, StrategyOptimisticCAS:
		return nil
	default:
		return fmt.Errorf("unknown stock control strategy: %q", s)
	}
}

// StockControl applies bounded increments to the shared picking counters of a
// session. Implementations differ only in how they keep the counter from
// exceeding its bound under concurrent workers; every strategy guarantees the
// bound is never breached.
type StockControl interface {
	// Strategy reports which concurrency control scheme the instance uses.
	Strategy() StockControlStrategy

	// IncrementPicked adds delta to the picked counter of the session's pick
	// list row for productID without exceeding the row's quantity_needed.
	// Returns the new cumulative value.
	//
	// A bound violation fails with AlreadyFullyPicked. The optimistic
	// strategy additionally fails with a ConcurrencyConflictError when it
	// loses a race; callers retry those through the retry package.
	IncrementPicked(ctx context.Context, sessionID, productID kernel.UUID, delta int) (int, error)
}
