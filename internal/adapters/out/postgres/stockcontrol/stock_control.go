// Package stockcontrol implements the bounded picking counter behind the
// three concurrency strategies. All strategies enforce the same invariant,
// quantity_picked never exceeds quantity_needed, and differ only in how they
// serialize concurrent increments against the same pick list row.
package stockcontrol

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/sessionrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockControl implements ports.StockControl on picking_progress rows.
// Every call runs in its own short transaction independent of the caller's
// unit of work, so a conflicting retry never re-executes unrelated writes.
type GormStockControl struct {
	db       *gorm.DB
	strategy ports.StockControlStrategy
}

// NewGormStockControl creates a stock control for the given strategy.
func NewGormStockControl(db *gorm.DB, strategy ports.StockControlStrategy) (*GormStockControl, error) {
	if err := strategy.Validate(); err != nil {
		return nil, err
	}
	return &GormStockControl{db: db, strategy: strategy}, nil
}

// Strategy returns the configured concurrency strategy.
func (c *GormStockControl) Strategy() ports.StockControlStrategy {
	return c.strategy
}

// IncrementPicked adds delta to the picked counter of one pick list row and
// returns the new value. The increment is rejected with ErrAlreadyFullyPicked
// when it would push the counter past quantity_needed, and with
// ErrPickingClosed when the session has already left the picking phase; under
// the optimistic strategy a lost race surfaces as a ConcurrencyConflictError
// instead, which the caller is expected to retry.
func (c *GormStockControl) IncrementPicked(ctx context.Context, sessionID, productID kernel.UUID, delta int) (int, error) {
	if err := sessionID.Validate(); err != nil {
		return 0, err
	}
	if err := productID.Validate(); err != nil {
		return 0, err
	}
	if delta <= 0 {
		return 0, errs.NewValueIsInvalidError("delta")
	}

	switch c.strategy {
	case ports.StrategyRowLock:
		return c.incrementWithRowLock(ctx, sessionID, productID, delta)
	case ports.StrategyAtomicUpdate:
		return c.incrementWithAtomicUpdate(ctx, sessionID, productID, delta)
	case ports.StrategyOptimisticCAS:
		return c.incrementWithCAS(ctx, sessionID, productID, delta)
	default:
		return 0, errs.NewValueIsInvalidError("strategy")
	}
}

// incrementWithRowLock takes an exclusive lock on the pick list row, checks
// the bound, and writes the new value. Concurrent pickers of the same product
// queue on the lock.
func (c *GormStockControl) incrementWithRowLock(ctx context.Context, sessionID, productID kernel.UUID, delta int) (int, error) {
	var picked int

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePickingPhase(tx, sessionID); err != nil {
			return err
		}

		var row sessionrepo.PickingProgressDTO
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "session_id = ? AND product_id = ?", sessionID.Bytes(), productID.Bytes()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("pickListRow", productID.String())
			}
			return err
		}

		if row.QuantityPicked+delta > row.QuantityNeeded {
			return fmt.Errorf("%w: product %s needs %d, have %d",
				errs.ErrAlreadyFullyPicked, productID.String(), row.QuantityNeeded, row.QuantityPicked)
		}

		picked = row.QuantityPicked + delta
		return tx.Model(&sessionrepo.PickingProgressDTO{}).
			Where("session_id = ? AND product_id = ?", sessionID.Bytes(), productID.Bytes()).
			Update("quantity_picked", picked).Error
	})
	if err != nil {
		return 0, err
	}

	return picked, nil
}

// incrementWithAtomicUpdate folds the bound and phase checks into the UPDATE
// predicate so the database applies check and increment atomically in one
// statement.
func (c *GormStockControl) incrementWithAtomicUpdate(ctx context.Context, sessionID, productID kernel.UUID, delta int) (int, error) {
	var picked int

	result := c.db.WithContext(ctx).Raw(
		`UPDATE picking_progress
		    SET quantity_picked = quantity_picked + ?
		  WHERE session_id = ? AND product_id = ?
		    AND quantity_picked + ? <= quantity_needed
		    AND EXISTS (SELECT 1 FROM picking_sessions s
		                 WHERE s.id = picking_progress.session_id AND s.status = ?)
		RETURNING quantity_picked`,
		delta, sessionID.Bytes(), productID.Bytes(), delta, int(session.Picking),
	).Scan(&picked)
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		// The predicate hides whether the row is missing, the session has
		// left picking, or the counter is full; one extra read tells them
		// apart.
		var row struct {
			QuantityNeeded int
			QuantityPicked int
			Status         int
		}
		diag := c.db.WithContext(ctx).Raw(
			`SELECT p.quantity_needed, p.quantity_picked, s.status
			   FROM picking_progress p
			   JOIN picking_sessions s ON s.id = p.session_id
			  WHERE p.session_id = ? AND p.product_id = ?`,
			sessionID.Bytes(), productID.Bytes(),
		).Scan(&row)
		if diag.Error != nil {
			return 0, diag.Error
		}
		if diag.RowsAffected == 0 {
			return 0, errs.NewObjectNotFoundError("pickListRow", productID.String())
		}
		if row.Status != int(session.Picking) {
			return 0, fmt.Errorf("%w: session %s", errs.ErrPickingClosed, sessionID.String())
		}
		return 0, fmt.Errorf("%w: product %s needs %d, have %d",
			errs.ErrAlreadyFullyPicked, productID.String(), row.QuantityNeeded, row.QuantityPicked)
	}

	return picked, nil
}

// incrementWithCAS reads the row without a lock, checks the bound, and
// updates only if the counter still holds the value it read. A lost race
// returns a ConcurrencyConflictError for the caller's retry loop.
func (c *GormStockControl) incrementWithCAS(ctx context.Context, sessionID, productID kernel.UUID, delta int) (int, error) {
	var row sessionrepo.PickingProgressDTO
	if err := c.db.WithContext(ctx).
		First(&row, "session_id = ? AND product_id = ?", sessionID.Bytes(), productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("pickListRow", productID.String())
		}
		return 0, err
	}

	if row.QuantityPicked+delta > row.QuantityNeeded {
		return 0, fmt.Errorf("%w: product %s needs %d, have %d",
			errs.ErrAlreadyFullyPicked, productID.String(), row.QuantityNeeded, row.QuantityPicked)
	}

	if err := ensurePickingPhase(c.db.WithContext(ctx), sessionID); err != nil {
		return 0, err
	}

	// The conditional write re-checks the phase; a transition that lands
	// between the read above and this statement shows up as zero rows and is
	// re-classified on the caller's retry.
	result := c.db.WithContext(ctx).Model(&sessionrepo.PickingProgressDTO{}).
		Where("session_id = ? AND product_id = ? AND quantity_picked = ?"+
			" AND EXISTS (SELECT 1 FROM picking_sessions s"+
			" WHERE s.id = picking_progress.session_id AND s.status = ?)",
			sessionID.Bytes(), productID.Bytes(), row.QuantityPicked, int(session.Picking)).
		Update("quantity_picked", row.QuantityPicked+delta)
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, errs.NewConcurrencyConflictError("picking_progress")
	}

	return row.QuantityPicked + delta, nil
}

// ensurePickingPhase verifies the session is still in the picking phase.
// Inside a transaction the share lock makes a concurrent phase transition,
// which updates the session row under an exclusive lock, wait for the
// increment to finish; outside one it is a plain read.
func ensurePickingPhase(tx *gorm.DB, sessionID kernel.UUID) error {
	var status int
	result := tx.Raw(
		`SELECT status FROM picking_sessions WHERE id = ? FOR SHARE`,
		sessionID.Bytes(),
	).Scan(&status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("session", sessionID.String())
	}
	if status != int(session.Picking) {
		return fmt.Errorf("%w: session %s", errs.ErrPickingClosed, sessionID.String())
	}
	return nil
}
