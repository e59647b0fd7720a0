package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/retry"
)

// ErrSessionIsNotPicking is returned when units are recorded against a
// session that has already left the picking phase.
var ErrSessionIsNotPicking = errors.New("session is not in the picking phase")

// RecordPickedCommandHandler records picked units against the session's
// shared pick list counters.
//
// The counter mutation goes through the stock-control layer rather than the
// loaded aggregate: many pickers hit the same (session, product) row
// concurrently, and the configured strategy decides how their increments are
// serialized. With the optimistic strategy a lost race is retried here, a
// bounded number of times; every other error kind is surfaced as is.
type RecordPickedCommandHandler struct {
	uowFactory   SessionUoWFactory
	stockControl ports.StockControl
	maxAttempts  uint64
}

// NewRecordPickedCommandHandler creates a handler for recording picked units.
// maxAttempts bounds the retries of conflicting optimistic increments.
func NewRecordPickedCommandHandler(
	uowFactory SessionUoWFactory, stockControl ports.StockControl, maxAttempts uint64,
) RecordPickedCommandHandler {
	return RecordPickedCommandHandler{
		uowFactory:   uowFactory,
		stockControl: stockControl,
		maxAttempts:  maxAttempts,
	}
}

// Handle processes the command and returns the product's new cumulative
// picked quantity, so callers need no second, racy read.
//
// Fails with AlreadyFullyPicked once the aggregated need is reached; the
// counter is never left above its bound regardless of how many workers race.
func (h RecordPickedCommandHandler) Handle(ctx context.Context, cmd RecordPickedCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	if err := h.ensurePicking(ctx, cmd); err != nil {
		return 0, err
	}

	var newValue int
	err := retry.OnConflict(ctx, h.maxAttempts, func() error {
		value, incErr := h.stockControl.IncrementPicked(ctx, cmd.SessionID(), cmd.ProductID(), cmd.Quantity())
		if incErr != nil {
			return incErr
		}
		newValue = value
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newValue, nil
}

// ensurePicking rejects recording against a session that is no longer
// picking, with a message naming the actual phase. The stock-control layer
// re-checks the phase inside its own transaction, so a transition that lands
// after this read still cannot let an increment through.
func (h RecordPickedCommandHandler) ensurePicking(ctx context.Context, cmd RecordPickedCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.SessionRepository().Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if aggregate.Status() != session.Picking {
		return fmt.Errorf("%w: session is %s", ErrSessionIsNotPicking, aggregate.Status())
	}

	return uow.Commit(ctx)
}
