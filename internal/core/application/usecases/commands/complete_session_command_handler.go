package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/core/ports"
)

// CompleteSessionCommandHandler closes a packing session.
//
// Completion is idempotent; retrying against an already completed session
// succeeds without firing the completion hook a second time.
type CompleteSessionCommandHandler struct {
	uowFactory SessionUoWFactory
	notifier   ports.CompletionNotifier
}

// NewCompleteSessionCommandHandler creates a handler for session completion.
// The notifier is invoked after commit when the session transitions.
func NewCompleteSessionCommandHandler(
	uowFactory SessionUoWFactory, notifier ports.CompletionNotifier,
) CompleteSessionCommandHandler {
	return CompleteSessionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the session completion command.
// Fails with IncompleteOrders naming every under-packed (order, product) pair
// while any member order is still short.
func (h CompleteSessionCommandHandler) Handle(ctx context.Context, cmd CompleteSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	aggregate, err := sessionRepo.GetForUpdate(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	alreadyCompleted := aggregate.Status() == session.Completed

	if err = aggregate.Complete(); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !alreadyCompleted {
		h.notifier.SessionCompleted(ctx, cmd.SessionID())
	}

	return nil
}
