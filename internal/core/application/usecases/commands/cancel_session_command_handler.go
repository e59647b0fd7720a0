package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CancelSessionCommandHandler abandons a picking session.
//
// Member orders still in preparation return to confirmed so a later session
// can claim them. Orders that already reached ready_to_ship keep their status
// and their ledger movements; cancelling the session does not undo dispatched
// work.
type CancelSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewCancelSessionCommandHandler creates a handler for session cancellation.
func NewCancelSessionCommandHandler(uowFactory SessionUoWFactory) CancelSessionCommandHandler {
	return CancelSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the session cancellation command.
func (h CancelSessionCommandHandler) Handle(ctx context.Context, cmd CancelSessionCommand) error {
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

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, orderID := range aggregate.OrderIDs() {
		member, getErr := orderRepo.Get(ctx, orderID)
		if getErr != nil {
			return getErr
		}

		if member.Status() != order.InPreparation {
			continue
		}

		if relErr := member.Release(); relErr != nil {
			return relErr
		}

		if updErr := orderRepo.Update(ctx, member); updErr != nil {
			return updErr
		}
	}

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
