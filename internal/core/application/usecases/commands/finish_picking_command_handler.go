package commands

import (
	"context"
	"errors"
)

// ErrPartialFulfillmentDisabled is returned when a shortfall acknowledgement
// arrives while the deployment's policy forbids partial fulfillment.
var ErrPartialFulfillmentDisabled = errors.New("partial fulfillment is disabled")

// FinishPickingCommandHandler closes the picking phase of a session.
//
// The transition is idempotent: a retried request against a session already in
// packing succeeds without changing anything, so pickers can safely resubmit
// after a timeout.
type FinishPickingCommandHandler struct {
	uowFactory              SessionUoWFactory
	allowPartialFulfillment bool
}

// NewFinishPickingCommandHandler creates a handler for finishing the picking
// phase. allowPartialFulfillment is the deployment-wide policy gate for
// shortfall acknowledgements.
func NewFinishPickingCommandHandler(
	uowFactory SessionUoWFactory, allowPartialFulfillment bool,
) FinishPickingCommandHandler {
	return FinishPickingCommandHandler{
		uowFactory:              uowFactory,
		allowPartialFulfillment: allowPartialFulfillment,
	}
}

// Handle processes the finish-picking command.
// An unacknowledged shortfall fails with PickingIncomplete listing the short
// products; an acknowledged one proceeds only when the policy permits it.
func (h FinishPickingCommandHandler) Handle(ctx context.Context, cmd FinishPickingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.AcknowledgeShortfall() && !h.allowPartialFulfillment {
		return ErrPartialFulfillmentDisabled
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

	if err = aggregate.FinishPicking(cmd.AcknowledgeShortfall()); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
