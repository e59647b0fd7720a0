package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// CreatePickingSessionCommandHandler orchestrates opening a picking session.
// Loads the candidate orders, lets the SessionPlanner select the eligible
// subset and build the aggregated pick list, then persists the session and the
// order transitions in one transaction.
//
// Example:
//
//	handler := NewCreatePickingSessionCommandHandler(uowFactory)
//	cmd, _ := NewCreatePickingSessionCommand(sessionID, tenantID, orderIDs)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoEligibleOrders) {
//	    log.Println("Nothing to pick")
//	}
type CreatePickingSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewCreatePickingSessionCommandHandler creates a handler for session creation.
// Requires a SessionUoWFactory for coordinating session and order persistence.
func NewCreatePickingSessionCommandHandler(uowFactory SessionUoWFactory) CreatePickingSessionCommandHandler {
	return CreatePickingSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the session creation command.
// Member orders move to in_preparation in the same transaction that persists
// the session, so no order is ever claimed by two sessions.
func (h CreatePickingSessionCommandHandler) Handle(ctx context.Context, cmd CreatePickingSessionCommand) error {
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

	orderRepo := uow.OrderRepository()

	candidates, err := orderRepo.GetByIDs(ctx, cmd.OrderIDs())
	if err != nil {
		return err
	}

	aggregate, members, err := services.NewSessionPlanner().Plan(cmd.SessionID(), cmd.TenantID(), candidates)
	if err != nil {
		return err
	}

	if err = uow.SessionRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	for _, member := range members {
		if err = orderRepo.Update(ctx, member); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
