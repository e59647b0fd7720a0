package commands

import (
	"context"
	"time"
)

// CancelStaleSessionsCommandHandler finds active sessions past the
// abandonment window and cancels each through the regular cancellation path,
// one transaction per session. A failure on one session does not stop the
// sweep; the first error is reported after the rest were attempted.
type CancelStaleSessionsCommandHandler struct {
	uowFactory    SessionUoWFactory
	cancelHandler CancelSessionCommandHandler
}

// NewCancelStaleSessionsCommandHandler creates a handler for the stale
// session sweep.
func NewCancelStaleSessionsCommandHandler(
	uowFactory SessionUoWFactory,
	cancelHandler CancelSessionCommandHandler,
) CancelStaleSessionsCommandHandler {
	return CancelStaleSessionsCommandHandler{
		uowFactory:    uowFactory,
		cancelHandler: cancelHandler,
	}
}

// Handle processes the sweep and returns how many sessions were cancelled.
func (h CancelStaleSessionsCommandHandler) Handle(ctx context.Context, cmd CancelStaleSessionsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	sessions, err := uow.SessionRepository().GetAllActive(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-cmd.MaxIdle())

	var cancelled int
	var firstErr error
	for _, aggregate := range sessions {
		if !aggregate.CreatedAt().Before(cutoff) {
			continue
		}

		cancelCmd, cmdErr := NewCancelSessionCommand(aggregate.ID())
		if cmdErr != nil {
			if firstErr == nil {
				firstErr = cmdErr
			}
			continue
		}

		if handleErr := h.cancelHandler.Handle(ctx, cancelCmd); handleErr != nil {
			if firstErr == nil {
				firstErr = handleErr
			}
			continue
		}

		cancelled++
	}

	return cancelled, firstErr
}
