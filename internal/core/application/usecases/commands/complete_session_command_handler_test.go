package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// buildPackedSession returns a session in the packing phase with every unit
// of its single order already allocated.
func buildPackedSession(t *testing.T, productID kernel.UUID, quantity int) *session.PickingSession {
	t.Helper()
	s, o := buildPackingSession(t, productID, quantity)
	for i := 0; i < quantity; i++ {
		_, err := s.PackUnit(o.ID(), productID)
		require.NoError(t, err)
	}
	return s
}

func TestCompleteSessionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	s := buildPackedSession(t, productID, 2)
	cmd, err := commands.NewCompleteSessionCommand(s.ID())
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once(),
		sessionRepo.On("Update", ctx, s).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockCompletionNotifier)
	notifier.On("SessionCompleted", ctx, s.ID()).Once()

	h := commands.NewCompleteSessionCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, session.Completed, s.Status())
	sessionRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCompleteSessionCommandHandler_Handle_IncompleteOrders(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	s, o := buildPackingSession(t, productID, 3)
	_, err := s.PackUnit(o.ID(), productID)
	require.NoError(t, err)

	cmd, err := commands.NewCompleteSessionCommand(s.ID())
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	sessionRepo.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockCompletionNotifier)

	h := commands.NewCompleteSessionCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIncompleteOrders)
	require.ErrorIs(t, err, errs.ErrIntegrityViolation)
	assert.Equal(t, session.Packing, s.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "SessionCompleted", mock.Anything, mock.Anything)
}

func TestCompleteSessionCommandHandler_Handle_IdempotentRetry(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	s := buildPackedSession(t, productID, 1)
	require.NoError(t, s.Complete())

	cmd, err := commands.NewCompleteSessionCommand(s.ID())
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once(),
		sessionRepo.On("Update", ctx, s).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	// The session was already completed; the retry must not re-notify
	notifier := new(MockCompletionNotifier)

	h := commands.NewCompleteSessionCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, session.Completed, s.Status())
	notifier.AssertNotCalled(t, "SessionCompleted", mock.Anything, mock.Anything)
}

func TestCompleteSessionCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockSessionUoWFactory)
	notifier := new(MockCompletionNotifier)
	h := commands.NewCompleteSessionCommandHandler(factory, notifier)

	err := h.Handle(t.Context(), commands.CompleteSessionCommand{})
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
