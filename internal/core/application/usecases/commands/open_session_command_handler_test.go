package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOpenSessionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewOpenSessionCommand(kernel.NewUUID(), "TERM-1", "cashier-1", kernel.NewMoney(5000))
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("GetOpenByTerminal", mock.Anything, "TERM-1").
			Return(nil, errs.NewObjectNotFoundError("terminalID", "TERM-1")).Once(),
		sessionRepo.On("Add", mock.Anything, mock.AnythingOfType("*pos.Session")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOpenSessionCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	sessionRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestOpenSessionCommandHandler_Handle_TerminalAlreadyOpen(t *testing.T) {
	ctx := t.Context()
	existing := openSession(t)
	cmd, err := commands.NewOpenSessionCommand(kernel.NewUUID(), "TERM-1", "cashier-2", kernel.NewMoney(0))
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	sessionRepo.On("GetOpenByTerminal", mock.Anything, "TERM-1").Return(existing, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOpenSessionCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), commands.ErrTerminalHasOpenSession)
	sessionRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
