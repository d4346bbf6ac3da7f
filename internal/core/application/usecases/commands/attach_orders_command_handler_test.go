package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAttachOrdersCommandHandler_Handle_CreatesTransaction(t *testing.T) {
	ctx := t.Context()
	session := openSession(t)
	served := servedOrder(t)
	txID := kernel.NewUUID()

	cmd, err := commands.NewAttachOrdersCommand(txID, session.ID(), []kernel.UUID{served.ID()})
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	orderRepo := new(MockOrderRepository)
	txRepo := new(MockTransactionRepository)
	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	uow.On("TransactionRepository").Return(txRepo)
	uow.On("OrderRepository").Return(orderRepo).Once()
	sessionRepo.On("Get", mock.Anything, session.ID()).Return(session, nil).Once()
	txRepo.On("Get", mock.Anything, txID).Return(nil, errs.NewObjectNotFoundError("transactionID", txID)).Once()
	orderRepo.On("Get", mock.Anything, served.ID()).Return(served, nil).Once()
	txRepo.On("GetActiveByOrder", mock.Anything, served.ID()).
		Return(nil, errs.NewObjectNotFoundError("orderID", served.ID())).Once()
	txRepo.On("Add", mock.Anything, mock.AnythingOfType("*pos.Transaction")).
		Run(func(args mock.Arguments) {
			tx := args.Get(1).(*pos.Transaction)
			assert.True(t, tx.Total().IsEqual(served.Total()))
			assert.Len(t, tx.OrderIDs(), 1)
		}).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttachOrdersCommandHandler(factory, 3)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
	txRepo.AssertExpectations(t)
}

func TestAttachOrdersCommandHandler_Handle_AlreadySettled(t *testing.T) {
	ctx := t.Context()
	session := openSession(t)
	served := servedOrder(t)
	other := pendingTransaction(t, session.ID(), served)
	txID := kernel.NewUUID()

	cmd, err := commands.NewAttachOrdersCommand(txID, session.ID(), []kernel.UUID{served.ID()})
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	orderRepo := new(MockOrderRepository)
	txRepo := new(MockTransactionRepository)
	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	uow.On("TransactionRepository").Return(txRepo)
	uow.On("OrderRepository").Return(orderRepo).Once()
	sessionRepo.On("Get", mock.Anything, session.ID()).Return(session, nil).Once()
	txRepo.On("Get", mock.Anything, txID).Return(nil, errs.NewObjectNotFoundError("transactionID", txID)).Once()
	orderRepo.On("Get", mock.Anything, served.ID()).Return(served, nil).Once()
	txRepo.On("GetActiveByOrder", mock.Anything, served.ID()).Return(other, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttachOrdersCommandHandler(factory, 3)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrAlreadySettled)
	txRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestAttachOrdersCommandHandler_Handle_ClosedSession(t *testing.T) {
	ctx := t.Context()
	session := openSession(t)
	require.NoError(t, session.Close(kernel.NewMoney(5000), kernel.NewMoney(5000), now))

	cmd, err := commands.NewAttachOrdersCommand(kernel.NewUUID(), session.ID(), []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	sessionRepo.On("Get", mock.Anything, session.ID()).Return(session, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttachOrdersCommandHandler(factory, 3)
	require.ErrorIs(t, h.Handle(ctx, cmd), pos.ErrSessionIsClosed)
}

func TestAttachOrdersCommandHandler_Handle_OrderNotServed(t *testing.T) {
	ctx := t.Context()
	session := openSession(t)
	notServed, _ := confirmedOrderWithTickets(t, "GRILL")
	txID := kernel.NewUUID()

	cmd, err := commands.NewAttachOrdersCommand(txID, session.ID(), []kernel.UUID{notServed.ID()})
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	orderRepo := new(MockOrderRepository)
	txRepo := new(MockTransactionRepository)
	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	uow.On("TransactionRepository").Return(txRepo)
	uow.On("OrderRepository").Return(orderRepo).Once()
	sessionRepo.On("Get", mock.Anything, session.ID()).Return(session, nil).Once()
	txRepo.On("Get", mock.Anything, txID).Return(nil, errs.NewObjectNotFoundError("transactionID", txID)).Once()
	orderRepo.On("Get", mock.Anything, notServed.ID()).Return(notServed, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttachOrdersCommandHandler(factory, 3)
	require.ErrorIs(t, h.Handle(ctx, cmd), commands.ErrOrderNotServed)
}
