package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/pos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVoidTransactionCommandHandler_Handle_RevertsSettledOrders(t *testing.T) {
	ctx := t.Context()
	session := openSession(t)
	served := servedOrder(t)
	tx := pendingTransaction(t, session.ID(), served)
	require.NoError(t, tx.Capture(served.Total(), pos.PaymentCard, 0, now))
	require.NoError(t, served.Settle("cashier-1", now))

	cmd, err := commands.NewVoidTransactionCommand(tx.ID(), "cashier-1")
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	orderRepo := new(MockOrderRepository)
	txRepo := new(MockTransactionRepository)
	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TransactionRepository").Return(txRepo).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	txRepo.On("Get", mock.Anything, tx.ID()).Return(tx, nil).Once()
	sessionRepo.On("Get", mock.Anything, session.ID()).Return(session, nil).Once()
	orderRepo.On("Get", mock.Anything, served.ID()).Return(served, nil).Once()
	orderRepo.On("Update", mock.Anything, served).Return(nil).Once()
	txRepo.On("Update", mock.Anything, tx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVoidTransactionCommandHandler(factory, 3)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, pos.TransactionVoided, tx.Status())
	assert.Equal(t, order.Served, served.Status())
	uow.AssertExpectations(t)
}

func TestVoidTransactionCommandHandler_Handle_ClosedSessionRejected(t *testing.T) {
	ctx := t.Context()
	session := openSession(t)
	tx := pendingTransaction(t, session.ID(), servedOrder(t))
	require.NoError(t, session.Close(kernel.NewMoney(5000), kernel.NewMoney(5000), now))

	cmd, err := commands.NewVoidTransactionCommand(tx.ID(), "cashier-1")
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	txRepo := new(MockTransactionRepository)
	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TransactionRepository").Return(txRepo).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	txRepo.On("Get", mock.Anything, tx.ID()).Return(tx, nil).Once()
	sessionRepo.On("Get", mock.Anything, session.ID()).Return(session, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVoidTransactionCommandHandler(factory, 3)
	require.ErrorIs(t, h.Handle(ctx, cmd), pos.ErrSessionIsClosed)
	assert.Equal(t, pos.TransactionPending, tx.Status())
}

func TestVoidTransactionCommandHandler_Handle_PendingTransaction(t *testing.T) {
	ctx := t.Context()
	session := openSession(t)
	served := servedOrder(t)
	tx := pendingTransaction(t, session.ID(), served)

	cmd, err := commands.NewVoidTransactionCommand(tx.ID(), "cashier-1")
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	orderRepo := new(MockOrderRepository)
	txRepo := new(MockTransactionRepository)
	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TransactionRepository").Return(txRepo).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	txRepo.On("Get", mock.Anything, tx.ID()).Return(tx, nil).Once()
	sessionRepo.On("Get", mock.Anything, session.ID()).Return(session, nil).Once()
	txRepo.On("Update", mock.Anything, tx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVoidTransactionCommandHandler(factory, 3)
	require.NoError(t, h.Handle(ctx, cmd))

	// No capture happened, so the order never left served.
	assert.Equal(t, pos.TransactionVoided, tx.Status())
	assert.Equal(t, order.Served, served.Status())
	orderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
