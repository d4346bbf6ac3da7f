package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCaptureTransactionCommandHandler_Handle_SettlesOrders(t *testing.T) {
	ctx := t.Context()
	session := openSession(t)
	served := servedOrder(t)
	tx := pendingTransaction(t, session.ID(), served)

	cmd, err := commands.NewCaptureTransactionCommand(tx.ID(), served.Total(), pos.PaymentCard, "cashier-1", "capture-1")
	require.NoError(t, err)

	idem := new(MockIdempotencyGuard)
	idem.On("Check", mock.Anything, "capture-1").Return(nil, false, nil).Once()
	idem.On("Store", mock.Anything, "capture-1", mock.Anything).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	txRepo := new(MockTransactionRepository)
	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TransactionRepository").Return(txRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	txRepo.On("Get", mock.Anything, tx.ID()).Return(tx, nil).Once()
	orderRepo.On("Get", mock.Anything, served.ID()).Return(served, nil).Once()
	orderRepo.On("Update", mock.Anything, served).Return(nil).Once()
	txRepo.On("Update", mock.Anything, tx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCaptureTransactionCommandHandler(factory, idem, 0, 3)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, pos.TransactionCaptured, tx.Status())
	assert.Equal(t, order.Settled, served.Status())
	idem.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCaptureTransactionCommandHandler_Handle_AmountMismatch(t *testing.T) {
	ctx := t.Context()
	session := openSession(t)
	served := servedOrder(t)
	tx := pendingTransaction(t, session.ID(), served)

	// One minor unit short of the total, tolerance zero.
	short := kernel.NewMoney(served.Total().Amount() - 1)
	cmd, err := commands.NewCaptureTransactionCommand(tx.ID(), short, pos.PaymentCash, "cashier-1", "")
	require.NoError(t, err)

	txRepo := new(MockTransactionRepository)
	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TransactionRepository").Return(txRepo).Once()
	txRepo.On("Get", mock.Anything, tx.ID()).Return(tx, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	idem := new(MockIdempotencyGuard)

	h := commands.NewCaptureTransactionCommandHandler(factory, idem, 0, 3)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrAmountMismatch)

	assert.Equal(t, pos.TransactionPending, tx.Status())
	assert.Equal(t, order.Served, served.Status())
	idem.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
}

func TestCaptureTransactionCommandHandler_Handle_Replay(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCaptureTransactionCommand(
		kernel.NewUUID(), kernel.NewMoney(1000), pos.PaymentCash, "cashier-1", "capture-1")
	require.NoError(t, err)

	idem := new(MockIdempotencyGuard)
	idem.On("Check", mock.Anything, "capture-1").Return([]byte(`{}`), true, nil).Once()

	factory := new(MockSettlementUoWFactory)

	h := commands.NewCaptureTransactionCommandHandler(factory, idem, 0, 3)
	require.NoError(t, h.Handle(ctx, cmd))
	factory.AssertNotCalled(t, "Create")
}

func TestCaptureTransactionCommandHandler_Handle_ToleranceCoversRounding(t *testing.T) {
	ctx := t.Context()
	session := openSession(t)
	served := servedOrder(t)
	tx := pendingTransaction(t, session.ID(), served)

	short := kernel.NewMoney(served.Total().Amount() - 1)
	cmd, err := commands.NewCaptureTransactionCommand(tx.ID(), short, pos.PaymentCash, "cashier-1", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	txRepo := new(MockTransactionRepository)
	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TransactionRepository").Return(txRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	txRepo.On("Get", mock.Anything, tx.ID()).Return(tx, nil).Once()
	orderRepo.On("Get", mock.Anything, served.ID()).Return(served, nil).Once()
	orderRepo.On("Update", mock.Anything, served).Return(nil).Once()
	txRepo.On("Update", mock.Anything, tx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	idem := new(MockIdempotencyGuard)

	h := commands.NewCaptureTransactionCommandHandler(factory, idem, 1, 3)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, pos.TransactionCaptured, tx.Status())
}
