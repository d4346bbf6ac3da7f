package commands_test

import (
	"context"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/core/domain/model/ticket"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, t *ticket.KitchenTicket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.KitchenTicket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.KitchenTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.KitchenTicket), args.Error(1)
}
func (m *MockTicketRepository) GetByNumber(ctx context.Context, number ticket.Number) (*ticket.KitchenTicket, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.KitchenTicket), args.Error(1)
}
func (m *MockTicketRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*ticket.KitchenTicket, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ticket.KitchenTicket), args.Error(1)
}
func (m *MockTicketRepository) GetAllActive(ctx context.Context) ([]*ticket.KitchenTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ticket.KitchenTicket), args.Error(1)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *pos.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSessionRepository) Update(ctx context.Context, s *pos.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSessionRepository) Get(ctx context.Context, id kernel.UUID) (*pos.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pos.Session), args.Error(1)
}
func (m *MockSessionRepository) GetOpenByTerminal(ctx context.Context, terminalID string) (*pos.Session, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pos.Session), args.Error(1)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Add(ctx context.Context, t *pos.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTransactionRepository) Update(ctx context.Context, t *pos.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*pos.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pos.Transaction), args.Error(1)
}
func (m *MockTransactionRepository) GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*pos.Transaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pos.Transaction), args.Error(1)
}
func (m *MockTransactionRepository) GetAllBySession(ctx context.Context, sessionID kernel.UUID) ([]*pos.Transaction, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pos.Transaction), args.Error(1)
}

type MockKitchenUoW struct{ mock.Mock }

func (m *MockKitchenUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockKitchenUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockKitchenUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockKitchenUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockKitchenUoW) TicketRepository() ports.TicketRepository {
	args := m.Called()
	return args.Get(0).(ports.TicketRepository)
}

type MockKitchenUoWFactory struct{ mock.Mock }

func (m *MockKitchenUoWFactory) Create() commands.KitchenUoW {
	args := m.Called()
	return args.Get(0).(commands.KitchenUoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSessionUoW struct{ mock.Mock }

func (m *MockSessionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSessionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSessionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSessionUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

type MockSessionUoWFactory struct{ mock.Mock }

func (m *MockSessionUoWFactory) Create() commands.SessionUoW {
	args := m.Called()
	return args.Get(0).(commands.SessionUoW)
}

type MockSettlementUoW struct{ mock.Mock }

func (m *MockSettlementUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSettlementUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSettlementUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSettlementUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockSettlementUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}
func (m *MockSettlementUoW) TransactionRepository() ports.TransactionRepository {
	args := m.Called()
	return args.Get(0).(ports.TransactionRepository)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

type MockCatalogClient struct{ mock.Mock }

func (m *MockCatalogClient) ResolveItem(ctx context.Context, catalogItemID kernel.UUID) (ports.CatalogItem, error) {
	args := m.Called(ctx, catalogItemID)
	return args.Get(0).(ports.CatalogItem), args.Error(1)
}

type MockIdempotencyGuard struct{ mock.Mock }

func (m *MockIdempotencyGuard) Check(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}
func (m *MockIdempotencyGuard) Store(ctx context.Context, key string, outcome []byte) error {
	args := m.Called(ctx, key, outcome)
	return args.Error(0)
}
