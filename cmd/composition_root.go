package cmd

import (
	"log/slog"
	"time"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/catalogrepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    ports.CatalogClient
	guard      ports.IdempotencyGuard
	logger     *slog.Logger
}

// NewCompositionRoot assembles the object graph from already-connected
// infrastructure clients.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	guard ports.IdempotencyGuard,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		catalog:    catalogrepo.NewGormCatalogClient(gormDB),
		guard:      guard,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) kitchenUoWFactory() commands.KitchenUoWFactory {
	return FuncKitchenUoWFactory(func() commands.KitchenUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) settlementUoWFactory() commands.SettlementUoWFactory {
	return FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(
		c.kitchenUoWFactory(), c.catalog, c.guard, c.config.MaxWriteAttempts)
}

func (c *CompositionRoot) CreateAmendOrderCommandHandler() commands.AmendOrderCommandHandler {
	return commands.NewAmendOrderCommandHandler(
		c.kitchenUoWFactory(), c.catalog, c.config.MaxWriteAttempts)
}

func (c *CompositionRoot) CreateServeOrderCommandHandler() commands.ServeOrderCommandHandler {
	return commands.NewServeOrderCommandHandler(c.orderUoWFactory(), c.config.MaxWriteAttempts)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.kitchenUoWFactory(), c.config.MaxWriteAttempts)
}

func (c *CompositionRoot) CreateReportTicketProgressCommandHandler() commands.ReportTicketProgressCommandHandler {
	return commands.NewReportTicketProgressCommandHandler(
		c.kitchenUoWFactory(), c.config.MaxWriteAttempts)
}

func (c *CompositionRoot) CreateOpenSessionCommandHandler() commands.OpenSessionCommandHandler {
	return commands.NewOpenSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateCloseSessionCommandHandler() commands.CloseSessionCommandHandler {
	return commands.NewCloseSessionCommandHandler(
		c.settlementUoWFactory(), c.config.MaxWriteAttempts)
}

func (c *CompositionRoot) CreateAttachOrdersCommandHandler() commands.AttachOrdersCommandHandler {
	return commands.NewAttachOrdersCommandHandler(
		c.settlementUoWFactory(), c.config.MaxWriteAttempts)
}

func (c *CompositionRoot) CreateCaptureTransactionCommandHandler() commands.CaptureTransactionCommandHandler {
	return commands.NewCaptureTransactionCommandHandler(
		c.settlementUoWFactory(), c.guard,
		c.config.CashToleranceMinorUnits, c.config.MaxWriteAttempts)
}

func (c *CompositionRoot) CreateVoidTransactionCommandHandler() commands.VoidTransactionCommandHandler {
	return commands.NewVoidTransactionCommandHandler(
		c.settlementUoWFactory(), c.config.MaxWriteAttempts)
}

func (c *CompositionRoot) CreateGetKitchenBoardQueryHandler() queries.GetKitchenBoardQueryHandler {
	return queries.NewGetKitchenBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTrackerQueryHandler() queries.GetOrderTrackerQueryHandler {
	return queries.NewGetOrderTrackerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenSessionQueryHandler() queries.GetOpenSessionQueryHandler {
	return queries.NewGetOpenSessionQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager(draftMaxAge time.Duration) *jobs.JobManager {
	return jobs.NewJobManager(
		c.kitchenUoWFactory(),
		c.CreateCancelOrderCommandHandler(),
		draftMaxAge,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncKitchenUoWFactory func() commands.KitchenUoW

func (f FuncKitchenUoWFactory) Create() commands.KitchenUoW {
	return f()
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}
