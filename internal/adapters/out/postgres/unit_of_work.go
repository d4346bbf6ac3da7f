// Package postgres provides a GORM-based implementation of the Unit of Work
// pattern. The Unit of Work maintains a list of status changes produced by a
// business transaction and coordinates writing out changes and resolving
// concurrency problems.
//
// Key Features:
//   - Transaction management across multiple repositories
//   - Status-change tracking for post-commit event publishing
//   - Proper isolation between concurrent operations
//   - Repository factory pattern for consistent database connections
//
// Usage Patterns:
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	// Perform repository operations
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Multi-Repository Transactions:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	// All operations within same transaction
//	if err := uow.OrderRepository().Update(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	if err := uow.TicketRepository().Update(ctx, ticket); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Event Publishing:
//
// Repositories report every status change they persist back to the unit of
// work. On a successful commit the collected changes are handed to the
// event publisher. Publishing is best effort: a broker outage never fails
// the business transaction, it only logs.
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Writes are guarded by aggregate version predicates, so a lost race
//     surfaces as errs.VersionConflictError rather than a silent overwrite
package postgres

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/posrepo"
	"orderflow/internal/adapters/out/postgres/ticketrepo"
	"orderflow/internal/core/ports"

	"gorm.io/gorm"
)

const publishTimeout = 5 * time.Second

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Factory ensures each business operation gets a fresh unit of
// work instance with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The publisher receives status-change events after each
// successful commit.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger,
	}
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and change
// tracking, ensuring proper isolation between concurrent operations.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
		changes:   make([]ports.Event, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks status changes
// for business operations. Implements the Unit of Work pattern using GORM's
// transaction capabilities to ensure data consistency and proper rollback
// handling.
//
// Repositories created through the accessor methods are bound to the current
// transaction and report every persisted status change via TrackChange.
// After a successful commit those changes are forwarded to the event
// publisher.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
	changes   []ports.Event
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations execute within this transaction context.
// Multiple calls to Begin on the same instance are safe and will not create
// nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction and then
// publishes the tracked status changes. After commit the transaction is
// closed and cannot be reused.
//
// Publish failures are logged, never returned: the database is the source of
// truth and the event stream is advisory.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.tx.Commit().Error; err != nil {
		uow.tx = nil
		return err
	}
	uow.tx = nil

	uow.publishChanges(ctx)
	return nil
}

// Rollback discards all changes made within the current transaction along
// with any tracked status changes. After rollback the transaction is closed
// and cannot be reused.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.changes = uow.changes[:0]
	return err
}

// TrackChange records a status change persisted by one of the repositories.
// Tracked changes are published after a successful commit.
func (uow *GormUnitOfWork) TrackChange(event ports.Event) {
	uow.changes = append(uow.changes, event)
}

// OrderRepository provides access to order persistence operations within the
// unit of work. Operations execute within the current transaction if one is
// active, otherwise they use the main database connection.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TicketRepository provides access to kitchen ticket persistence operations
// within the unit of work.
func (uow *GormUnitOfWork) TicketRepository() ports.TicketRepository {
	return ticketrepo.NewGormTicketRepository(uow.conn(), uow)
}

// SessionRepository provides access to POS session persistence operations
// within the unit of work.
func (uow *GormUnitOfWork) SessionRepository() ports.SessionRepository {
	return posrepo.NewGormSessionRepository(uow.conn(), uow)
}

// TransactionRepository provides access to POS transaction persistence
// operations within the unit of work.
func (uow *GormUnitOfWork) TransactionRepository() ports.TransactionRepository {
	return posrepo.NewGormTransactionRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishChanges(ctx context.Context) {
	if uow.publisher == nil || len(uow.changes) == 0 {
		uow.changes = uow.changes[:0]
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	for _, event := range uow.changes {
		if err := uow.publisher.Publish(publishCtx, event); err != nil {
			uow.logger.Warn("failed to publish status change",
				"entity_type", event.EntityType,
				"entity_id", event.EntityID,
				"status", event.Status,
				"error", err)
		}
	}
	uow.changes = uow.changes[:0]
}
