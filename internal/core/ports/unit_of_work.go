package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes so that
// status-change events can be published after a successful commit.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and hands tracked aggregates
	// to the event publisher.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// TicketRepository returns a TicketRepository bound to the current transaction.
	TicketRepository() TicketRepository

	// SessionRepository returns a SessionRepository bound to the current transaction.
	SessionRepository() SessionRepository

	// TransactionRepository returns a TransactionRepository bound to the current transaction.
	TransactionRepository() TransactionRepository
}
