// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence, with a bounded retry loop around sections that race on
// aggregate versions.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TicketRepoFactory provides access to the ticket repository within a transaction.
	TicketRepoFactory interface {
		TicketRepository() ports.TicketRepository
	}

	// SessionRepoFactory provides access to the session repository within a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// TransactionRepoFactory provides access to the POS transaction repository
	// within a transaction.
	TransactionRepoFactory interface {
		TransactionRepository() ports.TransactionRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// KitchenUoW manages transactions spanning orders and their kitchen
	// tickets. Used by confirmation, amendment, progress reporting and
	// cancellation, all of which must keep the two aggregates consistent.
	KitchenUoW interface {
		TxManager
		OrderRepoFactory
		TicketRepoFactory
	}

	// KitchenUoWFactory creates new kitchen unit of work instances.
	KitchenUoWFactory interface {
		Create() KitchenUoW
	}

	// SessionUoW manages transactions for session-only operations.
	SessionUoW interface {
		TxManager
		SessionRepoFactory
	}

	// SessionUoWFactory creates new session unit of work instances.
	SessionUoWFactory interface {
		Create() SessionUoW
	}

	// SettlementUoW manages transactions spanning orders, sessions and POS
	// transactions. Used for attach, capture, void and session close.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		SessionRepoFactory
		TransactionRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}
)
