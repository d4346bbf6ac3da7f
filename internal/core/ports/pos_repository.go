package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/pos"
)

// SessionRepository defines the persistence contract for POS sessions.
type SessionRepository interface {
	// Add persists a new session to storage.
	Add(ctx context.Context, aggregate *pos.Session) error

	// Update persists changes to an existing session.
	// The write is conditional on the loaded version; a concurrent
	// update returns errs.VersionConflictError.
	Update(ctx context.Context, aggregate *pos.Session) error

	// Get retrieves a session by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pos.Session, error)

	// GetOpenByTerminal retrieves the open session for a terminal, if any.
	// Returns errs.ObjectNotFoundError when the terminal has no open session.
	GetOpenByTerminal(ctx context.Context, terminalID string) (*pos.Session, error)
}

// TransactionRepository defines the persistence contract for POS transactions.
type TransactionRepository interface {
	// Add persists a new transaction to storage.
	Add(ctx context.Context, aggregate *pos.Transaction) error

	// Update persists changes to an existing transaction.
	// The write is conditional on the loaded version; a concurrent
	// update returns errs.VersionConflictError.
	Update(ctx context.Context, aggregate *pos.Transaction) error

	// Get retrieves a transaction by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pos.Transaction, error)

	// GetActiveByOrder retrieves the non-voided transaction an order is
	// attached to, if any. At most one such transaction may exist per order.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*pos.Transaction, error)

	// GetAllBySession retrieves every transaction opened under a session.
	GetAllBySession(ctx context.Context, sessionID kernel.UUID) ([]*pos.Transaction, error)
}
