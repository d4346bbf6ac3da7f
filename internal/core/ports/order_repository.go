// Package ports defines the contracts between the application core and
// infrastructure adapters. Repositories persist aggregates with optimistic
// concurrency control, the unit of work bounds a business transaction, and
// the remaining ports cover eventing, catalog lookups and idempotency.
package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The write is conditional on the version the aggregate was loaded
	// with; a concurrent update returns errs.VersionConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-facing number.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// GetAllDraftsOlderThan retrieves draft orders last touched before the
	// given cutoff. Used by the draft expiry job.
	GetAllDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
