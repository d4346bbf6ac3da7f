package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/ticket"
)

// TicketRepository defines the persistence contract for kitchen tickets.
type TicketRepository interface {
	// Add persists a new kitchen ticket to storage.
	Add(ctx context.Context, aggregate *ticket.KitchenTicket) error

	// Update persists changes to an existing kitchen ticket.
	// The write is conditional on the loaded version; a concurrent
	// update returns errs.VersionConflictError.
	Update(ctx context.Context, aggregate *ticket.KitchenTicket) error

	// Get retrieves a kitchen ticket by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*ticket.KitchenTicket, error)

	// GetByNumber retrieves a kitchen ticket by its station-scoped number.
	GetByNumber(ctx context.Context, number ticket.Number) (*ticket.KitchenTicket, error)

	// GetAllByOrder retrieves every kitchen ticket derived from an order,
	// voided tickets included.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*ticket.KitchenTicket, error)

	// GetAllActive retrieves tickets in Queued or InProgress status across
	// all orders. Feeds the kitchen board.
	GetAllActive(ctx context.Context) ([]*ticket.KitchenTicket, error)
}
