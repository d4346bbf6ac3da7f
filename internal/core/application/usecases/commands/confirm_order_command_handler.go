package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// ConfirmOrderCommandHandler confirms a draft order: resolves catalog
// snapshots for every line, recomputes totals, transitions the order to
// confirmed and derives the kitchen tickets, all in one transaction.
// Ticket numbers are derived from order number and station, so a retry
// after a crash mid-commit upserts the same ticket set.
type ConfirmOrderCommandHandler struct {
	uowFactory  KitchenUoWFactory
	catalog     ports.CatalogClient
	idempotency ports.IdempotencyGuard
	router      services.TicketRouter
	maxAttempts int
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory KitchenUoWFactory,
	catalog ports.CatalogClient,
	idempotency ports.IdempotencyGuard,
	maxAttempts int,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory:  uowFactory,
		catalog:     catalog,
		idempotency: idempotency,
		router:      services.NewTicketRouter(),
		maxAttempts: maxAttempts,
	}
}

// Handle processes the confirmation command.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	seen, err := checkReplay(ctx, h.idempotency, cmd.IdempotencyKey())
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	err = retryOnVersionConflict(ctx, "confirm order", h.maxAttempts, func(ctx context.Context) error {
		return h.confirm(ctx, cmd)
	})
	if err != nil {
		return err
	}

	return recordOutcome(ctx, h.idempotency, cmd.IdempotencyKey(), commandOutcome{
		Entity: "order",
		ID:     cmd.OrderID().String(),
		Status: order.Confirmed.String(),
	})
}

func (h *ConfirmOrderCommandHandler) confirm(ctx context.Context, cmd ConfirmOrderCommand) error {
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.resolveItems(ctx, aggregate); err != nil {
		return err
	}

	if err = aggregate.Confirm(cmd.Tax(), cmd.Actor(), now); err != nil {
		return err
	}

	ticketRepo := uow.TicketRepository()
	existing, err := ticketRepo.GetAllByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	toCreate, toUpdate, err := h.router.Reconcile(aggregate, existing, now)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	for _, tk := range toCreate {
		if err = ticketRepo.Add(ctx, tk); err != nil {
			return err
		}
	}
	for _, tk := range toUpdate {
		if err = ticketRepo.Update(ctx, tk); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *ConfirmOrderCommandHandler) resolveItems(ctx context.Context, aggregate *order.Order) error {
	for _, item := range aggregate.UnresolvedItems() {
		snapshot, err := h.catalog.ResolveItem(ctx, item.CatalogItemID())
		if err != nil {
			return err
		}

		err = aggregate.ResolveItem(
			item.LineID(),
			snapshot.Name,
			snapshot.UnitPrice,
			snapshot.StationID,
			snapshot.StationCode,
			snapshot.PrepSequence,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
