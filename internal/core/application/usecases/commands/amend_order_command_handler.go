package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// AmendOrderCommandHandler changes the lines of a not-yet-served order.
// For drafts the change is a plain edit; for confirmed orders the kitchen
// tickets are re-derived in the same transaction, which may extend an
// existing ticket, open a ticket for a new station or void a ticket whose
// station lost all of its lines.
type AmendOrderCommandHandler struct {
	uowFactory  KitchenUoWFactory
	catalog     ports.CatalogClient
	router      services.TicketRouter
	maxAttempts int
}

// NewAmendOrderCommandHandler creates a handler for order amendment.
func NewAmendOrderCommandHandler(
	uowFactory KitchenUoWFactory,
	catalog ports.CatalogClient,
	maxAttempts int,
) AmendOrderCommandHandler {
	return AmendOrderCommandHandler{
		uowFactory:  uowFactory,
		catalog:     catalog,
		router:      services.NewTicketRouter(),
		maxAttempts: maxAttempts,
	}
}

// Handle processes the amendment command.
func (h *AmendOrderCommandHandler) Handle(ctx context.Context, cmd AmendOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, "amend order", h.maxAttempts, func(ctx context.Context) error {
		return h.amend(ctx, cmd)
	})
}

func (h *AmendOrderCommandHandler) amend(ctx context.Context, cmd AmendOrderCommand) error {
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

	for _, lineID := range cmd.RemoveLineIDs() {
		if err = aggregate.RemoveItem(lineID, cmd.Actor(), now); err != nil {
			return err
		}
	}

	for _, line := range cmd.AddLines() {
		if _, err = aggregate.AddItem(line.CatalogItemID, line.Quantity, cmd.Actor(), now); err != nil {
			return err
		}
	}

	// Drafts stay unresolved until confirmation. A confirmed order already
	// went to the kitchen, so a late addition is priced immediately and the
	// ticket set is reconciled to match the new lines.
	if aggregate.Status() != order.Draft {
		if err = h.resolveAdditions(ctx, aggregate); err != nil {
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
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *AmendOrderCommandHandler) resolveAdditions(ctx context.Context, aggregate *order.Order) error {
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
