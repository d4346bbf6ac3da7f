package commands

import (
	"context"
	"time"
)

// CancelOrderCommandHandler cancels a not-yet-served order and voids its
// still-live kitchen tickets in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory  KitchenUoWFactory
	maxAttempts int
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory KitchenUoWFactory, maxAttempts int) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:  uowFactory,
		maxAttempts: maxAttempts,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, "cancel order", h.maxAttempts, func(ctx context.Context) error {
		return h.cancel(ctx, cmd)
	})
}

func (h *CancelOrderCommandHandler) cancel(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = aggregate.Cancel(cmd.Actor(), now); err != nil {
		return err
	}

	ticketRepo := uow.TicketRepository()
	tickets, err := ticketRepo.GetAllByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	for _, tk := range tickets {
		if tk.Status().IsTerminal() {
			continue
		}
		if err = tk.Void(); err != nil {
			return err
		}
		if err = ticketRepo.Update(ctx, tk); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
