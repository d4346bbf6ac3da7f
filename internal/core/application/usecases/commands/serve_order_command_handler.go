package commands

import (
	"context"
	"time"
)

// ServeOrderCommandHandler moves a ready order to served.
type ServeOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	maxAttempts int
}

// NewServeOrderCommandHandler creates a handler for serving orders.
func NewServeOrderCommandHandler(uowFactory OrderUoWFactory, maxAttempts int) ServeOrderCommandHandler {
	return ServeOrderCommandHandler{
		uowFactory:  uowFactory,
		maxAttempts: maxAttempts,
	}
}

// Handle processes the serve command.
func (h *ServeOrderCommandHandler) Handle(ctx context.Context, cmd ServeOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, "serve order", h.maxAttempts, func(ctx context.Context) error {
		return h.serve(ctx, cmd)
	})
}

func (h *ServeOrderCommandHandler) serve(ctx context.Context, cmd ServeOrderCommand) error {
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

	if err = aggregate.Serve(cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
