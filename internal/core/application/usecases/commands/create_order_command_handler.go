package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler opens new draft orders. The order number is
// minted here; catalog lookups are deferred until confirmation.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the draft order with its initial unresolved lines.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	aggregate, err := order.NewOrder(cmd.OrderID(), kernel.NewOrderNumber(now), cmd.OrderType(), cmd.TableID(), now)
	if err != nil {
		return err
	}

	for _, line := range cmd.Lines() {
		if _, err = aggregate.AddItem(line.CatalogItemID, line.Quantity, cmd.Actor(), now); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
