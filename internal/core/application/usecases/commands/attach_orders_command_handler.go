package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/pkg/errs"
)

// ErrOrderNotServed rejects attaching an order that has not been served.
var ErrOrderNotServed = errors.New("only served orders can be attached for settlement")

// AttachOrdersCommandHandler binds served orders to a pending POS
// transaction. An order sitting on another live transaction is rejected
// as already settled; the caller must void that transaction first.
type AttachOrdersCommandHandler struct {
	uowFactory  SettlementUoWFactory
	maxAttempts int
}

// NewAttachOrdersCommandHandler creates a handler for attaching orders.
func NewAttachOrdersCommandHandler(uowFactory SettlementUoWFactory, maxAttempts int) AttachOrdersCommandHandler {
	return AttachOrdersCommandHandler{
		uowFactory:  uowFactory,
		maxAttempts: maxAttempts,
	}
}

// Handle processes the attach command.
func (h *AttachOrdersCommandHandler) Handle(ctx context.Context, cmd AttachOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, "attach orders", h.maxAttempts, func(ctx context.Context) error {
		return h.attach(ctx, cmd)
	})
}

func (h *AttachOrdersCommandHandler) attach(ctx context.Context, cmd AttachOrdersCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	session, err := uow.SessionRepository().Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}
	if !session.IsOpen() {
		return pos.ErrSessionIsClosed
	}

	txRepo := uow.TransactionRepository()
	tx, created, err := h.loadOrCreate(ctx, uow, cmd)
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, orderID := range cmd.OrderIDs() {
		aggregate, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return err
		}
		if aggregate.Status() != order.Served {
			return ErrOrderNotServed
		}

		if err = h.ensureNotSettled(ctx, uow, orderID); err != nil {
			return err
		}

		if err = tx.AttachOrder(aggregate.ID(), aggregate.Total()); err != nil {
			return err
		}
	}

	if created {
		err = txRepo.Add(ctx, tx)
	} else {
		err = txRepo.Update(ctx, tx)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *AttachOrdersCommandHandler) loadOrCreate(
	ctx context.Context,
	uow SettlementUoW,
	cmd AttachOrdersCommand,
) (*pos.Transaction, bool, error) {
	tx, err := uow.TransactionRepository().Get(ctx, cmd.TransactionID())
	switch {
	case err == nil:
		return tx, false, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, false, err
	}

	tx, err = pos.NewTransaction(cmd.TransactionID(), cmd.SessionID(), time.Now().UTC())
	if err != nil {
		return nil, false, err
	}
	return tx, true, nil
}

// ensureNotSettled rejects orders already sitting on a live transaction.
func (h *AttachOrdersCommandHandler) ensureNotSettled(ctx context.Context, uow SettlementUoW, orderID kernel.UUID) error {
	active, err := uow.TransactionRepository().GetActiveByOrder(ctx, orderID)
	switch {
	case err == nil:
		return errs.NewAlreadySettledError(orderID.String(), active.ID().String())
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return err
	}
}
