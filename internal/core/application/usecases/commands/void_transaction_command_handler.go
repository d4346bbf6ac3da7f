package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/pos"
)

// VoidTransactionCommandHandler reverses a POS transaction while its
// session is still open. A captured transaction's orders revert from
// settled to served, freeing them for a fresh settlement.
type VoidTransactionCommandHandler struct {
	uowFactory  SettlementUoWFactory
	maxAttempts int
}

// NewVoidTransactionCommandHandler creates a handler for voiding transactions.
func NewVoidTransactionCommandHandler(uowFactory SettlementUoWFactory, maxAttempts int) VoidTransactionCommandHandler {
	return VoidTransactionCommandHandler{
		uowFactory:  uowFactory,
		maxAttempts: maxAttempts,
	}
}

// Handle processes the void command.
func (h *VoidTransactionCommandHandler) Handle(ctx context.Context, cmd VoidTransactionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, "void transaction", h.maxAttempts, func(ctx context.Context) error {
		return h.void(ctx, cmd)
	})
}

func (h *VoidTransactionCommandHandler) void(ctx context.Context, cmd VoidTransactionCommand) error {
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	txRepo := uow.TransactionRepository()
	tx, err := txRepo.Get(ctx, cmd.TransactionID())
	if err != nil {
		return err
	}

	session, err := uow.SessionRepository().Get(ctx, tx.SessionID())
	if err != nil {
		return err
	}
	if !session.IsOpen() {
		return pos.ErrSessionIsClosed
	}

	wasCaptured := tx.Status() == pos.TransactionCaptured
	if err = tx.Void(); err != nil {
		return err
	}

	if wasCaptured {
		orderRepo := uow.OrderRepository()
		for _, orderID := range tx.OrderIDs() {
			aggregate, err := orderRepo.Get(ctx, orderID)
			if err != nil {
				return err
			}
			if err = aggregate.Reopen(cmd.Actor(), now); err != nil {
				return err
			}
			if err = orderRepo.Update(ctx, aggregate); err != nil {
				return err
			}
		}
	}

	if err = txRepo.Update(ctx, tx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
