package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/core/ports"
)

// CaptureTransactionCommandHandler captures payment for a transaction and
// cascades every attached order to settled in the same transaction. The
// rounding tolerance covers rounding only; a genuine shortfall is an
// amount mismatch.
type CaptureTransactionCommandHandler struct {
	uowFactory  SettlementUoWFactory
	idempotency ports.IdempotencyGuard
	tolerance   int64
	maxAttempts int
}

// NewCaptureTransactionCommandHandler creates a handler for payment capture.
// Tolerance is in minor currency units.
func NewCaptureTransactionCommandHandler(
	uowFactory SettlementUoWFactory,
	idempotency ports.IdempotencyGuard,
	tolerance int64,
	maxAttempts int,
) CaptureTransactionCommandHandler {
	return CaptureTransactionCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		tolerance:   tolerance,
		maxAttempts: maxAttempts,
	}
}

// Handle processes the capture command.
func (h *CaptureTransactionCommandHandler) Handle(ctx context.Context, cmd CaptureTransactionCommand) error {
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

	err = retryOnVersionConflict(ctx, "capture transaction", h.maxAttempts, func(ctx context.Context) error {
		return h.capture(ctx, cmd)
	})
	if err != nil {
		return err
	}

	return recordOutcome(ctx, h.idempotency, cmd.IdempotencyKey(), commandOutcome{
		Entity: "transaction",
		ID:     cmd.TransactionID().String(),
		Status: pos.TransactionCaptured.String(),
	})
}

func (h *CaptureTransactionCommandHandler) capture(ctx context.Context, cmd CaptureTransactionCommand) error {
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

	if err = tx.Capture(cmd.AmountTendered(), cmd.Method(), h.tolerance, now); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, orderID := range tx.OrderIDs() {
		aggregate, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return err
		}
		if err = aggregate.Settle(cmd.Actor(), now); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = txRepo.Update(ctx, tx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
