package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/services"
)

// CloseSessionCommandHandler closes a POS session. The expected cash is
// computed from the opening float and the session's captured cash
// transactions; the counted figure is recorded against it as an advisory
// variance.
type CloseSessionCommandHandler struct {
	uowFactory  SettlementUoWFactory
	calculator  services.SettlementCalculator
	maxAttempts int
}

// NewCloseSessionCommandHandler creates a handler for closing sessions.
func NewCloseSessionCommandHandler(uowFactory SettlementUoWFactory, maxAttempts int) CloseSessionCommandHandler {
	return CloseSessionCommandHandler{
		uowFactory:  uowFactory,
		calculator:  services.NewSettlementCalculator(),
		maxAttempts: maxAttempts,
	}
}

// Handle processes the close-session command.
func (h *CloseSessionCommandHandler) Handle(ctx context.Context, cmd CloseSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, "close session", h.maxAttempts, func(ctx context.Context) error {
		return h.close(ctx, cmd)
	})
}

func (h *CloseSessionCommandHandler) close(ctx context.Context, cmd CloseSessionCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()
	session, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	transactions, err := uow.TransactionRepository().GetAllBySession(ctx, session.ID())
	if err != nil {
		return err
	}

	expected := h.calculator.ExpectedCash(session, transactions)
	if err = session.Close(cmd.CountedCash(), expected, time.Now().UTC()); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
