package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/pkg/errs"
)

var ErrTerminalHasOpenSession = errors.New("terminal already has an open session")

// OpenSessionCommandHandler opens a POS session, enforcing at most one
// open session per terminal.
type OpenSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewOpenSessionCommandHandler creates a handler for opening sessions.
func NewOpenSessionCommandHandler(uowFactory SessionUoWFactory) OpenSessionCommandHandler {
	return OpenSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the open-session command.
func (h *OpenSessionCommandHandler) Handle(ctx context.Context, cmd OpenSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	_, err := sessionRepo.GetOpenByTerminal(ctx, cmd.TerminalID())
	switch {
	case err == nil:
		return ErrTerminalHasOpenSession
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	session, err := pos.NewSession(cmd.SessionID(), cmd.TerminalID(), cmd.OperatorID(), cmd.OpeningFloat(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = sessionRepo.Add(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
