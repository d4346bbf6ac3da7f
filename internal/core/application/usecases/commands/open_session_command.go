package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrOpenSessionCommandIsNotConstructed = errors.New(
	"OpenSessionCommand must be created via NewOpenSessionCommand constructor",
)

// OpenSessionCommand represents a cashier opening a POS session on a
// terminal with a counted opening float.
type OpenSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID    kernel.UUID
	terminalID   string
	operatorID   string
	openingFloat kernel.Money

	guard guard.ConstructorGuard
}

// NewOpenSessionCommand creates a command to open a session.
func NewOpenSessionCommand(
	sessionID kernel.UUID,
	terminalID string,
	operatorID string,
	openingFloat kernel.Money,
) (OpenSessionCommand, error) {
	cmd := OpenSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setTerminalID(terminalID),
		cmd.setOperatorID(operatorID),
		cmd.setOpeningFloat(openingFloat),
	); err != nil {
		return OpenSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenSessionCommand) Validate() error {
	return c.guard.Validate(ErrOpenSessionCommandIsNotConstructed)
}

// SessionID returns the identifier the new session will be created under.
func (c OpenSessionCommand) SessionID() kernel.UUID { return c.sessionID }

// TerminalID returns the terminal the session is bound to.
func (c OpenSessionCommand) TerminalID() string { return c.terminalID }

// OperatorID returns the cashier operating the session.
func (c OpenSessionCommand) OperatorID() string { return c.operatorID }

// OpeningFloat returns the counted cash at session open.
func (c OpenSessionCommand) OpeningFloat() kernel.Money { return c.openingFloat }

func (c *OpenSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *OpenSessionCommand) setTerminalID(terminalID string) error {
	if terminalID == "" {
		return errs.NewValueIsRequiredError("terminalID")
	}

	c.terminalID = terminalID
	return nil
}

func (c *OpenSessionCommand) setOperatorID(operatorID string) error {
	if operatorID == "" {
		return errs.NewValueIsRequiredError("operatorID")
	}

	c.operatorID = operatorID
	return nil
}

func (c *OpenSessionCommand) setOpeningFloat(openingFloat kernel.Money) error {
	if err := openingFloat.ValidateNonNegative("openingFloat"); err != nil {
		return err
	}

	c.openingFloat = openingFloat
	return nil
}
