package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrCloseSessionCommandIsNotConstructed = errors.New(
	"CloseSessionCommand must be created via NewCloseSessionCommand constructor",
)

// CloseSessionCommand represents a cashier closing a POS session with the
// cash counted in the drawer. A count that disagrees with the expected
// figure is recorded as a variance, never rejected.
type CloseSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID   kernel.UUID
	countedCash kernel.Money

	guard guard.ConstructorGuard
}

// NewCloseSessionCommand creates a command to close a session.
func NewCloseSessionCommand(sessionID kernel.UUID, countedCash kernel.Money) (CloseSessionCommand, error) {
	cmd := CloseSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setCountedCash(countedCash),
	); err != nil {
		return CloseSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseSessionCommand) Validate() error {
	return c.guard.Validate(ErrCloseSessionCommandIsNotConstructed)
}

// SessionID returns the identifier of the session to close.
func (c CloseSessionCommand) SessionID() kernel.UUID { return c.sessionID }

// CountedCash returns the cash counted at close.
func (c CloseSessionCommand) CountedCash() kernel.Money { return c.countedCash }

func (c *CloseSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *CloseSessionCommand) setCountedCash(countedCash kernel.Money) error {
	if err := countedCash.ValidateNonNegative("countedCash"); err != nil {
		return err
	}

	c.countedCash = countedCash
	return nil
}
