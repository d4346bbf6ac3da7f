package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrAttachOrdersCommandIsNotConstructed = errors.New(
		"AttachOrdersCommand must be created via NewAttachOrdersCommand constructor",
	)
	ErrNoOrdersToAttach = errors.New("at least one order must be attached")
)

// AttachOrdersCommand represents a cashier pulling served orders onto a
// POS transaction for settlement. The transaction is created under the
// session if it does not exist yet, extended otherwise.
type AttachOrdersCommand struct { //nolint:recvcheck //using for validation
	transactionID kernel.UUID
	sessionID     kernel.UUID
	orderIDs      []kernel.UUID

	guard guard.ConstructorGuard
}

// NewAttachOrdersCommand creates a command to attach orders to a transaction.
func NewAttachOrdersCommand(
	transactionID kernel.UUID,
	sessionID kernel.UUID,
	orderIDs []kernel.UUID,
) (AttachOrdersCommand, error) {
	cmd := AttachOrdersCommand{
		guard:    guard.NewConstructorGuard(),
		orderIDs: orderIDs,
	}

	if err := errors.Join(
		cmd.setTransactionID(transactionID),
		cmd.setSessionID(sessionID),
		validateLineIDs(orderIDs),
	); err != nil {
		return AttachOrdersCommand{}, err
	}

	if len(orderIDs) == 0 {
		return AttachOrdersCommand{}, ErrNoOrdersToAttach
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAttachOrdersCommandIsNotConstructed)
}

// TransactionID returns the identifier of the transaction to create or extend.
func (c AttachOrdersCommand) TransactionID() kernel.UUID { return c.transactionID }

// SessionID returns the session the transaction belongs to.
func (c AttachOrdersCommand) SessionID() kernel.UUID { return c.sessionID }

// OrderIDs returns the identifiers of the orders being settled.
func (c AttachOrdersCommand) OrderIDs() []kernel.UUID { return c.orderIDs }

func (c *AttachOrdersCommand) setTransactionID(transactionID kernel.UUID) error {
	if err := transactionID.Validate(); err != nil {
		return err
	}

	c.transactionID = transactionID
	return nil
}

func (c *AttachOrdersCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
