package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrVoidTransactionCommandIsNotConstructed = errors.New(
	"VoidTransactionCommand must be created via NewVoidTransactionCommand constructor",
)

// VoidTransactionCommand represents reversing a POS transaction. Voiding
// is all or nothing: every attached order comes back to served so it can
// be settled again.
type VoidTransactionCommand struct { //nolint:recvcheck //using for validation
	transactionID kernel.UUID
	actor         string

	guard guard.ConstructorGuard
}

// NewVoidTransactionCommand creates a command to void a transaction.
func NewVoidTransactionCommand(transactionID kernel.UUID, actor string) (VoidTransactionCommand, error) {
	cmd := VoidTransactionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTransactionID(transactionID),
		cmd.setActor(actor),
	); err != nil {
		return VoidTransactionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VoidTransactionCommand) Validate() error {
	return c.guard.Validate(ErrVoidTransactionCommandIsNotConstructed)
}

// TransactionID returns the identifier of the transaction to void.
func (c VoidTransactionCommand) TransactionID() kernel.UUID { return c.transactionID }

// Actor returns the identifier of the voiding cashier.
func (c VoidTransactionCommand) Actor() string { return c.actor }

func (c *VoidTransactionCommand) setTransactionID(transactionID kernel.UUID) error {
	if err := transactionID.Validate(); err != nil {
		return err
	}

	c.transactionID = transactionID
	return nil
}

func (c *VoidTransactionCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
