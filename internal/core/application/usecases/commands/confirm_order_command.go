package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand represents a request to confirm a draft order and
// send it to the kitchen. Tax is computed upstream and passed in as a
// ready figure. The idempotency key makes client retries safe.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	tax            kernel.Money
	actor          string
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a command to confirm an order.
// The idempotency key may be empty when the caller does not retry.
func NewConfirmOrderCommand(
	orderID kernel.UUID,
	tax kernel.Money,
	actor string,
	idempotencyKey string,
) (ConfirmOrderCommand, error) {
	cmd := ConfirmOrderCommand{
		guard:          guard.NewConstructorGuard(),
		idempotencyKey: idempotencyKey,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTax(tax),
		cmd.setActor(actor),
	); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to confirm.
func (c ConfirmOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Tax returns the tax figure to apply at confirmation.
func (c ConfirmOrderCommand) Tax() kernel.Money { return c.tax }

// Actor returns the identifier of the confirming actor.
func (c ConfirmOrderCommand) Actor() string { return c.actor }

// IdempotencyKey returns the caller-supplied deduplication key, empty if none.
func (c ConfirmOrderCommand) IdempotencyKey() string { return c.idempotencyKey }

func (c *ConfirmOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmOrderCommand) setTax(tax kernel.Money) error {
	if err := tax.ValidateNonNegative("tax"); err != nil {
		return err
	}

	c.tax = tax
	return nil
}

func (c *ConfirmOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
