package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCaptureTransactionCommandIsNotConstructed = errors.New(
	"CaptureTransactionCommand must be created via NewCaptureTransactionCommand constructor",
)

// CaptureTransactionCommand represents taking the guest's payment for a
// POS transaction. The idempotency key protects against a double capture
// when the terminal retries.
type CaptureTransactionCommand struct { //nolint:recvcheck //using for validation
	transactionID  kernel.UUID
	amountTendered kernel.Money
	method         pos.PaymentMethod
	actor          string
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCaptureTransactionCommand creates a command to capture a transaction.
func NewCaptureTransactionCommand(
	transactionID kernel.UUID,
	amountTendered kernel.Money,
	method pos.PaymentMethod,
	actor string,
	idempotencyKey string,
) (CaptureTransactionCommand, error) {
	cmd := CaptureTransactionCommand{
		guard:          guard.NewConstructorGuard(),
		idempotencyKey: idempotencyKey,
	}

	if err := errors.Join(
		cmd.setTransactionID(transactionID),
		cmd.setAmountTendered(amountTendered),
		cmd.setMethod(method),
		cmd.setActor(actor),
	); err != nil {
		return CaptureTransactionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CaptureTransactionCommand) Validate() error {
	return c.guard.Validate(ErrCaptureTransactionCommandIsNotConstructed)
}

// TransactionID returns the identifier of the transaction to capture.
func (c CaptureTransactionCommand) TransactionID() kernel.UUID { return c.transactionID }

// AmountTendered returns the amount the guest handed over.
func (c CaptureTransactionCommand) AmountTendered() kernel.Money { return c.amountTendered }

// Method returns the payment method.
func (c CaptureTransactionCommand) Method() pos.PaymentMethod { return c.method }

// Actor returns the identifier of the capturing cashier.
func (c CaptureTransactionCommand) Actor() string { return c.actor }

// IdempotencyKey returns the caller-supplied deduplication key, empty if none.
func (c CaptureTransactionCommand) IdempotencyKey() string { return c.idempotencyKey }

func (c *CaptureTransactionCommand) setTransactionID(transactionID kernel.UUID) error {
	if err := transactionID.Validate(); err != nil {
		return err
	}

	c.transactionID = transactionID
	return nil
}

func (c *CaptureTransactionCommand) setAmountTendered(amountTendered kernel.Money) error {
	if err := amountTendered.ValidateNonNegative("amountTendered"); err != nil {
		return err
	}

	c.amountTendered = amountTendered
	return nil
}

func (c *CaptureTransactionCommand) setMethod(method pos.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.method = method
	return nil
}

func (c *CaptureTransactionCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
