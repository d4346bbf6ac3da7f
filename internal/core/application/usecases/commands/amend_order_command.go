package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrAmendOrderCommandIsNotConstructed = errors.New(
		"AmendOrderCommand must be created via NewAmendOrderCommand constructor",
	)
	ErrAmendmentIsEmpty = errors.New("amendment must add or remove at least one line")
)

// AmendOrderCommand represents a request to change the lines of an order
// that has not been served yet. Lines whose station already finished them
// cannot be removed.
type AmendOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	addLines      []OrderLineRequest
	removeLineIDs []kernel.UUID
	actor         string

	guard guard.ConstructorGuard
}

// NewAmendOrderCommand creates a command to amend an order's lines.
func NewAmendOrderCommand(
	orderID kernel.UUID,
	addLines []OrderLineRequest,
	removeLineIDs []kernel.UUID,
	actor string,
) (AmendOrderCommand, error) {
	cmd := AmendOrderCommand{
		guard:         guard.NewConstructorGuard(),
		addLines:      addLines,
		removeLineIDs: removeLineIDs,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		validateLines(addLines),
		validateLineIDs(removeLineIDs),
	); err != nil {
		return AmendOrderCommand{}, err
	}

	if len(addLines) == 0 && len(removeLineIDs) == 0 {
		return AmendOrderCommand{}, ErrAmendmentIsEmpty
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AmendOrderCommand) Validate() error {
	return c.guard.Validate(ErrAmendOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to amend.
func (c AmendOrderCommand) OrderID() kernel.UUID { return c.orderID }

// AddLines returns the lines to add.
func (c AmendOrderCommand) AddLines() []OrderLineRequest { return c.addLines }

// RemoveLineIDs returns the line identifiers to remove.
func (c AmendOrderCommand) RemoveLineIDs() []kernel.UUID { return c.removeLineIDs }

// Actor returns the identifier of the amending actor.
func (c AmendOrderCommand) Actor() string { return c.actor }

func (c *AmendOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AmendOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func validateLineIDs(lineIDs []kernel.UUID) error {
	for _, id := range lineIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	return nil
}
