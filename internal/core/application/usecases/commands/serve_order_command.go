package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrServeOrderCommandIsNotConstructed = errors.New(
	"ServeOrderCommand must be created via NewServeOrderCommand constructor",
)

// ServeOrderCommand represents a waiter handing a ready order to the guest.
type ServeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewServeOrderCommand creates a command to serve an order.
func NewServeOrderCommand(orderID kernel.UUID, actor string) (ServeOrderCommand, error) {
	cmd := ServeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return ServeOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ServeOrderCommand) Validate() error {
	return c.guard.Validate(ErrServeOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to serve.
func (c ServeOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the identifier of the serving actor.
func (c ServeOrderCommand) Actor() string { return c.actor }

func (c *ServeOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ServeOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
