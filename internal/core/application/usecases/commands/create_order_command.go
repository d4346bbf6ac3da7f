package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLineRequest is one requested catalog item with its quantity.
// Quantities must be positive; the catalog reference is resolved later,
// at confirmation time.
type OrderLineRequest struct {
	CatalogItemID kernel.UUID
	Quantity      int
}

// CreateOrderCommand represents a request to open a new draft order.
// Dine-in orders must carry a table reference; takeaway and delivery
// orders must not.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), order.DineIn, &tableID, lines, "waiter-7")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	orderType order.Type
	tableID   *kernel.UUID
	lines     []OrderLineRequest
	actor     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a draft order.
// Initial lines are optional; a draft may start empty and be amended later.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderType order.Type,
	tableID *kernel.UUID,
	lines []OrderLineRequest,
	actor string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard:   guard.NewConstructorGuard(),
		tableID: tableID,
		lines:   lines,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderType(orderType),
		cmd.setActor(actor),
		validateLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// OrderType returns the fulfilment type of the order.
func (c CreateOrderCommand) OrderType() order.Type { return c.orderType }

// TableID returns the table reference, nil for takeaway and delivery.
func (c CreateOrderCommand) TableID() *kernel.UUID { return c.tableID }

// Lines returns the requested initial order lines.
func (c CreateOrderCommand) Lines() []OrderLineRequest { return c.lines }

// Actor returns the identifier of the actor placing the order.
func (c CreateOrderCommand) Actor() string { return c.actor }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func validateLines(lines []OrderLineRequest) error {
	for _, line := range lines {
		if err := line.CatalogItemID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidError("quantity")
		}
	}
	return nil
}
