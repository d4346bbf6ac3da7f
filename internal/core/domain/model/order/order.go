package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrTableIsRequired is returned when a dine-in order has no table.
	ErrTableIsRequired = errs.NewValueIsRequiredError("table for a dine-in order")

	// ErrOrderHasNoItems is returned when confirming an order without items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("at least one order item")

	// ErrLineNotFound is returned when an amendment references an unknown line.
	ErrLineNotFound = errs.NewObjectNotFoundError("order line", "unknown line id")
)

// Order is the aggregate root coordinating a restaurant order from placement
// through kitchen preparation to settlement.
//
// Order maintains these invariants:
//   - Overall status follows the Status state machine; Preparing and Ready
//     are only entered through ticket-progress aggregation.
//   - total = subtotal + tax − discount, recomputed on every item or
//     discount change.
//   - Items completed by a station are immutable: such a line can no longer
//     be removed.
//
// The version field is the optimistic-concurrency token: every committed
// mutation increments it, and a commit against a stale version fails with
// a version conflict that the caller resolves by re-reading and reapplying
// its delta.
type Order struct {
	id        kernel.UUID
	number    kernel.OrderNumber
	orderType Type
	tableID   *kernel.UUID
	items     []*Item
	subtotal  kernel.Money
	tax       kernel.Money
	discount  kernel.Money
	total     kernel.Money
	status    Status
	version   int64
	createdAt time.Time
	updatedAt time.Time
	lastActor string

	guard guard.ConstructorGuard
}

// NewOrder creates a draft order. Items are added afterwards with AddItem;
// totals stay zero until confirmation resolves catalog prices.
// Dine-in orders must reference a table; takeaway and delivery must not.
func NewOrder(id kernel.UUID, number kernel.OrderNumber, orderType Type, tableID *kernel.UUID, now time.Time) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		orderType.Validate(),
	); err != nil {
		return nil, err
	}

	if orderType == DineIn {
		if tableID == nil {
			return nil, ErrTableIsRequired
		}
		if err := tableID.Validate(); err != nil {
			return nil, err
		}
	} else if tableID != nil {
		return nil, errs.NewValueIsInvalidError("table on a non-dine-in order")
	}

	return &Order{
		id:        id,
		number:    number,
		orderType: orderType,
		tableID:   tableID,
		status:    Draft,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order aggregate from persistence, including
// its version token. Unlike NewOrder it accepts any valid status.
func RestoreOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	orderType Type,
	tableID *kernel.UUID,
	items []*Item,
	subtotal, tax, discount, total kernel.Money,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
	lastActor string,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		orderType.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:        id,
		number:    number,
		orderType: orderType,
		tableID:   tableID,
		items:     items,
		subtotal:  subtotal,
		tax:       tax,
		discount:  discount,
		total:     total,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
		lastActor: lastActor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the human-readable order number.
func (o *Order) Number() kernel.OrderNumber { return o.number }

// OrderType returns the fulfilment type.
func (o *Order) OrderType() Type { return o.orderType }

// TableID returns the table reference, nil for takeaway and delivery.
func (o *Order) TableID() *kernel.UUID { return o.tableID }

// Items returns the order lines. The slice must not be mutated by callers.
func (o *Order) Items() []*Item { return o.items }

// Subtotal returns the sum of all line totals.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// Tax returns the tax amount applied at confirmation.
func (o *Order) Tax() kernel.Money { return o.tax }

// Discount returns the order-level discount.
func (o *Order) Discount() kernel.Money { return o.discount }

// Total returns subtotal + tax − discount.
func (o *Order) Total() kernel.Money { return o.total }

// Status returns the current lifecycle state.
func (o *Order) Status() Status { return o.status }

// Version returns the optimistic-concurrency token.
func (o *Order) Version() int64 { return o.version }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last-mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// LastActor returns the actor attributed with the last mutation.
func (o *Order) LastActor() string { return o.lastActor }

// AddItem appends a new line for a catalog item. Legal while the order is
// Draft, Confirmed, or Preparing; an addition after confirmation is an
// amendment and requires a new ticket-derivation pass by the caller.
func (o *Order) AddItem(catalogItemID kernel.UUID, quantity int, actor string, now time.Time) (*Item, error) {
	if o.status != Draft && o.status != Confirmed && o.status != Preparing {
		return nil, errs.NewInvalidTransitionError("order", o.status.String(), "item added")
	}

	item, err := NewItem(catalogItemID, quantity)
	if err != nil {
		return nil, err
	}

	o.items = append(o.items, item)
	o.recomputeTotals()
	o.touch(actor, now)
	return item, nil
}

// RemoveItem deletes a line by its line id. A line whose station already
// reported completion is immutable history and cannot be removed.
func (o *Order) RemoveItem(lineID kernel.UUID, actor string, now time.Time) error {
	if o.status != Draft && o.status != Confirmed && o.status != Preparing {
		return errs.NewInvalidTransitionError("order", o.status.String(), "item removed")
	}

	for idx, item := range o.items {
		if !item.lineID.IsEqual(lineID) {
			continue
		}
		if item.status == ItemReady {
			return errs.NewInvalidTransitionError("order item", item.status.String(), "removed")
		}
		o.items = append(o.items[:idx], o.items[idx+1:]...)
		o.recomputeTotals()
		o.touch(actor, now)
		return nil
	}

	return ErrLineNotFound
}

// ResolveItem applies a catalog snapshot to an unresolved line.
// Called during confirmation and amendment re-derivation.
func (o *Order) ResolveItem(lineID kernel.UUID, name string, unitPrice kernel.Money, stationID kernel.UUID, stationCode string, prepSequence int) error {
	for _, item := range o.items {
		if item.lineID.IsEqual(lineID) {
			if err := item.resolve(name, unitPrice, stationID, stationCode, prepSequence); err != nil {
				return err
			}
			o.recomputeTotals()
			return nil
		}
	}
	return ErrLineNotFound
}

// UnresolvedItems returns the lines that still need a catalog snapshot.
func (o *Order) UnresolvedItems() []*Item {
	var pending []*Item
	for _, item := range o.items {
		if !item.resolved {
			pending = append(pending, item)
		}
	}
	return pending
}

// Confirm validates the order and transitions Draft to Confirmed.
// Every line must be resolved against the catalog beforehand; tax is a
// pure-function input computed by the caller from the subtotal.
func (o *Order) Confirm(tax kernel.Money, actor string, now time.Time) error {
	if len(o.items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range o.items {
		if !item.resolved {
			return errs.NewValueIsRequiredError("catalog snapshot for item " + item.lineID.String())
		}
	}
	if err := tax.ValidateNonNegative("tax"); err != nil {
		return err
	}

	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.tax = tax
	o.recomputeTotals()
	o.touch(actor, now)
	return nil
}

// ApplyDiscount sets the order-level discount. Not allowed once the order
// reached settlement or was cancelled.
func (o *Order) ApplyDiscount(discount kernel.Money, actor string, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError("order", o.status.String(), "discount applied")
	}
	if err := discount.ValidateNonNegative("discount"); err != nil {
		return err
	}

	o.discount = discount
	o.recomputeTotals()
	o.touch(actor, now)
	return nil
}

// StartPreparing is invoked when any derived ticket goes in-progress.
// Calling it on an order that is already Preparing is a no-op.
func (o *Order) StartPreparing(actor string, now time.Time) error {
	if o.status == Preparing {
		return nil
	}
	newStatus, err := o.status.StartPreparing()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch(actor, now)
	return nil
}

// MarkReady is invoked when every non-voided ticket completed.
func (o *Order) MarkReady(actor string, now time.Time) error {
	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch(actor, now)
	return nil
}

// Serve records physical delivery to the customer or table.
func (o *Order) Serve(actor string, now time.Time) error {
	newStatus, err := o.status.Serve()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch(actor, now)
	return nil
}

// Settle is invoked by settlement when the bound transaction is captured.
func (o *Order) Settle(actor string, now time.Time) error {
	newStatus, err := o.status.Settle()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch(actor, now)
	return nil
}

// Reopen reverts a settled order to Served when its transaction is voided.
func (o *Order) Reopen(actor string, now time.Time) error {
	newStatus, err := o.status.Reopen()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch(actor, now)
	return nil
}

// Cancel abandons the order before it is served. Tickets for a cancelled
// order are voided, not deleted, by the caller.
func (o *Order) Cancel(actor string, now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch(actor, now)
	return nil
}

// MarkItemsPreparing moves the given lines to Preparing when their station
// ticket starts. Lines already Ready keep their state.
func (o *Order) MarkItemsPreparing(lineIDs []kernel.UUID, actor string, now time.Time) {
	o.setItemStatus(lineIDs, ItemPreparing, func(current ItemStatus) bool {
		return current == ItemPending
	})
	o.touch(actor, now)
}

// MarkItemsReady moves the given lines to Ready when their station ticket
// completes.
func (o *Order) MarkItemsReady(lineIDs []kernel.UUID, actor string, now time.Time) {
	o.setItemStatus(lineIDs, ItemReady, func(current ItemStatus) bool {
		return current != ItemReady
	})
	o.touch(actor, now)
}

func (o *Order) setItemStatus(lineIDs []kernel.UUID, status ItemStatus, applies func(ItemStatus) bool) {
	for _, item := range o.items {
		for _, lineID := range lineIDs {
			if item.lineID.IsEqual(lineID) && applies(item.status) {
				item.status = status
			}
		}
	}
}

// recomputeTotals re-establishes total = subtotal + tax − discount from the
// current lines. Unresolved lines contribute zero until confirmation.
func (o *Order) recomputeTotals() {
	subtotal := kernel.Zero()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	o.subtotal = subtotal
	o.total = subtotal.Add(o.tax).Sub(o.discount)
}

func (o *Order) touch(actor string, now time.Time) {
	o.lastActor = actor
	o.updatedAt = now.UTC()
}
