package order

import (
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ItemStatus is the per-item sub-state, driven by the kitchen ticket of the
// item's station: Pending until the ticket starts, Preparing while it is
// worked on, Ready when the station reports completion.
type ItemStatus int

const (
	ItemPending ItemStatus = iota + 1
	ItemPreparing
	ItemReady
)

func (s ItemStatus) String() string {
	switch s {
	case ItemPending:
		return "Pending"
	case ItemPreparing:
		return "Preparing"
	case ItemReady:
		return "Ready"
	default:
		return "Unknown"
	}
}

// Validate checks that the status is one of the defined item states.
func (s ItemStatus) Validate() error {
	if s < ItemPending || s > ItemReady {
		return errs.NewValueIsInvalidError("item status")
	}
	return nil
}

// Item is a single order line. Identity is the line id, minted when the
// line is added, so amendments and ticket lines can reference it even when
// the same catalog item appears on several lines.
//
// Name, unit price, and station are snapshots resolved against the catalog
// at confirmation time and never re-queried afterwards.
type Item struct {
	lineID        kernel.UUID
	catalogItemID kernel.UUID
	name          string
	quantity      int
	unitPrice     kernel.Money
	stationID     kernel.UUID
	stationCode   string
	prepSequence  int
	status        ItemStatus
	resolved      bool
}

// NewItem creates an unresolved order line for a catalog item.
func NewItem(catalogItemID kernel.UUID, quantity int) (*Item, error) {
	if err := catalogItemID.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}

	return &Item{
		lineID:        kernel.NewUUID(),
		catalogItemID: catalogItemID,
		quantity:      quantity,
		status:        ItemPending,
	}, nil
}

// RestoreItem reconstructs an order line from persistence.
func RestoreItem(
	lineID, catalogItemID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	stationID kernel.UUID,
	stationCode string,
	prepSequence int,
	status ItemStatus,
	resolved bool,
) (*Item, error) {
	if err := lineID.Validate(); err != nil {
		return nil, err
	}
	if err := catalogItemID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}

	return &Item{
		lineID:        lineID,
		catalogItemID: catalogItemID,
		name:          name,
		quantity:      quantity,
		unitPrice:     unitPrice,
		stationID:     stationID,
		stationCode:   stationCode,
		prepSequence:  prepSequence,
		status:        status,
		resolved:      resolved,
	}, nil
}

// LineID returns the identity of this order line.
func (i *Item) LineID() kernel.UUID { return i.lineID }

// CatalogItemID returns the referenced catalog item.
func (i *Item) CatalogItemID() kernel.UUID { return i.catalogItemID }

// Name returns the catalog name snapshot (empty until resolved).
func (i *Item) Name() string { return i.name }

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int { return i.quantity }

// UnitPrice returns the price snapshot taken at confirmation.
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }

// StationID returns the preparation station snapshot.
func (i *Item) StationID() kernel.UUID { return i.stationID }

// StationCode returns the short station code snapshot (e.g. "GRILL").
func (i *Item) StationCode() string { return i.stationCode }

// PrepSequence returns the catalog preparation-sequence snapshot used to
// order lines on a kitchen ticket.
func (i *Item) PrepSequence() int { return i.prepSequence }

// Status returns the item sub-state.
func (i *Item) Status() ItemStatus { return i.status }

// IsResolved reports whether the catalog snapshot has been taken.
func (i *Item) IsResolved() bool { return i.resolved }

// LineTotal returns quantity × unit price.
func (i *Item) LineTotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

// resolve applies the catalog snapshot. Once resolved, a line keeps its
// price and station even if the catalog changes afterwards.
func (i *Item) resolve(name string, unitPrice kernel.Money, stationID kernel.UUID, stationCode string, prepSequence int) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	if err := unitPrice.ValidateNonNegative("unit price"); err != nil {
		return err
	}
	if err := stationID.Validate(); err != nil {
		return err
	}
	if stationCode == "" {
		return errs.NewValueIsRequiredError("station code")
	}

	i.name = name
	i.unitPrice = unitPrice
	i.stationID = stationID
	i.stationCode = stationCode
	i.prepSequence = prepSequence
	i.resolved = true
	return nil
}
