// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the
// order aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The version column is the optimistic-concurrency token:
// every successful update bumps it by one.
type OrderDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number    string     `gorm:"uniqueIndex"`
	OrderType int        `gorm:"column:order_type"`
	TableID   *uuid.UUID `gorm:"type:uuid"`
	Subtotal  int64
	Tax       int64
	Discount  int64
	Total     int64
	Status    int `gorm:"index"`
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
	LastActor string
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Lines are replaced wholesale on
// every order update; the parent's version column guards the write.
type ItemDTO struct {
	LineID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	CatalogItemID uuid.UUID `gorm:"type:uuid"`
	Name          string
	Quantity      int
	UnitPrice     int64
	StationID     uuid.UUID `gorm:"type:uuid"`
	StationCode   string
	PrepSequence  int
	Status        int
	Resolved      bool
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) (OrderDTO, []ItemDTO) {
	var tableID *uuid.UUID
	if id := aggregate.TableID(); id != nil {
		raw := id.Bytes()
		tableID = &raw
	}

	dto := OrderDTO{
		ID:        aggregate.ID().Bytes(),
		Number:    aggregate.Number().String(),
		OrderType: int(aggregate.OrderType()),
		TableID:   tableID,
		Subtotal:  aggregate.Subtotal().Amount(),
		Tax:       aggregate.Tax().Amount(),
		Discount:  aggregate.Discount().Amount(),
		Total:     aggregate.Total().Amount(),
		Status:    int(aggregate.Status()),
		Version:   aggregate.Version(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		LastActor: aggregate.LastActor(),
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			LineID:        item.LineID().Bytes(),
			OrderID:       dto.ID,
			CatalogItemID: item.CatalogItemID().Bytes(),
			Name:          item.Name(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice().Amount(),
			StationID:     item.StationID().Bytes(),
			StationCode:   item.StationCode(),
			PrepSequence:  item.PrepSequence(),
			Status:        int(item.Status()),
			Resolved:      item.IsResolved(),
		})
	}

	return dto, items
}

func toDomain(dto OrderDTO, itemDTOs []ItemDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := kernel.OrderNumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	var tableID *kernel.UUID
	if dto.TableID != nil {
		tID, tableErr := kernel.UUIDFromBytes((*dto.TableID)[:])
		if tableErr != nil {
			return nil, tableErr
		}
		tableID = &tID
	}

	items := make([]*order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, number, order.Type(dto.OrderType), tableID, items,
		kernel.NewMoney(dto.Subtotal), kernel.NewMoney(dto.Tax),
		kernel.NewMoney(dto.Discount), kernel.NewMoney(dto.Total),
		order.Status(dto.Status), dto.Version,
		dto.CreatedAt, dto.UpdatedAt, dto.LastActor,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	lineID, err := kernel.UUIDFromBytes(dto.LineID[:])
	if err != nil {
		return nil, err
	}

	catalogItemID, err := kernel.UUIDFromBytes(dto.CatalogItemID[:])
	if err != nil {
		return nil, err
	}

	// Unresolved lines carry a zero station id; it only becomes a real
	// reference once the catalog snapshot is taken.
	var stationID kernel.UUID
	if dto.Resolved {
		stationID, err = kernel.UUIDFromBytes(dto.StationID[:])
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreItem(
		lineID, catalogItemID, dto.Name, dto.Quantity,
		kernel.NewMoney(dto.UnitPrice), stationID, dto.StationCode,
		dto.PrepSequence, order.ItemStatus(dto.Status), dto.Resolved,
	)
}
