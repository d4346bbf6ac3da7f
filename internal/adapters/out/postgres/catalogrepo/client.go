// Package catalogrepo resolves catalog items against the menu table.
// The menu is owned by a separate back office; this adapter only reads it.
package catalogrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogItemDTO is the database representation of one menu entry.
type CatalogItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	UnitPrice    int64
	StationID    uuid.UUID `gorm:"type:uuid"`
	StationCode  string
	PrepSequence int
	Active       bool `gorm:"index"`
}

func (CatalogItemDTO) TableName() string { return "catalog_items" }

// GormCatalogClient implements ports.CatalogClient over the menu table.
type GormCatalogClient struct {
	db *gorm.DB
}

// NewGormCatalogClient creates a catalog client on the given connection.
func NewGormCatalogClient(db *gorm.DB) *GormCatalogClient {
	return &GormCatalogClient{db: db}
}

// ResolveItem looks up an active catalog item by its identifier.
func (c *GormCatalogClient) ResolveItem(ctx context.Context, catalogItemID kernel.UUID) (ports.CatalogItem, error) {
	if err := catalogItemID.Validate(); err != nil {
		return ports.CatalogItem{}, err
	}

	var dto CatalogItemDTO
	err := c.db.WithContext(ctx).
		First(&dto, "id = ? AND active", catalogItemID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CatalogItem{}, errs.NewObjectNotFoundError("catalog item", catalogItemID.String())
		}
		return ports.CatalogItem{}, err
	}

	stationID, err := kernel.UUIDFromBytes(dto.StationID[:])
	if err != nil {
		return ports.CatalogItem{}, err
	}

	return ports.CatalogItem{
		Name:         dto.Name,
		UnitPrice:    kernel.NewMoney(dto.UnitPrice),
		StationID:    stationID,
		StationCode:  dto.StationCode,
		PrepSequence: dto.PrepSequence,
	}, nil
}
