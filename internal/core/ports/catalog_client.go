package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
)

// CatalogItem is the menu snapshot taken when an order line is resolved.
// Later catalog edits never change lines already priced from it.
type CatalogItem struct {
	Name         string
	UnitPrice    kernel.Money
	StationID    kernel.UUID
	StationCode  string
	PrepSequence int
}

// CatalogClient resolves catalog item identifiers against the menu service.
type CatalogClient interface {
	// ResolveItem looks up a catalog item by its identifier.
	// Returns errs.ObjectNotFoundError for unknown items.
	ResolveItem(ctx context.Context, catalogItemID kernel.UUID) (CatalogItem, error)
}
