package orderrepo

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

// changeTracker collects status-change events for post-commit publishing.
type changeTracker interface {
	TrackChange(event ports.Event)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker changeTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackChange(ports.Event{
		EntityType: "order",
		EntityID:   aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		Version:    aggregate.Version(),
	})
	return nil
}

// Update saves an existing order. The write is conditional on the version
// the aggregate was loaded with; zero affected rows means somebody else
// committed first.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("order", aggregate.ID().String(), loadedVersion)
	}

	// Lines are replaced wholesale; the version check above already
	// fenced off concurrent writers.
	if err := r.db.WithContext(ctx).Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackChange(ports.Event{
		EntityType: "order",
		EntityID:   aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		Version:    dto.Version,
	})
	return nil
}

// Get retrieves an order by ID with all of its lines.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByNumber retrieves an order by its human-facing number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetAllDraftsOlderThan retrieves stale draft orders for expiry.
func (r *GormOrderRepository) GetAllDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND updated_at < ?", int(order.Draft), cutoff).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, loadErr := r.load(ctx, dto)
		if loadErr != nil {
			return nil, loadErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func (r *GormOrderRepository) load(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	var items []ItemDTO
	if err := r.db.WithContext(ctx).Find(&items, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, items)
}
