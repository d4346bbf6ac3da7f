package ticketrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/ticket"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTicketRepository implements ports.TicketRepository using GORM.
type GormTicketRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

type changeTracker interface {
	TrackChange(event ports.Event)
}

// NewGormTicketRepository creates a new GORM kitchen ticket repository.
func NewGormTicketRepository(db *gorm.DB, tracker changeTracker) *GormTicketRepository {
	return &GormTicketRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new kitchen ticket with its lines.
func (r *GormTicketRepository) Add(ctx context.Context, aggregate *ticket.KitchenTicket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, lines := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(lines) > 0 {
		if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackChange(ports.Event{
		EntityType: "kitchen_ticket",
		EntityID:   aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		Version:    aggregate.Version(),
	})
	return nil
}

// Update saves an existing kitchen ticket, conditional on the loaded version.
func (r *GormTicketRepository) Update(ctx context.Context, aggregate *ticket.KitchenTicket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, lines := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&TicketDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("kitchen_ticket", aggregate.ID().String(), loadedVersion)
	}

	if err := r.db.WithContext(ctx).Where("ticket_id = ?", dto.ID).Delete(&LineDTO{}).Error; err != nil {
		return err
	}
	if len(lines) > 0 {
		if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackChange(ports.Event{
		EntityType: "kitchen_ticket",
		EntityID:   aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		Version:    dto.Version,
	})
	return nil
}

// Get retrieves a kitchen ticket by ID with all of its lines.
func (r *GormTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.KitchenTicket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TicketDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("kitchen_ticket", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByNumber retrieves a kitchen ticket by its station-scoped number.
func (r *GormTicketRepository) GetByNumber(ctx context.Context, number ticket.Number) (*ticket.KitchenTicket, error) {
	var dto TicketDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("kitchen_ticket", number.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetAllByOrder retrieves every ticket derived from an order, voided included.
func (r *GormTicketRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*ticket.KitchenTicket, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TicketDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	return r.loadAll(ctx, dtos)
}

// GetAllActive retrieves Queued and InProgress tickets across all orders.
func (r *GormTicketRepository) GetAllActive(ctx context.Context) ([]*ticket.KitchenTicket, error) {
	var dtos []TicketDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status IN ?", []int{int(ticket.Queued), int(ticket.InProgress)}).Error
	if err != nil {
		return nil, err
	}

	return r.loadAll(ctx, dtos)
}

func (r *GormTicketRepository) load(ctx context.Context, dto TicketDTO) (*ticket.KitchenTicket, error) {
	var lines []LineDTO
	err := r.db.WithContext(ctx).
		Order("prep_sequence").Find(&lines, "ticket_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, lines)
}

func (r *GormTicketRepository) loadAll(ctx context.Context, dtos []TicketDTO) ([]*ticket.KitchenTicket, error) {
	tickets := make([]*ticket.KitchenTicket, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := r.load(ctx, dto)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, aggregate)
	}
	return tickets, nil
}
