package posrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSessionRepository implements ports.SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

type changeTracker interface {
	TrackChange(event ports.Event)
}

// NewGormSessionRepository creates a new GORM POS session repository.
func NewGormSessionRepository(db *gorm.DB, tracker changeTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *pos.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := sessionFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(ports.Event{
		EntityType: "pos_session",
		EntityID:   aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		Version:    aggregate.Version(),
	})
	return nil
}

// Update saves an existing session, conditional on the loaded version.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *pos.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := sessionFromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&SessionDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("pos_session", aggregate.ID().String(), loadedVersion)
	}

	r.tracker.TrackChange(ports.Event{
		EntityType: "pos_session",
		EntityID:   aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		Version:    dto.Version,
	})
	return nil
}

// Get retrieves a session by ID.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*pos.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pos_session", id.String())
		}
		return nil, err
	}

	return sessionToDomain(dto)
}

// GetOpenByTerminal retrieves the open session for a terminal, if any.
func (r *GormSessionRepository) GetOpenByTerminal(ctx context.Context, terminalID string) (*pos.Session, error) {
	if terminalID == "" {
		return nil, errs.NewValueIsRequiredError("terminal id")
	}

	var dto SessionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "terminal_id = ? AND status = ?", terminalID, int(pos.SessionOpen)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pos_session", terminalID)
		}
		return nil, err
	}

	return sessionToDomain(dto)
}
