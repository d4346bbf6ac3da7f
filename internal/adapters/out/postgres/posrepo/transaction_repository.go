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

// GormTransactionRepository implements ports.TransactionRepository using GORM.
type GormTransactionRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

// NewGormTransactionRepository creates a new GORM POS transaction repository.
func NewGormTransactionRepository(db *gorm.DB, tracker changeTracker) *GormTransactionRepository {
	return &GormTransactionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new transaction with its attached orders.
func (r *GormTransactionRepository) Add(ctx context.Context, aggregate *pos.Transaction) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, orders := transactionFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(orders) > 0 {
		if err := r.db.WithContext(ctx).Create(&orders).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackChange(ports.Event{
		EntityType: "pos_transaction",
		EntityID:   aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		Version:    aggregate.Version(),
	})
	return nil
}

// Update saves an existing transaction, conditional on the loaded version.
func (r *GormTransactionRepository) Update(ctx context.Context, aggregate *pos.Transaction) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, orders := transactionFromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&TransactionDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("pos_transaction", aggregate.ID().String(), loadedVersion)
	}

	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", dto.ID).Delete(&TransactionOrderDTO{}).Error
	if err != nil {
		return err
	}
	if len(orders) > 0 {
		if err := r.db.WithContext(ctx).Create(&orders).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackChange(ports.Event{
		EntityType: "pos_transaction",
		EntityID:   aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		Version:    dto.Version,
	})
	return nil
}

// Get retrieves a transaction by ID with its attached orders.
func (r *GormTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*pos.Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransactionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pos_transaction", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetActiveByOrder retrieves the non-voided transaction an order is
// attached to. At most one such transaction exists per order.
func (r *GormTransactionRepository) GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*pos.Transaction, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TransactionDTO
	err := r.db.WithContext(ctx).
		Joins("JOIN pos_transaction_orders o ON o.transaction_id = pos_transactions.id").
		Where("o.order_id = ? AND pos_transactions.status <> ?", orderID.Bytes(), int(pos.TransactionVoided)).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pos_transaction", orderID.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetAllBySession retrieves every transaction opened under a session.
func (r *GormTransactionRepository) GetAllBySession(ctx context.Context, sessionID kernel.UUID) ([]*pos.Transaction, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransactionDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "session_id = ?", sessionID.Bytes()).Error; err != nil {
		return nil, err
	}

	transactions := make([]*pos.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := r.load(ctx, dto)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, aggregate)
	}

	return transactions, nil
}

func (r *GormTransactionRepository) load(ctx context.Context, dto TransactionDTO) (*pos.Transaction, error) {
	var orders []TransactionOrderDTO
	if err := r.db.WithContext(ctx).Find(&orders, "transaction_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return transactionToDomain(dto, orders)
}
