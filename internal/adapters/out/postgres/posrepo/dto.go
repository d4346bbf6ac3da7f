package posrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/pos"

	"github.com/google/uuid"
)

// SessionDTO is the database representation of a POS session.
type SessionDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TerminalID   string    `gorm:"column:terminal_id;index"`
	OperatorID   string    `gorm:"column:operator_id"`
	Status       int       `gorm:"index"`
	OpeningFloat int64
	ClosingCash  *int64
	ExpectedCash *int64
	OpenedAt     time.Time
	ClosedAt     *time.Time
	Version      int64
}

func (SessionDTO) TableName() string { return "pos_sessions" }

// TransactionDTO is the database representation of a POS transaction.
type TransactionDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID      uuid.UUID `gorm:"type:uuid;index"`
	OrdersTotal    int64
	Discount       int64
	AmountTendered int64
	Method         int
	Status         int `gorm:"index"`
	CreatedAt      time.Time
	CapturedAt     *time.Time
	Version        int64
}

func (TransactionDTO) TableName() string { return "pos_transactions" }

// TransactionOrderDTO records one order attached to a transaction.
type TransactionOrderDTO struct {
	TransactionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (TransactionOrderDTO) TableName() string { return "pos_transaction_orders" }

func sessionFromDomain(aggregate *pos.Session) SessionDTO {
	dto := SessionDTO{
		ID:           aggregate.ID().Bytes(),
		TerminalID:   aggregate.TerminalID(),
		OperatorID:   aggregate.OperatorID(),
		Status:       int(aggregate.Status()),
		OpeningFloat: aggregate.OpeningFloat().Amount(),
		OpenedAt:     aggregate.OpenedAt(),
		ClosedAt:     aggregate.ClosedAt(),
		Version:      aggregate.Version(),
	}
	if closing := aggregate.ClosingCash(); closing != nil {
		amount := closing.Amount()
		dto.ClosingCash = &amount
	}
	if expected := aggregate.ExpectedCash(); expected != nil {
		amount := expected.Amount()
		dto.ExpectedCash = &amount
	}
	return dto
}

func sessionToDomain(dto SessionDTO) (*pos.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var closingCash, expectedCash *kernel.Money
	if dto.ClosingCash != nil {
		money := kernel.NewMoney(*dto.ClosingCash)
		closingCash = &money
	}
	if dto.ExpectedCash != nil {
		money := kernel.NewMoney(*dto.ExpectedCash)
		expectedCash = &money
	}

	return pos.RestoreSession(
		id, dto.TerminalID, dto.OperatorID,
		pos.SessionStatus(dto.Status),
		kernel.NewMoney(dto.OpeningFloat), closingCash, expectedCash,
		dto.OpenedAt, dto.ClosedAt, dto.Version,
	)
}

func transactionFromDomain(aggregate *pos.Transaction) (TransactionDTO, []TransactionOrderDTO) {
	dto := TransactionDTO{
		ID:             aggregate.ID().Bytes(),
		SessionID:      aggregate.SessionID().Bytes(),
		OrdersTotal:    aggregate.OrdersTotal().Amount(),
		Discount:       aggregate.Discount().Amount(),
		AmountTendered: aggregate.AmountTendered().Amount(),
		Method:         int(aggregate.Method()),
		Status:         int(aggregate.Status()),
		CreatedAt:      aggregate.CreatedAt(),
		CapturedAt:     aggregate.CapturedAt(),
		Version:        aggregate.Version(),
	}

	orders := make([]TransactionOrderDTO, 0, len(aggregate.OrderIDs()))
	for _, orderID := range aggregate.OrderIDs() {
		orders = append(orders, TransactionOrderDTO{
			TransactionID: dto.ID,
			OrderID:       orderID.Bytes(),
		})
	}

	return dto, orders
}

func transactionToDomain(dto TransactionDTO, orderDTOs []TransactionOrderDTO) (*pos.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sessionID, err := kernel.UUIDFromBytes(dto.SessionID[:])
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(orderDTOs))
	for _, orderDTO := range orderDTOs {
		orderID, orderErr := kernel.UUIDFromBytes(orderDTO.OrderID[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	return pos.RestoreTransaction(
		id, sessionID, orderIDs,
		kernel.NewMoney(dto.OrdersTotal), kernel.NewMoney(dto.Discount),
		kernel.NewMoney(dto.AmountTendered),
		pos.PaymentMethod(dto.Method), pos.TransactionStatus(dto.Status),
		dto.CreatedAt, dto.CapturedAt, dto.Version,
	)
}
