package ticketrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/ticket"

	"github.com/google/uuid"
)

// TicketDTO is the database representation of a kitchen ticket.
type TicketDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number      string    `gorm:"uniqueIndex"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	StationID   uuid.UUID `gorm:"type:uuid"`
	StationCode string
	Status      int `gorm:"index"`
	Version     int64
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

func (TicketDTO) TableName() string { return "kitchen_tickets" }

// LineDTO is the database representation of a single ticket line.
type LineDTO struct {
	TicketID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderLineID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Quantity     int
	PrepSequence int
}

func (LineDTO) TableName() string { return "ticket_lines" }

func fromDomain(aggregate *ticket.KitchenTicket) (TicketDTO, []LineDTO) {
	dto := TicketDTO{
		ID:          aggregate.ID().Bytes(),
		Number:      aggregate.Number().String(),
		OrderID:     aggregate.OrderID().Bytes(),
		StationID:   aggregate.StationID().Bytes(),
		StationCode: aggregate.StationCode(),
		Status:      int(aggregate.Status()),
		Version:     aggregate.Version(),
		CreatedAt:   aggregate.CreatedAt(),
		StartedAt:   aggregate.StartedAt(),
		CompletedAt: aggregate.CompletedAt(),
	}

	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, LineDTO{
			TicketID:     dto.ID,
			OrderLineID:  line.OrderLineID.Bytes(),
			Name:         line.Name,
			Quantity:     line.Quantity,
			PrepSequence: line.PrepSequence,
		})
	}

	return dto, lines
}

func toDomain(dto TicketDTO, lineDTOs []LineDTO) (*ticket.KitchenTicket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := ticket.NumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	stationID, err := kernel.UUIDFromBytes(dto.StationID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]ticket.Line, 0, len(lineDTOs))
	for _, lineDTO := range lineDTOs {
		orderLineID, lineErr := kernel.UUIDFromBytes(lineDTO.OrderLineID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, ticket.Line{
			OrderLineID:  orderLineID,
			Name:         lineDTO.Name,
			Quantity:     lineDTO.Quantity,
			PrepSequence: lineDTO.PrepSequence,
		})
	}

	return ticket.RestoreKitchenTicket(
		id, number, orderID, stationID, dto.StationCode, lines,
		ticket.Status(dto.Status), dto.Version,
		dto.CreatedAt, dto.StartedAt, dto.CompletedAt,
	)
}
