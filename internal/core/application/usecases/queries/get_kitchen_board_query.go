// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases and go
// straight over the database, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetKitchenBoardQueryIsNotConstructed = errors.New(
	"GetKitchenBoardQuery must be created via NewGetKitchenBoardQuery constructor",
)

// GetKitchenBoardQuery retrieves the active tickets for the kitchen
// display, optionally narrowed to one station.
//
// Example:
//
//	query := NewGetKitchenBoardQuery("GRILL")
//	handler := NewGetKitchenBoardQueryHandler(db)
//
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load kitchen board: %w", err)
//	}
type GetKitchenBoardQuery struct {
	stationCode string

	guard guard.ConstructorGuard
}

// NewGetKitchenBoardQuery creates a kitchen board query.
// An empty station code means every station.
func NewGetKitchenBoardQuery(stationCode string) GetKitchenBoardQuery {
	return GetKitchenBoardQuery{
		stationCode: stationCode,
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetKitchenBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetKitchenBoardQueryIsNotConstructed)
}

// StationCode returns the station filter, empty for all stations.
func (q GetKitchenBoardQuery) StationCode() string { return q.stationCode }

// KitchenBoardTicket is one ticket on the board with its lines.
type KitchenBoardTicket struct {
	TicketID    kernel.UUID
	Number      string
	OrderNumber string
	StationCode string
	Status      string
	CreatedAt   time.Time
	StartedAt   *time.Time
	Lines       []KitchenBoardLine
}

// KitchenBoardLine is one item a station has to prepare.
type KitchenBoardLine struct {
	Name         string
	Quantity     int
	PrepSequence int
}
