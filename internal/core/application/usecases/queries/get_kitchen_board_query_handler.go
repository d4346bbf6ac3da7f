package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/ticket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetKitchenBoardQueryHandler loads the active tickets for the kitchen
// display. Uses direct SQL for read performance; tickets come back in
// arrival order with lines in preparation sequence.
type GetKitchenBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetKitchenBoardQueryHandler creates a handler for kitchen board queries.
func NewGetKitchenBoardQueryHandler(db *gorm.DB) GetKitchenBoardQueryHandler {
	return GetKitchenBoardQueryHandler{db: db}
}

// Handle executes the query. Only queued and in-progress tickets appear
// on the board.
func (h GetKitchenBoardQueryHandler) Handle(
	ctx context.Context,
	query GetKitchenBoardQuery,
) ([]KitchenBoardTicket, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			t.id,
			t.number,
			o.number AS order_number,
			t.station_code,
			t.status,
			t.created_at,
			t.started_at,
			l.name,
			l.quantity,
			l.prep_sequence
		FROM kitchen_tickets t
		JOIN orders o ON o.id = t.order_id
		JOIN ticket_lines l ON l.ticket_id = t.id
		WHERE t.status IN (?, ?)
	`
	args := []any{int(ticket.Queued), int(ticket.InProgress)}
	if query.StationCode() != "" {
		sql += " AND t.station_code = ?"
		args = append(args, query.StationCode())
	}
	sql += " ORDER BY t.created_at, t.id, l.prep_sequence"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	board := make([]KitchenBoardTicket, 0)
	index := map[string]int{}

	for rows.Next() {
		var (
			id        uuid.UUID
			number    string
			orderNum  string
			station   string
			status    int
			createdAt time.Time
			startedAt *time.Time
			line      KitchenBoardLine
		)

		err = rows.Scan(&id, &number, &orderNum, &station, &status, &createdAt, &startedAt,
			&line.Name, &line.Quantity, &line.PrepSequence)
		if err != nil {
			return nil, err
		}

		pos, ok := index[id.String()]
		if !ok {
			ticketID, idErr := kernel.UUIDFromBytes(id[:])
			if idErr != nil {
				return nil, idErr
			}

			board = append(board, KitchenBoardTicket{
				TicketID:    ticketID,
				Number:      number,
				OrderNumber: orderNum,
				StationCode: station,
				Status:      ticket.Status(status).String(),
				CreatedAt:   createdAt,
				StartedAt:   startedAt,
			})
			pos = len(board) - 1
			index[id.String()] = pos
		}
		board[pos].Lines = append(board[pos].Lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return board, nil
}
