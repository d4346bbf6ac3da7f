package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/ticket"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackerQueryHandler assembles the customer tracker view: the
// order header, its lines with sub-states and the per-station ticket
// progress.
type GetOrderTrackerQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackerQueryHandler creates a handler for order tracker queries.
func NewGetOrderTrackerQueryHandler(db *gorm.DB) GetOrderTrackerQueryHandler {
	return GetOrderTrackerQueryHandler{db: db}
}

// Handle executes the query.
func (h GetOrderTrackerQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackerQuery,
) (OrderTrackerResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderTrackerResponse{}, err
	}

	var header struct {
		ID        uuid.UUID
		Number    string
		Status    int
		Total     int64
		UpdatedAt time.Time
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, number, status, total, updated_at
		FROM orders
		WHERE number = ?
	`, query.OrderNumber()).Scan(&header).Error
	if err != nil {
		return OrderTrackerResponse{}, err
	}
	if header.Number == "" {
		return OrderTrackerResponse{}, errs.NewObjectNotFoundError("orderNumber", query.OrderNumber())
	}

	response := OrderTrackerResponse{
		OrderNumber: header.Number,
		Status:      order.Status(header.Status).String(),
		Total:       header.Total,
		UpdatedAt:   header.UpdatedAt,
	}

	if err = h.loadItems(ctx, header.ID, &response); err != nil {
		return OrderTrackerResponse{}, err
	}
	if err = h.loadTickets(ctx, header.ID, &response); err != nil {
		return OrderTrackerResponse{}, err
	}

	return response, nil
}

func (h GetOrderTrackerQueryHandler) loadItems(ctx context.Context, orderID uuid.UUID, response *OrderTrackerResponse) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT name, quantity, status
		FROM order_items
		WHERE order_id = ?
		ORDER BY prep_sequence, name
	`, orderID).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderTrackerItem
		var status int
		if err = rows.Scan(&item.Name, &item.Quantity, &status); err != nil {
			return err
		}
		item.Status = order.ItemStatus(status).String()
		response.Items = append(response.Items, item)
	}
	return rows.Err()
}

func (h GetOrderTrackerQueryHandler) loadTickets(ctx context.Context, orderID uuid.UUID, response *OrderTrackerResponse) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT number, station_code, status, completed_at
		FROM kitchen_tickets
		WHERE order_id = ?
		ORDER BY created_at
	`, orderID).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tk OrderTrackerTicket
		var status int
		if err = rows.Scan(&tk.Number, &tk.StationCode, &status, &tk.CompletedAt); err != nil {
			return err
		}
		tk.Status = ticket.Status(status).String()
		response.Tickets = append(response.Tickets, tk)
	}
	return rows.Err()
}
