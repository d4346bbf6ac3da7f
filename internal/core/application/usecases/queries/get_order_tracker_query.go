package queries

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderTrackerQueryIsNotConstructed = errors.New(
	"GetOrderTrackerQuery must be created via NewGetOrderTrackerQuery constructor",
)

// GetOrderTrackerQuery retrieves the guest-facing progress view of a
// single order by its human-readable number.
type GetOrderTrackerQuery struct {
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetOrderTrackerQuery creates an order tracker query.
func NewGetOrderTrackerQuery(orderNumber string) (GetOrderTrackerQuery, error) {
	if orderNumber == "" {
		return GetOrderTrackerQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return GetOrderTrackerQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackerQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackerQueryIsNotConstructed)
}

// OrderNumber returns the number of the order being tracked.
func (q GetOrderTrackerQuery) OrderNumber() string { return q.orderNumber }

// OrderTrackerResponse is the progress view of one order.
type OrderTrackerResponse struct {
	OrderNumber string
	Status      string
	Total       int64
	UpdatedAt   time.Time
	Items       []OrderTrackerItem
	Tickets     []OrderTrackerTicket
}

// OrderTrackerItem is one line with its preparation sub-state.
type OrderTrackerItem struct {
	Name     string
	Quantity int
	Status   string
}

// OrderTrackerTicket is the progress of one station's ticket.
type OrderTrackerTicket struct {
	Number      string
	StationCode string
	Status      string
	CompletedAt *time.Time
}
