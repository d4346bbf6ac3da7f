package ticket

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	// ErrTicketIsNotConstructed is returned when a KitchenTicket was not
	// created through NewKitchenTicket or RestoreKitchenTicket.
	ErrTicketIsNotConstructed = errors.New("KitchenTicket must be created via NewKitchenTicket or RestoreKitchenTicket")

	// ErrTicketHasNoLines is returned when deriving a ticket with no lines:
	// the router only creates tickets for non-empty station groups.
	ErrTicketHasNoLines = errs.NewValueIsRequiredError("at least one ticket line")
)

// Number is the deterministic identity of a kitchen ticket, derived from
// the parent order number and the station code: "<order number>/<station>".
// Re-deriving tickets for the same order therefore maps each station to the
// same number, which is what makes derivation an idempotent upsert.
type Number struct {
	value string
}

// DeriveNumber builds the ticket number for an order/station pair.
func DeriveNumber(orderNumber kernel.OrderNumber, stationCode string) (Number, error) {
	if err := orderNumber.Validate(); err != nil {
		return Number{}, err
	}
	if stationCode == "" {
		return Number{}, errs.NewValueIsRequiredError("station code")
	}
	return Number{value: fmt.Sprintf("%s/%s", orderNumber, stationCode)}, nil
}

// DeriveFollowUpNumber builds the number for a later ticket to the same
// station, issued when the station's earlier ticket is already terminal.
// Generation 1 is the plain DeriveNumber form; later generations carry a
// "#<n>" suffix so every derivation for the pair stays unique.
func DeriveFollowUpNumber(orderNumber kernel.OrderNumber, stationCode string, generation int) (Number, error) {
	base, err := DeriveNumber(orderNumber, stationCode)
	if err != nil {
		return Number{}, err
	}
	if generation < 2 {
		return base, nil
	}
	return Number{value: fmt.Sprintf("%s#%d", base.value, generation)}, nil
}

// NumberFromString restores a ticket number from persistence.
func NumberFromString(s string) (Number, error) {
	if s == "" {
		return Number{}, errs.NewValueIsRequiredError("ticket number")
	}
	return Number{value: s}, nil
}

// String returns the ticket number text.
func (n Number) String() string { return n.value }

// IsEqual reports whether two ticket numbers are the same.
func (n Number) IsEqual(other Number) bool { return n.value == other.value }

// Validate returns an error for the zero value.
func (n Number) Validate() error {
	if n.value == "" {
		return errs.NewValueIsRequiredError("ticket number")
	}
	return nil
}

// Line is one item line on a ticket, referencing the order line it was
// derived from. Lines keep the catalog preparation sequence so the station
// display shows them in preparation order, not arrival order.
type Line struct {
	OrderLineID  kernel.UUID
	Name         string
	Quantity     int
	PrepSequence int
}

// KitchenTicket is the aggregate root for one station's share of an order.
//
// Invariants maintained together with the router:
//   - Every line references an existing order line of the parent order.
//   - Across all non-voided tickets of an order, each order line appears
//     exactly once.
//
// Like Order, the ticket carries an optimistic version token; concurrent
// progress reports for the same ticket are serialized by version CAS.
type KitchenTicket struct {
	id          kernel.UUID
	number      Number
	orderID     kernel.UUID
	stationID   kernel.UUID
	stationCode string
	lines       []Line
	status      Status
	version     int64
	createdAt   time.Time
	startedAt   *time.Time
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewKitchenTicket derives a fresh ticket in Queued status.
// Lines must be non-empty; the router never creates empty tickets.
func NewKitchenTicket(
	id kernel.UUID,
	number Number,
	orderID, stationID kernel.UUID,
	stationCode string,
	lines []Line,
	now time.Time,
) (*KitchenTicket, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		orderID.Validate(),
		stationID.Validate(),
	); err != nil {
		return nil, err
	}
	if stationCode == "" {
		return nil, errs.NewValueIsRequiredError("station code")
	}
	if len(lines) == 0 {
		return nil, ErrTicketHasNoLines
	}

	return &KitchenTicket{
		id:          id,
		number:      number,
		orderID:     orderID,
		stationID:   stationID,
		stationCode: stationCode,
		lines:       lines,
		status:      Queued,
		createdAt:   now.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreKitchenTicket reconstructs a ticket aggregate from persistence.
func RestoreKitchenTicket(
	id kernel.UUID,
	number Number,
	orderID, stationID kernel.UUID,
	stationCode string,
	lines []Line,
	status Status,
	version int64,
	createdAt time.Time,
	startedAt, completedAt *time.Time,
) (*KitchenTicket, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		orderID.Validate(),
		stationID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &KitchenTicket{
		id:          id,
		number:      number,
		orderID:     orderID,
		stationID:   stationID,
		stationCode: stationCode,
		lines:       lines,
		status:      status,
		version:     version,
		createdAt:   createdAt,
		startedAt:   startedAt,
		completedAt: completedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the ticket was created through a constructor.
func (t *KitchenTicket) Validate() error {
	if t == nil {
		return ErrTicketIsNotConstructed
	}
	return t.guard.Validate(ErrTicketIsNotConstructed)
}

// ID returns the ticket's unique identifier.
func (t *KitchenTicket) ID() kernel.UUID { return t.id }

// Number returns the deterministic ticket number.
func (t *KitchenTicket) Number() Number { return t.number }

// OrderID returns the parent order reference.
func (t *KitchenTicket) OrderID() kernel.UUID { return t.orderID }

// StationID returns the preparation station reference.
func (t *KitchenTicket) StationID() kernel.UUID { return t.stationID }

// StationCode returns the short station code.
func (t *KitchenTicket) StationCode() string { return t.stationCode }

// Lines returns the ticket lines in presentation order.
func (t *KitchenTicket) Lines() []Line { return t.lines }

// Status returns the current ticket state.
func (t *KitchenTicket) Status() Status { return t.status }

// Version returns the optimistic-concurrency token.
func (t *KitchenTicket) Version() int64 { return t.version }

// CreatedAt returns the derivation timestamp.
func (t *KitchenTicket) CreatedAt() time.Time { return t.createdAt }

// StartedAt returns when the station started, nil if never reported.
func (t *KitchenTicket) StartedAt() *time.Time { return t.startedAt }

// CompletedAt returns when the station completed, nil while unfinished.
func (t *KitchenTicket) CompletedAt() *time.Time { return t.completedAt }

// OrderLineIDs returns the order lines this ticket covers.
func (t *KitchenTicket) OrderLineIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(t.lines))
	for _, line := range t.lines {
		ids = append(ids, line.OrderLineID)
	}
	return ids
}

// Start records the station picking up the ticket. Duplicate start reports
// are accepted without touching the started timestamp.
func (t *KitchenTicket) Start(now time.Time) error {
	newStatus, err := t.status.Start()
	if err != nil {
		return err
	}
	t.status = newStatus
	if t.startedAt == nil {
		started := now.UTC()
		t.startedAt = &started
	}
	return nil
}

// Complete records the station finishing every line on the ticket.
func (t *KitchenTicket) Complete(now time.Time) error {
	newStatus, err := t.status.Complete()
	if err != nil {
		return err
	}
	t.status = newStatus
	completed := now.UTC()
	t.completedAt = &completed
	return nil
}

// Void marks the ticket voided on order cancellation, preserving history.
func (t *KitchenTicket) Void() error {
	newStatus, err := t.status.Void()
	if err != nil {
		return err
	}
	t.status = newStatus
	return nil
}

// ReplaceLines swaps the ticket's lines during an amendment re-derivation.
// Only legal while the ticket has not completed: completed station work is
// immutable history.
func (t *KitchenTicket) ReplaceLines(lines []Line) error {
	if t.status.IsTerminal() {
		return errs.NewInvalidTransitionError("ticket", t.status.String(), "lines replaced")
	}
	if len(lines) == 0 {
		return ErrTicketHasNoLines
	}
	t.lines = lines
	return nil
}
