package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetOpenSessionQueryIsNotConstructed = errors.New(
	"GetOpenSessionQuery must be created via NewGetOpenSessionQuery constructor",
)

// GetOpenSessionQuery retrieves the cashier view of a terminal's open
// session: the session header plus its transaction totals.
type GetOpenSessionQuery struct {
	terminalID string

	guard guard.ConstructorGuard
}

// NewGetOpenSessionQuery creates an open session query.
func NewGetOpenSessionQuery(terminalID string) (GetOpenSessionQuery, error) {
	if terminalID == "" {
		return GetOpenSessionQuery{}, errs.NewValueIsRequiredError("terminalID")
	}

	return GetOpenSessionQuery{
		terminalID: terminalID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenSessionQueryIsNotConstructed)
}

// TerminalID returns the terminal whose session is being looked up.
func (q GetOpenSessionQuery) TerminalID() string { return q.terminalID }

// OpenSessionResponse is the cashier view of an open session.
// Monetary figures are in minor currency units.
type OpenSessionResponse struct {
	SessionID         kernel.UUID
	TerminalID        string
	OperatorID        string
	OpenedAt          time.Time
	OpeningFloat      int64
	CapturedTotal     int64
	CapturedCashTotal int64
	TransactionCount  int
}
