package pos

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session was not created
	// through NewSession or RestoreSession.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")

	// ErrSessionIsClosed is returned for operations requiring an open session.
	ErrSessionIsClosed = errs.NewInvalidTransitionError("pos session", "Closed", "mutated")
)

// SessionStatus is the open/closed state of a POS session.
type SessionStatus int

const (
	SessionOpen SessionStatus = iota + 1
	SessionClosed
)

func (s SessionStatus) String() string {
	switch s {
	case SessionOpen:
		return "Open"
	case SessionClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Validate checks that the status is one of the defined session states.
func (s SessionStatus) Validate() error {
	if s != SessionOpen && s != SessionClosed {
		return errs.NewValueIsInvalidError("session status")
	}
	return nil
}

// Session is an operator's open working period at a terminal.
// Transactions reference the session; the session itself stores only the
// cash figures needed for the close-out reconciliation. The close-out is
// advisory: a counted/expected mismatch is recorded, never blocking.
type Session struct {
	id           kernel.UUID
	terminalID   string
	operatorID   string
	status       SessionStatus
	openingFloat kernel.Money
	closingCash  *kernel.Money
	expectedCash *kernel.Money
	openedAt     time.Time
	closedAt     *time.Time
	version      int64

	guard guard.ConstructorGuard
}

// NewSession opens a session for an operator at a terminal with an opening
// cash float. The at-most-one-open-session-per-terminal rule is enforced by
// the repository at insert time.
func NewSession(id kernel.UUID, terminalID, operatorID string, openingFloat kernel.Money, now time.Time) (*Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if terminalID == "" {
		return nil, errs.NewValueIsRequiredError("terminal id")
	}
	if operatorID == "" {
		return nil, errs.NewValueIsRequiredError("operator id")
	}
	if err := openingFloat.ValidateNonNegative("opening float"); err != nil {
		return nil, err
	}

	return &Session{
		id:           id,
		terminalID:   terminalID,
		operatorID:   operatorID,
		status:       SessionOpen,
		openingFloat: openingFloat,
		openedAt:     now.UTC(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreSession reconstructs a session aggregate from persistence.
func RestoreSession(
	id kernel.UUID,
	terminalID, operatorID string,
	status SessionStatus,
	openingFloat kernel.Money,
	closingCash, expectedCash *kernel.Money,
	openedAt time.Time,
	closedAt *time.Time,
	version int64,
) (*Session, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if terminalID == "" {
		return nil, errs.NewValueIsRequiredError("terminal id")
	}

	return &Session{
		id:           id,
		terminalID:   terminalID,
		operatorID:   operatorID,
		status:       status,
		openingFloat: openingFloat,
		closingCash:  closingCash,
		expectedCash: expectedCash,
		openedAt:     openedAt,
		closedAt:     closedAt,
		version:      version,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the session was created through a constructor.
func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// ID returns the session identifier.
func (s *Session) ID() kernel.UUID { return s.id }

// TerminalID returns the terminal this session is bound to.
func (s *Session) TerminalID() string { return s.terminalID }

// OperatorID returns the operator who opened the session.
func (s *Session) OperatorID() string { return s.operatorID }

// Status returns Open or Closed.
func (s *Session) Status() SessionStatus { return s.status }

// IsOpen reports whether transactions may still be created and voided.
func (s *Session) IsOpen() bool { return s.status == SessionOpen }

// OpeningFloat returns the cash amount in the drawer at open.
func (s *Session) OpeningFloat() kernel.Money { return s.openingFloat }

// ClosingCash returns the counted cash at close, nil while open.
func (s *Session) ClosingCash() *kernel.Money { return s.closingCash }

// ExpectedCash returns the computed expected cash at close, nil while open.
func (s *Session) ExpectedCash() *kernel.Money { return s.expectedCash }

// OpenedAt returns when the session was opened.
func (s *Session) OpenedAt() time.Time { return s.openedAt }

// ClosedAt returns when the session was closed, nil while open.
func (s *Session) ClosedAt() *time.Time { return s.closedAt }

// Version returns the optimistic-concurrency token.
func (s *Session) Version() int64 { return s.version }

// Close ends the session, recording the counted cash alongside the
// expected figure (opening float + captured cash transactions − voided
// cash transactions, computed by the caller from the transaction list).
// A mismatch between the two is recorded, not rejected.
func (s *Session) Close(countedCash, expectedCash kernel.Money, now time.Time) error {
	if !s.IsOpen() {
		return ErrSessionIsClosed
	}
	if err := countedCash.ValidateNonNegative("counted cash"); err != nil {
		return err
	}

	s.status = SessionClosed
	s.closingCash = &countedCash
	s.expectedCash = &expectedCash
	closed := now.UTC()
	s.closedAt = &closed
	return nil
}

// CashVariance returns counted − expected after close; zero while open.
func (s *Session) CashVariance() kernel.Money {
	if s.closingCash == nil || s.expectedCash == nil {
		return kernel.Zero()
	}
	return s.closingCash.Sub(*s.expectedCash)
}
