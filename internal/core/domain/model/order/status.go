package order

import (
	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions so orders follow the correct business
// workflow.
//
// State transitions:
//
//	Draft ──> Confirmed ──> Preparing ──> Ready ──> Served ──> Settled
//	  │            │             │           │
//	  └────────────┴─────────────┴───────────┴──> Cancelled
//
// Settled and Cancelled are terminal. Preparing and Ready are derived from
// kitchen ticket progress, never set directly by a client request.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status: items may still be added freely and no
	// kitchen tickets exist yet.
	Draft

	// Confirmed means items and totals passed validation and tickets have
	// been (or are being) derived for the kitchen stations.
	Confirmed

	// Preparing means at least one derived ticket has started.
	Preparing

	// Ready means every non-voided ticket for the order has completed.
	Ready

	// Served records physical delivery to the customer or table.
	Served

	// Settled means the order's settlement transaction was captured.
	// Terminal.
	Settled

	// Cancelled means the order was abandoned before being served.
	// Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Draft:     "Draft",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Served:    "Served",
		Settled:   "Settled",
		Cancelled: "Cancelled",
	}
}

// String returns the human-readable name of the status.
// Safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidError("order status")
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Settled || s == Cancelled
}

// Confirm transitions Draft to Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Draft {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Confirmed.String())
	}
	return Confirmed, nil
}

// StartPreparing transitions to Preparing when the first ticket starts.
// Already-preparing is a valid no-op transition: several tickets may start
// independently.
func (s Status) StartPreparing() (Status, error) {
	if s != Confirmed && s != Preparing {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Preparing.String())
	}
	return Preparing, nil
}

// MarkReady transitions to Ready once every non-voided ticket completed.
// Confirmed is a legal origin: a single-station order can complete without
// an observed in-progress report.
func (s Status) MarkReady() (Status, error) {
	if s != Preparing && s != Confirmed {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Ready.String())
	}
	return Ready, nil
}

// Serve transitions Ready to Served.
func (s Status) Serve() (Status, error) {
	if s != Ready {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Served.String())
	}
	return Served, nil
}

// Settle transitions Served to Settled. An order cannot be settled while
// it is still being prepared.
func (s Status) Settle() (Status, error) {
	if s != Served {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Settled.String())
	}
	return Settled, nil
}

// Reopen reverts Settled to Served when the settling transaction is voided,
// so the order can be re-settled.
func (s Status) Reopen() (Status, error) {
	if s != Settled {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Served.String())
	}
	return Served, nil
}

// Cancel transitions any pre-served state to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s == Served || s.IsTerminal() || s == Unknown {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
