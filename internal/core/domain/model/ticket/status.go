package ticket

import "orderflow/internal/pkg/errs"

// Status represents the lifecycle state of a kitchen ticket.
//
// State transitions:
//
//	Queued ──> InProgress ──> Completed
//	  │            │
//	  └────────────┴──> Voided (order cancelled)
//
// Completed and Voided are terminal. A station may report completion
// without an observed start, so Queued -> Completed is also legal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Queued means the ticket is waiting for the station to pick it up.
	Queued

	// InProgress means the station has started preparing the items.
	InProgress

	// Completed means every item on the ticket is ready. Terminal.
	Completed

	// Voided means the parent order was cancelled before completion.
	// Terminal; voided tickets are kept for history, never deleted.
	Voided
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Queued:     "Queued",
		InProgress: "InProgress",
		Completed:  "Completed",
		Voided:     "Voided",
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the status is one of the defined states.
func (s Status) Validate() error {
	if s <= Unknown || s > Voided {
		return errs.NewValueIsInvalidError("ticket status")
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Voided
}

// Start transitions Queued to InProgress. Already in-progress is a no-op
// transition so duplicate start reports from a station display are harmless.
func (s Status) Start() (Status, error) {
	if s != Queued && s != InProgress {
		return Unknown, errs.NewInvalidTransitionError("ticket", s.String(), InProgress.String())
	}
	return InProgress, nil
}

// Complete transitions Queued or InProgress to Completed.
func (s Status) Complete() (Status, error) {
	if s != Queued && s != InProgress {
		return Unknown, errs.NewInvalidTransitionError("ticket", s.String(), Completed.String())
	}
	return Completed, nil
}

// Void transitions Queued or InProgress to Voided.
func (s Status) Void() (Status, error) {
	if s != Queued && s != InProgress {
		return Unknown, errs.NewInvalidTransitionError("ticket", s.String(), Voided.String())
	}
	return Voided, nil
}
