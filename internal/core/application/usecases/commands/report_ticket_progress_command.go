package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrReportTicketProgressCommandIsNotConstructed = errors.New(
	"ReportTicketProgressCommand must be created via NewReportTicketProgressCommand constructor",
)

// TicketProgress is the progress a station reports for one of its tickets.
type TicketProgress int

const (
	ProgressStarted TicketProgress = iota + 1
	ProgressCompleted
)

func (p TicketProgress) String() string {
	switch p {
	case ProgressStarted:
		return "Started"
	case ProgressCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Validate checks that the progress is one of the defined values.
func (p TicketProgress) Validate() error {
	if p != ProgressStarted && p != ProgressCompleted {
		return errs.NewValueIsInvalidError("progress")
	}
	return nil
}

// ReportTicketProgressCommand represents a station reporting work on a
// kitchen ticket. Starting work cascades the order into preparing;
// completing the last open ticket makes the order ready.
type ReportTicketProgressCommand struct { //nolint:recvcheck //using for validation
	ticketID kernel.UUID
	progress TicketProgress
	actor    string

	guard guard.ConstructorGuard
}

// NewReportTicketProgressCommand creates a command to report ticket progress.
func NewReportTicketProgressCommand(
	ticketID kernel.UUID,
	progress TicketProgress,
	actor string,
) (ReportTicketProgressCommand, error) {
	cmd := ReportTicketProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTicketID(ticketID),
		cmd.setProgress(progress),
		cmd.setActor(actor),
	); err != nil {
		return ReportTicketProgressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportTicketProgressCommand) Validate() error {
	return c.guard.Validate(ErrReportTicketProgressCommandIsNotConstructed)
}

// TicketID returns the identifier of the ticket being reported on.
func (c ReportTicketProgressCommand) TicketID() kernel.UUID { return c.ticketID }

// Progress returns the reported progress.
func (c ReportTicketProgressCommand) Progress() TicketProgress { return c.progress }

// Actor returns the identifier of the reporting station actor.
func (c ReportTicketProgressCommand) Actor() string { return c.actor }

func (c *ReportTicketProgressCommand) setTicketID(ticketID kernel.UUID) error {
	if err := ticketID.Validate(); err != nil {
		return err
	}

	c.ticketID = ticketID
	return nil
}

func (c *ReportTicketProgressCommand) setProgress(progress TicketProgress) error {
	if err := progress.Validate(); err != nil {
		return err
	}

	c.progress = progress
	return nil
}

func (c *ReportTicketProgressCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
