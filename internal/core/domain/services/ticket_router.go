package services

import (
	"sort"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/ticket"
	"orderflow/internal/pkg/errs"
)

// TicketRouter splits an order's items into per-station kitchen tickets and
// aggregates ticket completion back into order readiness.
//
// Derivation is idempotent by construction: the desired ticket set is a
// pure function of the order's items, and each ticket's identity is the
// deterministic order-number/station-code pair. Reconciling the desired
// set against the stored set either creates a missing ticket or leaves an
// existing one untouched, so re-running the pass after a crash or a
// retried request cannot produce duplicates.
type TicketRouter struct{}

// NewTicketRouter creates a ticket router.
func NewTicketRouter() TicketRouter {
	return TicketRouter{}
}

// stationGroup is one station's share of an order's items.
type stationGroup struct {
	stationID   kernel.UUID
	stationCode string
	lines       []ticket.Line
}

// partition groups the order's resolved lines by station. Lines within a
// group follow the catalog preparation sequence, not arrival order.
func (TicketRouter) partition(o *order.Order) ([]stationGroup, error) {
	byStation := make(map[kernel.UUID]*stationGroup)
	var ordered []kernel.UUID

	for _, item := range o.Items() {
		if !item.IsResolved() {
			return nil, errs.NewValueIsRequiredError("catalog snapshot for item " + item.LineID().String())
		}

		group, ok := byStation[item.StationID()]
		if !ok {
			group = &stationGroup{stationID: item.StationID(), stationCode: item.StationCode()}
			byStation[item.StationID()] = group
			ordered = append(ordered, item.StationID())
		}
		group.lines = append(group.lines, ticket.Line{
			OrderLineID:  item.LineID(),
			Name:         item.Name(),
			Quantity:     item.Quantity(),
			PrepSequence: item.PrepSequence(),
		})
	}

	groups := make([]stationGroup, 0, len(byStation))
	for _, stationID := range ordered {
		group := byStation[stationID]
		sort.SliceStable(group.lines, func(i, j int) bool {
			return group.lines[i].PrepSequence < group.lines[j].PrepSequence
		})
		groups = append(groups, *group)
	}
	return groups, nil
}

// Reconcile computes the ticket changes needed to make the stored ticket
// set match the order's current items. It returns tickets to create and
// existing tickets whose state changed (amended lines, or voided because
// their station group emptied out). Existing tickets that already match
// are left untouched, which is what makes the pass an idempotent upsert.
//
// Completed tickets are never modified: their lines are finished work.
// A line added after the station's ticket completed goes onto a follow-up
// ticket carrying the next derivation generation in its number, so the
// station sees the late work without its history being rewritten. Removing
// a line a station already completed is rejected as an invalid transition.
func (r TicketRouter) Reconcile(
	o *order.Order,
	existing []*ticket.KitchenTicket,
	now time.Time,
) (toCreate, toUpdate []*ticket.KitchenTicket, err error) {
	groups, err := r.partition(o)
	if err != nil {
		return nil, nil, err
	}

	byStation := make(map[string][]*ticket.KitchenTicket, len(existing))
	for _, t := range existing {
		byStation[t.StationCode()] = append(byStation[t.StationCode()], t)
	}

	routed := make(map[string]bool, len(groups))
	for _, group := range groups {
		routed[group.stationCode] = true

		var live *ticket.KitchenTicket
		completedLines := make(map[string]bool)
		for _, t := range byStation[group.stationCode] {
			switch t.Status() {
			case ticket.Completed:
				for _, lineID := range t.OrderLineIDs() {
					completedLines[lineID.String()] = true
				}
			case ticket.Voided:
			default:
				live = t
			}
		}

		desired := make(map[string]bool, len(group.lines))
		remaining := make([]ticket.Line, 0, len(group.lines))
		for _, line := range group.lines {
			desired[line.OrderLineID.String()] = true
			if !completedLines[line.OrderLineID.String()] {
				remaining = append(remaining, line)
			}
		}
		for lineID := range completedLines {
			if !desired[lineID] {
				return nil, nil, errs.NewInvalidTransitionError(
					"ticket", ticket.Completed.String(), "line removed")
			}
		}

		switch {
		case live == nil && len(remaining) == 0:
			// Every line of this station is finished work already.
		case live == nil:
			number, numErr := ticket.DeriveFollowUpNumber(
				o.Number(), group.stationCode, len(byStation[group.stationCode])+1)
			if numErr != nil {
				return nil, nil, numErr
			}
			created, newErr := ticket.NewKitchenTicket(
				kernel.NewUUID(), number, o.ID(), group.stationID, group.stationCode, remaining, now)
			if newErr != nil {
				return nil, nil, newErr
			}
			toCreate = append(toCreate, created)
		case linesEqual(live.Lines(), remaining):
		case len(remaining) == 0:
			if voidErr := live.Void(); voidErr != nil {
				return nil, nil, voidErr
			}
			toUpdate = append(toUpdate, live)
		default:
			if replaceErr := live.ReplaceLines(remaining); replaceErr != nil {
				return nil, nil, replaceErr
			}
			toUpdate = append(toUpdate, live)
		}
	}

	// A station whose last line was removed by an amendment keeps its
	// ticket as history, voided rather than deleted. Completed work for
	// such a station cannot be taken back.
	for _, t := range existing {
		if routed[t.StationCode()] {
			continue
		}
		if t.Status() == ticket.Completed {
			return nil, nil, errs.NewInvalidTransitionError(
				"ticket", ticket.Completed.String(), "line removed")
		}
		if t.Status().IsTerminal() {
			continue
		}
		if voidErr := t.Void(); voidErr != nil {
			return nil, nil, voidErr
		}
		toUpdate = append(toUpdate, t)
	}

	return toCreate, toUpdate, nil
}

// IsOrderReady implements the fan-in rule: an order is ready iff every
// non-voided ticket has completed and at least one such ticket exists.
// Callers must evaluate this inside the same optimistic retry loop as the
// write it gates, never against an earlier read.
func (TicketRouter) IsOrderReady(tickets []*ticket.KitchenTicket) bool {
	live := 0
	for _, t := range tickets {
		switch t.Status() {
		case ticket.Voided:
			continue
		case ticket.Completed:
			live++
		default:
			return false
		}
	}
	return live > 0
}

func linesEqual(a, b []ticket.Line) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].OrderLineID.IsEqual(b[i].OrderLineID) ||
			a[i].Quantity != b[i].Quantity ||
			a[i].Name != b[i].Name ||
			a[i].PrepSequence != b[i].PrepSequence {
			return false
		}
	}
	return true
}
