package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/ticket"
	"orderflow/internal/core/domain/services"
)

// ReportTicketProgressCommandHandler applies a station's progress report
// to the ticket and cascades it into the order. Readiness is recomputed
// inside the same transaction as the ticket write: two stations completing
// their last tickets concurrently race on the order version, and the loser
// retries against fresh state, so exactly one of them flips the order to
// ready.
type ReportTicketProgressCommandHandler struct {
	uowFactory  KitchenUoWFactory
	router      services.TicketRouter
	maxAttempts int
}

// NewReportTicketProgressCommandHandler creates a handler for ticket
// progress reports.
func NewReportTicketProgressCommandHandler(uowFactory KitchenUoWFactory, maxAttempts int) ReportTicketProgressCommandHandler {
	return ReportTicketProgressCommandHandler{
		uowFactory:  uowFactory,
		router:      services.NewTicketRouter(),
		maxAttempts: maxAttempts,
	}
}

// Handle processes the progress report.
func (h *ReportTicketProgressCommandHandler) Handle(ctx context.Context, cmd ReportTicketProgressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, "report ticket progress", h.maxAttempts, func(ctx context.Context) error {
		return h.report(ctx, cmd)
	})
}

func (h *ReportTicketProgressCommandHandler) report(ctx context.Context, cmd ReportTicketProgressCommand) error {
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ticketRepo := uow.TicketRepository()
	tk, err := ticketRepo.Get(ctx, cmd.TicketID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, tk.OrderID())
	if err != nil {
		return err
	}

	// A report against a cancelled order, or a ticket voided by
	// cancellation, is accepted without effect. The station just learns
	// late that its work is moot.
	if aggregate.Status() == order.Cancelled || tk.Status() == ticket.Voided {
		return nil
	}

	switch cmd.Progress() {
	case ProgressStarted:
		if err = tk.Start(now); err != nil {
			return err
		}
		if err = aggregate.StartPreparing(cmd.Actor(), now); err != nil {
			return err
		}
		aggregate.MarkItemsPreparing(tk.OrderLineIDs(), cmd.Actor(), now)

	case ProgressCompleted:
		if err = tk.Complete(now); err != nil {
			return err
		}
		aggregate.MarkItemsReady(tk.OrderLineIDs(), cmd.Actor(), now)

		siblings, err := ticketRepo.GetAllByOrder(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if h.router.IsOrderReady(withUpdated(siblings, tk)) {
			if err = aggregate.MarkReady(cmd.Actor(), now); err != nil {
				return err
			}
		}
	}

	if err = ticketRepo.Update(ctx, tk); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// withUpdated substitutes the freshly mutated ticket for its persisted
// copy in the loaded set.
func withUpdated(tickets []*ticket.KitchenTicket, updated *ticket.KitchenTicket) []*ticket.KitchenTicket {
	result := make([]*ticket.KitchenTicket, 0, len(tickets))
	for _, tk := range tickets {
		if tk.ID().IsEqual(updated.ID()) {
			result = append(result, updated)
			continue
		}
		result = append(result, tk)
	}
	return result
}
