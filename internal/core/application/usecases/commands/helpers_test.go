package commands_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/core/domain/model/ticket"
	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func draftOrderWithItems(t *testing.T, stationCodes ...string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderNumber(now), order.Takeaway, nil, now)
	require.NoError(t, err)

	for i, code := range stationCodes {
		item, err := o.AddItem(kernel.NewUUID(), 1, "waiter-1", now)
		require.NoError(t, err)
		require.NoError(t, o.ResolveItem(item.LineID(), "Item-"+code, kernel.NewMoney(1500), kernel.NewUUID(), code, i+1))
	}
	return o
}

func confirmedOrderWithTickets(t *testing.T, stationCodes ...string) (*order.Order, []*ticket.KitchenTicket) {
	t.Helper()
	o := draftOrderWithItems(t, stationCodes...)
	require.NoError(t, o.Confirm(kernel.NewMoney(0), "waiter-1", now))

	tickets, _, err := services.NewTicketRouter().Reconcile(o, nil, now)
	require.NoError(t, err)
	return o, tickets
}

func servedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, _ := confirmedOrderWithTickets(t, "GRILL")
	require.NoError(t, o.MarkReady("kitchen", now))
	require.NoError(t, o.Serve("waiter-1", now))
	return o
}

func openSession(t *testing.T) *pos.Session {
	t.Helper()
	s, err := pos.NewSession(kernel.NewUUID(), "TERM-1", "cashier-1", kernel.NewMoney(5000), now)
	require.NoError(t, err)
	return s
}

func pendingTransaction(t *testing.T, sessionID kernel.UUID, orders ...*order.Order) *pos.Transaction {
	t.Helper()
	tx, err := pos.NewTransaction(kernel.NewUUID(), sessionID, now)
	require.NoError(t, err)
	for _, o := range orders {
		require.NoError(t, tx.AttachOrder(o.ID(), o.Total()))
	}
	return tx
}
