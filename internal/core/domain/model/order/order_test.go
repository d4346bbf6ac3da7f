package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newDraftOrder(t *testing.T) *order.Order {
	t.Helper()
	table := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderNumber(testTime), order.DineIn, &table, testTime)
	require.NoError(t, err)
	return o
}

// addResolvedItem adds a line and applies a catalog snapshot, mimicking the
// confirmation flow.
func addResolvedItem(t *testing.T, o *order.Order, qty int, priceMinor int64, stationCode string) *order.Item {
	t.Helper()
	item, err := o.AddItem(kernel.NewUUID(), qty, "waiter-1", testTime)
	require.NoError(t, err)
	require.NoError(t, o.ResolveItem(
		item.LineID(), "Item "+item.LineID().String()[:4], kernel.NewMoney(priceMinor), kernel.NewUUID(), stationCode, 1))
	return item
}

func TestNewOrder(t *testing.T) {
	t.Run("dine_in_requires_table", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderNumber(testTime), order.DineIn, nil, testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("takeaway_rejects_table", func(t *testing.T) {
		table := kernel.NewUUID()
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderNumber(testTime), order.Takeaway, &table, testTime)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("starts_as_draft_with_zero_totals", func(t *testing.T) {
		o := newDraftOrder(t)

		assert.Equal(t, order.Draft, o.Status())
		assert.True(t, o.Total().IsZero())
		assert.Empty(t, o.Items())
		require.NoError(t, o.Validate())
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Confirm(t *testing.T) {
	t.Run("rejects_empty_order", func(t *testing.T) {
		o := newDraftOrder(t)
		err := o.Confirm(kernel.Zero(), "waiter-1", testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_unresolved_items", func(t *testing.T) {
		o := newDraftOrder(t)
		_, err := o.AddItem(kernel.NewUUID(), 1, "waiter-1", testTime)
		require.NoError(t, err)

		err = o.Confirm(kernel.Zero(), "waiter-1", testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("computes_totals_from_snapshots", func(t *testing.T) {
		o := newDraftOrder(t)
		addResolvedItem(t, o, 2, 1250, "GRILL") // 25.00
		addResolvedItem(t, o, 1, 500, "BAR")    // 5.00

		require.NoError(t, o.Confirm(kernel.NewMoney(300), "waiter-1", testTime))

		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, int64(3000), o.Subtotal().Amount())
		assert.Equal(t, int64(3300), o.Total().Amount())
	})

	t.Run("total_invariant_holds_after_discount", func(t *testing.T) {
		o := newDraftOrder(t)
		addResolvedItem(t, o, 2, 1250, "GRILL")
		require.NoError(t, o.Confirm(kernel.NewMoney(250), "waiter-1", testTime))

		require.NoError(t, o.ApplyDiscount(kernel.NewMoney(500), "manager-1", testTime))

		want := o.Subtotal().Add(o.Tax()).Sub(o.Discount())
		assert.True(t, o.Total().IsEqual(want))
		assert.Equal(t, int64(2250), o.Total().Amount())
	})
}

func TestOrder_Amendments(t *testing.T) {
	t.Run("add_item_after_confirmation_updates_totals", func(t *testing.T) {
		o := newDraftOrder(t)
		addResolvedItem(t, o, 1, 1000, "GRILL")
		require.NoError(t, o.Confirm(kernel.Zero(), "waiter-1", testTime))

		item, err := o.AddItem(kernel.NewUUID(), 1, "waiter-1", testTime)
		require.NoError(t, err)
		require.NoError(t, o.ResolveItem(item.LineID(), "Late add", kernel.NewMoney(700), kernel.NewUUID(), "BAR", 2))

		assert.Len(t, o.UnresolvedItems(), 0)
		assert.Equal(t, int64(1700), o.Subtotal().Amount())
	})

	t.Run("remove_pending_item", func(t *testing.T) {
		o := newDraftOrder(t)
		keep := addResolvedItem(t, o, 1, 1000, "GRILL")
		drop := addResolvedItem(t, o, 1, 700, "BAR")
		require.NoError(t, o.Confirm(kernel.Zero(), "waiter-1", testTime))

		require.NoError(t, o.RemoveItem(drop.LineID(), "waiter-1", testTime))

		require.Len(t, o.Items(), 1)
		assert.True(t, o.Items()[0].LineID().IsEqual(keep.LineID()))
		assert.Equal(t, int64(1000), o.Total().Amount())
	})

	t.Run("remove_completed_item_is_rejected", func(t *testing.T) {
		o := newDraftOrder(t)
		done := addResolvedItem(t, o, 1, 1000, "GRILL")
		require.NoError(t, o.Confirm(kernel.Zero(), "waiter-1", testTime))
		o.MarkItemsReady([]kernel.UUID{done.LineID()}, "grill-1", testTime)

		err := o.RemoveItem(done.LineID(), "waiter-1", testTime)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Len(t, o.Items(), 1)
	})

	t.Run("remove_unknown_line", func(t *testing.T) {
		o := newDraftOrder(t)
		addResolvedItem(t, o, 1, 1000, "GRILL")

		err := o.RemoveItem(kernel.NewUUID(), "waiter-1", testTime)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("no_amendments_after_served", func(t *testing.T) {
		o := newDraftOrder(t)
		addResolvedItem(t, o, 1, 1000, "GRILL")
		require.NoError(t, o.Confirm(kernel.Zero(), "waiter-1", testTime))
		require.NoError(t, o.StartPreparing("grill-1", testTime))
		require.NoError(t, o.MarkReady("grill-1", testTime))
		require.NoError(t, o.Serve("waiter-1", testTime))

		_, err := o.AddItem(kernel.NewUUID(), 1, "waiter-1", testTime)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_ItemSubStates(t *testing.T) {
	o := newDraftOrder(t)
	grill := addResolvedItem(t, o, 1, 1000, "GRILL")
	bar := addResolvedItem(t, o, 1, 500, "BAR")
	require.NoError(t, o.Confirm(kernel.Zero(), "waiter-1", testTime))

	o.MarkItemsPreparing([]kernel.UUID{grill.LineID()}, "grill-1", testTime)

	assert.Equal(t, order.ItemPreparing, o.Items()[0].Status())
	assert.Equal(t, order.ItemPending, o.Items()[1].Status())

	o.MarkItemsReady([]kernel.UUID{grill.LineID(), bar.LineID()}, "kitchen", testTime)

	assert.Equal(t, order.ItemReady, o.Items()[0].Status())
	assert.Equal(t, order.ItemReady, o.Items()[1].Status())
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("full_happy_path", func(t *testing.T) {
		o := newDraftOrder(t)
		addResolvedItem(t, o, 1, 1000, "GRILL")

		require.NoError(t, o.Confirm(kernel.Zero(), "waiter-1", testTime))
		require.NoError(t, o.StartPreparing("grill-1", testTime))
		require.NoError(t, o.MarkReady("grill-1", testTime))
		require.NoError(t, o.Serve("waiter-1", testTime))
		require.NoError(t, o.Settle("cashier-1", testTime))

		assert.Equal(t, order.Settled, o.Status())
		assert.Equal(t, "cashier-1", o.LastActor())
	})

	t.Run("cancel_before_served", func(t *testing.T) {
		o := newDraftOrder(t)
		addResolvedItem(t, o, 1, 1000, "GRILL")
		require.NoError(t, o.Confirm(kernel.Zero(), "waiter-1", testTime))
		require.NoError(t, o.StartPreparing("grill-1", testTime))

		require.NoError(t, o.Cancel("waiter-1", testTime))

		assert.Equal(t, order.Cancelled, o.Status())
		require.ErrorIs(t, o.MarkReady("grill-1", testTime), errs.ErrInvalidTransition)
	})

	t.Run("reopen_after_void", func(t *testing.T) {
		o := newDraftOrder(t)
		addResolvedItem(t, o, 1, 1000, "GRILL")
		require.NoError(t, o.Confirm(kernel.Zero(), "waiter-1", testTime))
		require.NoError(t, o.StartPreparing("g", testTime))
		require.NoError(t, o.MarkReady("g", testTime))
		require.NoError(t, o.Serve("w", testTime))
		require.NoError(t, o.Settle("c", testTime))

		require.NoError(t, o.Reopen("c", testTime))

		assert.Equal(t, order.Served, o.Status())
	})
}
