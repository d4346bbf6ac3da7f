package ticket_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/ticket"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newQueuedTicket(t *testing.T) *ticket.KitchenTicket {
	t.Helper()
	number, err := ticket.DeriveNumber(kernel.NewOrderNumber(testTime), "GRILL")
	require.NoError(t, err)

	tk, err := ticket.NewKitchenTicket(
		kernel.NewUUID(), number, kernel.NewUUID(), kernel.NewUUID(), "GRILL",
		[]ticket.Line{{OrderLineID: kernel.NewUUID(), Name: "Burger", Quantity: 2, PrepSequence: 1}},
		testTime,
	)
	require.NoError(t, err)
	return tk
}

func TestDeriveNumber(t *testing.T) {
	t.Run("is_deterministic_per_order_and_station", func(t *testing.T) {
		number := kernel.NewOrderNumber(testTime)

		a, err := ticket.DeriveNumber(number, "GRILL")
		require.NoError(t, err)
		b, err := ticket.DeriveNumber(number, "GRILL")
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
		assert.Equal(t, number.String()+"/GRILL", a.String())
	})

	t.Run("differs_across_stations", func(t *testing.T) {
		number := kernel.NewOrderNumber(testTime)

		grill, err := ticket.DeriveNumber(number, "GRILL")
		require.NoError(t, err)
		bar, err := ticket.DeriveNumber(number, "BAR")
		require.NoError(t, err)

		assert.False(t, grill.IsEqual(bar))
	})

	t.Run("requires_station_code", func(t *testing.T) {
		_, err := ticket.DeriveNumber(kernel.NewOrderNumber(testTime), "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestDeriveFollowUpNumber(t *testing.T) {
	t.Run("first_generation_matches_the_base_number", func(t *testing.T) {
		number := kernel.NewOrderNumber(testTime)

		base, err := ticket.DeriveNumber(number, "GRILL")
		require.NoError(t, err)
		first, err := ticket.DeriveFollowUpNumber(number, "GRILL", 1)
		require.NoError(t, err)

		assert.True(t, base.IsEqual(first))
	})

	t.Run("later_generations_carry_a_suffix", func(t *testing.T) {
		number := kernel.NewOrderNumber(testTime)

		base, err := ticket.DeriveNumber(number, "GRILL")
		require.NoError(t, err)
		second, err := ticket.DeriveFollowUpNumber(number, "GRILL", 2)
		require.NoError(t, err)
		third, err := ticket.DeriveFollowUpNumber(number, "GRILL", 3)
		require.NoError(t, err)

		assert.Equal(t, base.String()+"#2", second.String())
		assert.Equal(t, base.String()+"#3", third.String())
		assert.False(t, second.IsEqual(third))
	})

	t.Run("requires_station_code", func(t *testing.T) {
		_, err := ticket.DeriveFollowUpNumber(kernel.NewOrderNumber(testTime), "", 2)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewKitchenTicket(t *testing.T) {
	t.Run("starts_queued", func(t *testing.T) {
		tk := newQueuedTicket(t)

		assert.Equal(t, ticket.Queued, tk.Status())
		assert.Nil(t, tk.StartedAt())
		assert.Nil(t, tk.CompletedAt())
		require.NoError(t, tk.Validate())
	})

	t.Run("rejects_empty_lines", func(t *testing.T) {
		number, err := ticket.DeriveNumber(kernel.NewOrderNumber(testTime), "GRILL")
		require.NoError(t, err)

		_, err = ticket.NewKitchenTicket(
			kernel.NewUUID(), number, kernel.NewUUID(), kernel.NewUUID(), "GRILL", nil, testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var tk ticket.KitchenTicket
		require.ErrorIs(t, tk.Validate(), ticket.ErrTicketIsNotConstructed)
	})
}

func TestKitchenTicket_Progress(t *testing.T) {
	t.Run("start_then_complete", func(t *testing.T) {
		tk := newQueuedTicket(t)

		require.NoError(t, tk.Start(testTime))
		assert.Equal(t, ticket.InProgress, tk.Status())
		require.NotNil(t, tk.StartedAt())

		require.NoError(t, tk.Complete(testTime.Add(5*time.Minute)))
		assert.Equal(t, ticket.Completed, tk.Status())
		require.NotNil(t, tk.CompletedAt())
	})

	t.Run("duplicate_start_keeps_first_timestamp", func(t *testing.T) {
		tk := newQueuedTicket(t)

		require.NoError(t, tk.Start(testTime))
		first := *tk.StartedAt()
		require.NoError(t, tk.Start(testTime.Add(time.Minute)))

		assert.Equal(t, first, *tk.StartedAt())
	})

	t.Run("complete_straight_from_queued", func(t *testing.T) {
		tk := newQueuedTicket(t)

		require.NoError(t, tk.Complete(testTime))
		assert.Equal(t, ticket.Completed, tk.Status())
	})

	t.Run("completed_is_terminal", func(t *testing.T) {
		tk := newQueuedTicket(t)
		require.NoError(t, tk.Complete(testTime))

		require.ErrorIs(t, tk.Start(testTime), errs.ErrInvalidTransition)
		require.ErrorIs(t, tk.Complete(testTime), errs.ErrInvalidTransition)
		require.ErrorIs(t, tk.Void(), errs.ErrInvalidTransition)
	})
}

func TestKitchenTicket_Void(t *testing.T) {
	t.Run("void_from_queued_and_in_progress", func(t *testing.T) {
		queued := newQueuedTicket(t)
		require.NoError(t, queued.Void())
		assert.Equal(t, ticket.Voided, queued.Status())

		inProgress := newQueuedTicket(t)
		require.NoError(t, inProgress.Start(testTime))
		require.NoError(t, inProgress.Void())
		assert.Equal(t, ticket.Voided, inProgress.Status())
	})

	t.Run("voided_rejects_further_progress", func(t *testing.T) {
		tk := newQueuedTicket(t)
		require.NoError(t, tk.Void())

		require.ErrorIs(t, tk.Start(testTime), errs.ErrInvalidTransition)
	})
}

func TestKitchenTicket_ReplaceLines(t *testing.T) {
	t.Run("replaces_lines_while_open", func(t *testing.T) {
		tk := newQueuedTicket(t)
		newLines := []ticket.Line{
			{OrderLineID: kernel.NewUUID(), Name: "Burger", Quantity: 2, PrepSequence: 1},
			{OrderLineID: kernel.NewUUID(), Name: "Fries", Quantity: 1, PrepSequence: 2},
		}

		require.NoError(t, tk.ReplaceLines(newLines))
		assert.Len(t, tk.Lines(), 2)
	})

	t.Run("rejected_after_completion", func(t *testing.T) {
		tk := newQueuedTicket(t)
		require.NoError(t, tk.Complete(testTime))

		err := tk.ReplaceLines([]ticket.Line{{OrderLineID: kernel.NewUUID(), Name: "X", Quantity: 1}})
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
