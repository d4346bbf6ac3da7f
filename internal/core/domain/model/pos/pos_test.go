package pos_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

func newOpenSession(t *testing.T) *pos.Session {
	t.Helper()
	s, err := pos.NewSession(kernel.NewUUID(), "POS-1", "cashier-1", kernel.NewMoney(10000), testTime)
	require.NoError(t, err)
	return s
}

func newPendingTransaction(t *testing.T) *pos.Transaction {
	t.Helper()
	tx, err := pos.NewTransaction(kernel.NewUUID(), kernel.NewUUID(), testTime)
	require.NoError(t, err)
	return tx
}

func TestSession(t *testing.T) {
	t.Run("opens_with_float", func(t *testing.T) {
		s := newOpenSession(t)

		assert.True(t, s.IsOpen())
		assert.Equal(t, int64(10000), s.OpeningFloat().Amount())
		assert.Nil(t, s.ClosedAt())
	})

	t.Run("requires_terminal_and_operator", func(t *testing.T) {
		_, err := pos.NewSession(kernel.NewUUID(), "", "cashier-1", kernel.Zero(), testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = pos.NewSession(kernel.NewUUID(), "POS-1", "", kernel.Zero(), testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("close_records_variance_without_blocking", func(t *testing.T) {
		s := newOpenSession(t)

		// Counted 5 short of expected: recorded, not rejected.
		require.NoError(t, s.Close(kernel.NewMoney(12495), kernel.NewMoney(12500), testTime.Add(8*time.Hour)))

		assert.False(t, s.IsOpen())
		assert.Equal(t, int64(-5), s.CashVariance().Amount())
		require.NotNil(t, s.ClosedAt())
	})

	t.Run("double_close_rejected", func(t *testing.T) {
		s := newOpenSession(t)
		require.NoError(t, s.Close(kernel.Zero(), kernel.Zero(), testTime))

		err := s.Close(kernel.Zero(), kernel.Zero(), testTime)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestTransaction_Attach(t *testing.T) {
	t.Run("accumulates_orders_total", func(t *testing.T) {
		tx := newPendingTransaction(t)

		require.NoError(t, tx.AttachOrder(kernel.NewUUID(), kernel.NewMoney(1500)))
		require.NoError(t, tx.AttachOrder(kernel.NewUUID(), kernel.NewMoney(2500)))

		assert.Equal(t, int64(4000), tx.Total().Amount())
		assert.Len(t, tx.OrderIDs(), 2)
	})

	t.Run("rejects_duplicate_order", func(t *testing.T) {
		tx := newPendingTransaction(t)
		orderID := kernel.NewUUID()
		require.NoError(t, tx.AttachOrder(orderID, kernel.NewMoney(1500)))

		err := tx.AttachOrder(orderID, kernel.NewMoney(1500))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("discount_reduces_total", func(t *testing.T) {
		tx := newPendingTransaction(t)
		require.NoError(t, tx.AttachOrder(kernel.NewUUID(), kernel.NewMoney(2000)))

		require.NoError(t, tx.ApplyDiscount(kernel.NewMoney(300)))

		assert.Equal(t, int64(1700), tx.Total().Amount())
	})
}

func TestTransaction_Capture(t *testing.T) {
	t.Run("exact_amount_captures", func(t *testing.T) {
		tx := newPendingTransaction(t)
		require.NoError(t, tx.AttachOrder(kernel.NewUUID(), kernel.NewMoney(1500)))

		require.NoError(t, tx.Capture(kernel.NewMoney(1500), pos.PaymentCash, 0, testTime))

		assert.Equal(t, pos.TransactionCaptured, tx.Status())
		assert.True(t, tx.IsCashCapture())
		require.NotNil(t, tx.CapturedAt())
	})

	t.Run("one_minor_unit_short_fails", func(t *testing.T) {
		tx := newPendingTransaction(t)
		require.NoError(t, tx.AttachOrder(kernel.NewUUID(), kernel.NewMoney(1500)))

		err := tx.Capture(kernel.NewMoney(1499), pos.PaymentCash, 0, testTime)

		require.ErrorIs(t, err, errs.ErrAmountMismatch)
		assert.Equal(t, pos.TransactionPending, tx.Status())
	})

	t.Run("tolerance_covers_rounding_only", func(t *testing.T) {
		tx := newPendingTransaction(t)
		require.NoError(t, tx.AttachOrder(kernel.NewUUID(), kernel.NewMoney(1500)))

		require.NoError(t, tx.Capture(kernel.NewMoney(1499), pos.PaymentCash, 1, testTime))
	})

	t.Run("empty_transaction_cannot_capture", func(t *testing.T) {
		tx := newPendingTransaction(t)

		err := tx.Capture(kernel.NewMoney(100), pos.PaymentCard, 0, testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("double_capture_rejected", func(t *testing.T) {
		tx := newPendingTransaction(t)
		require.NoError(t, tx.AttachOrder(kernel.NewUUID(), kernel.NewMoney(1500)))
		require.NoError(t, tx.Capture(kernel.NewMoney(1500), pos.PaymentCard, 0, testTime))

		err := tx.Capture(kernel.NewMoney(1500), pos.PaymentCard, 0, testTime)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestTransaction_Void(t *testing.T) {
	t.Run("void_pending_and_captured", func(t *testing.T) {
		pending := newPendingTransaction(t)
		require.NoError(t, pending.Void())
		assert.True(t, pending.IsVoided())

		captured := newPendingTransaction(t)
		require.NoError(t, captured.AttachOrder(kernel.NewUUID(), kernel.NewMoney(1000)))
		require.NoError(t, captured.Capture(kernel.NewMoney(1000), pos.PaymentCash, 0, testTime))
		require.NoError(t, captured.Void())
		assert.True(t, captured.IsVoided())
		assert.False(t, captured.IsCashCapture())
	})

	t.Run("double_void_rejected", func(t *testing.T) {
		tx := newPendingTransaction(t)
		require.NoError(t, tx.Void())

		require.ErrorIs(t, tx.Void(), errs.ErrInvalidTransition)
	})

	t.Run("voided_rejects_attach", func(t *testing.T) {
		tx := newPendingTransaction(t)
		require.NoError(t, tx.Void())

		err := tx.AttachOrder(kernel.NewUUID(), kernel.NewMoney(100))
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
