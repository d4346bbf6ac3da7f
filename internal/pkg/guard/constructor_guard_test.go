package guard_test

import (
	"errors"
	"testing"

	"orderflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type payment struct {
		amount int64
		guard  guard.ConstructorGuard
	}

	errPaymentNotConstructed := errors.New("payment must be created via newPayment")

	newPayment := func(amount int64) (payment, error) {
		if amount <= 0 {
			return payment{}, errors.New("amount must be positive")
		}
		return payment{amount: amount, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		p, err := newPayment(100)

		require.NoError(t, err)
		require.NoError(t, p.guard.Validate(errPaymentNotConstructed))
		assert.Equal(t, int64(100), p.amount)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p payment

		err := p.guard.Validate(errPaymentNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errPaymentNotConstructed, err)
	})
}

func TestConstructorGuard_PassedByValue(t *testing.T) {
	g := guard.NewConstructorGuard()
	testError := errors.New("test error")

	copied := g

	require.NoError(t, g.Validate(testError))
	require.NoError(t, copied.Validate(testError))
}
