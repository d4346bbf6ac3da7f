package commands

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"orderflow/internal/pkg/errs"
)

const defaultRetryAttempts = 5

// retryOnVersionConflict re-runs fn while it loses optimistic-concurrency
// races, with exponential backoff between attempts. fn must open its own
// unit of work so each attempt re-reads fresh aggregate state. Any failure
// other than a version conflict is returned as-is; once attempts are
// exhausted the last conflict is wrapped in a ConflictError.
func retryOnVersionConflict(
	ctx context.Context,
	operation string,
	maxAttempts int,
	fn func(ctx context.Context) error,
) error {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 10 * time.Millisecond
	policy.MaxInterval = 250 * time.Millisecond

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, errs.ErrVersionConflict) && attempts < maxAttempts {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(policy, ctx))

	if err != nil && errors.Is(err, errs.ErrVersionConflict) {
		return errs.NewConflictError(operation, attempts, err)
	}
	return err
}
