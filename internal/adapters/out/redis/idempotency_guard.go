// Package redis implements the idempotency guard on top of Redis.
// Outcomes are stored under a prefixed key with a TTL, so a client retrying
// a command within the window gets the recorded outcome instead of a
// duplicate execution.
package redis

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "idem:"
	defaultTTL = 24 * time.Hour
)

// IdempotencyGuard implements ports.IdempotencyGuard using a Redis client.
type IdempotencyGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyGuard creates a guard on the given client. A non-positive
// ttl falls back to 24 hours.
func NewIdempotencyGuard(client *redis.Client, ttl time.Duration) (*IdempotencyGuard, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &IdempotencyGuard{
		client: client,
		ttl:    ttl,
	}, nil
}

// Check looks up the stored outcome for a key.
func (g *IdempotencyGuard) Check(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errs.NewValueIsRequiredError("key")
	}

	outcome, err := g.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return outcome, true, nil
}

// Store records the outcome of a successfully executed command. The first
// writer wins; SetNX keeps a concurrent duplicate from overwriting the
// recorded outcome.
func (g *IdempotencyGuard) Store(ctx context.Context, key string, outcome []byte) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}

	return g.client.SetNX(ctx, keyPrefix+key, outcome, g.ttl).Err()
}
