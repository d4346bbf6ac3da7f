package ports

import "context"

// IdempotencyGuard deduplicates externally retried commands by client key.
// Only successful outcomes are stored: a failed command leaves no record,
// so the client may retry it with the same key.
type IdempotencyGuard interface {
	// Check looks up the stored outcome for a key. The second return value
	// reports whether the key was seen before.
	Check(ctx context.Context, key string) ([]byte, bool, error)

	// Store records the outcome of a successfully executed command.
	Store(ctx context.Context, key string, outcome []byte) error
}
