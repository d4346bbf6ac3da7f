package commands

import (
	"context"
	"encoding/json"

	"orderflow/internal/core/ports"
)

// commandOutcome is the record cached for a successfully executed command.
// Replays with the same key get the cached record back instead of a
// second execution.
type commandOutcome struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
	Status string `json:"status"`
}

// checkReplay reports whether the key was already executed successfully.
// An empty key disables deduplication for the call.
func checkReplay(ctx context.Context, g ports.IdempotencyGuard, key string) (bool, error) {
	if key == "" {
		return false, nil
	}

	_, seen, err := g.Check(ctx, key)
	if err != nil {
		return false, err
	}
	return seen, nil
}

// recordOutcome stores the successful outcome under the key.
func recordOutcome(ctx context.Context, g ports.IdempotencyGuard, key string, o commandOutcome) error {
	if key == "" {
		return nil
	}

	payload, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return g.Store(ctx, key, payload)
}
