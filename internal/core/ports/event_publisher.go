package ports

import "context"

// Event is a status-change notification emitted after a committed write.
// Version lets consumers drop stale events that arrive out of order.
type Event struct {
	EntityType string
	EntityID   string
	Status     string
	Version    int64
}

// EventPublisher delivers status-change events to interested consumers.
// Publishing is best-effort: a failed publish must not fail the command
// that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
