// Package rabbitmq implements the event publisher on a RabbitMQ topic
// exchange. Each status change becomes one persistent JSON message routed by
// "<entity_type>.<status>", so consumers can bind to exactly the changes
// they care about, e.g. "kitchen_ticket.*" for a kitchen display.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "pos.events"

// EventPublisher implements ports.EventPublisher over an AMQP channel.
type EventPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewEventPublisher dials the broker and declares the topic exchange.
func NewEventPublisher(url string) (*EventPublisher, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchangeName, err)
	}

	return &EventPublisher{
		conn: conn,
		ch:   ch,
	}, nil
}

type eventMessage struct {
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Status     string    `json:"status"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publish sends one status-change event to the topic exchange.
func (p *EventPublisher) Publish(ctx context.Context, event ports.Event) error {
	body, err := json.Marshal(eventMessage{
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Status:     event.Status,
		Version:    event.Version,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx, exchangeName, routingKey(event), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Body:         body,
	})
}

// Close releases the channel and connection.
func (p *EventPublisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func routingKey(event ports.Event) string {
	return event.EntityType + "." + strings.ToLower(event.Status)
}
