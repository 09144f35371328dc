package service

import (
	"context"
)

// OrderEvent is published when a guest submits an order. Downstream
// consumers (a kitchen display, a ticket printer bridge) receive the same
// snapshot the queue stores, pre-rendered as summary lines.
type OrderEvent struct {
	RequestID    string   `json:"request_id,omitempty"` // For distributed tracing
	OrderID      string   `json:"order_id"`
	Drink        string   `json:"drink"`
	Name         string   `json:"name,omitempty"`
	Status       string   `json:"status"`
	SummaryLines []string `json:"summary_lines"`
}

// EventPublisher defines the interface for publishing order events to a
// message queue. Publishing is best-effort; the ordering flow never blocks
// on it.
type EventPublisher interface {
	// PublishOrderEvent publishes an order event.
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases publisher resources.
	Close() error
}
