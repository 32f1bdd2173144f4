// Package events publishes domain events after a mutation has committed.
package events

import (
	"context"
	"time"
)

const (
	EventBookingCreated         = "booking.created"
	EventBookingUpdated         = "booking.updated"
	EventBookingRestored        = "booking.restored"
	EventBookingDeleted         = "booking.deleted"
	EventBookingPaymentRecorded = "booking.payment_recorded"
	EventPaymentDeleted         = "payment.deleted"
	EventPaymentLogRecorded     = "payment.log_recorded"
	EventStockAdjusted          = "stock.adjusted"
	EventStockLow               = "stock.low"
)

// Event is the envelope written to the broker. The routing key is Type.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	RequestID  string         `json:"requestId,omitempty"`
	ActorID    string         `json:"actorId,omitempty"`
	Payload    map[string]any `json:"payload"`
}

// Publisher delivers a single event.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

// NewNoopPublisher drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}
