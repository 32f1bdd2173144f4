package events

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	auditcontext "github.com/smallbiznis/hoteldesk/internal/auditcontext"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

// Outbox stamps events and hands them to the publisher. Delivery is best
// effort: failures are logged and never returned to the caller.
type Outbox struct {
	publisher Publisher
	clock     clock.Clock
	log       *zap.Logger
}

func NewOutbox(publisher Publisher, clk clock.Clock, log *zap.Logger) *Outbox {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	if clk == nil {
		clk = clock.System()
	}
	return &Outbox{
		publisher: publisher,
		clock:     clk,
		log:       log.Named("events.outbox"),
	}
}

func (o *Outbox) Publish(ctx context.Context, eventType string, payload map[string]any) {
	if o == nil {
		return
	}
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return
	}

	now := o.clock.Now()
	event := Event{
		ID:         ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Type:       eventType,
		OccurredAt: now,
		RequestID:  auditcontext.RequestIDFromContext(ctx),
		Payload:    payload,
	}
	if actor, ok := auditcontext.ActorFromContext(ctx); ok {
		event.ActorID = actor.ID
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := o.publisher.Publish(publishCtx, event); err != nil {
		o.log.Warn("failed to publish event",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
			zap.Error(err),
		)
	}
}
