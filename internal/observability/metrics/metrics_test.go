package metrics

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("action", "created"),
		attribute.String("booking_id", "456"),
		attribute.String("entity_type", "stock"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "action" && attrs[1].Key != "action" {
		t.Fatalf("expected action to be retained")
	}
	if attrs[0].Key != "entity_type" && attrs[1].Key != "entity_type" {
		t.Fatalf("expected entity_type to be retained")
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordBookingMutation(ctx, "created")
	m.RecordBookingConflict(ctx)
	m.RecordAuditFailure(ctx, "booking")
	m.RecordPayment(ctx, "receipt")
	m.RecordLoginRateLimited(ctx, "ip")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{ServiceName: "hoteldesk"}, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}
	m.RecordBookingMutation(context.Background(), "updated")
}
