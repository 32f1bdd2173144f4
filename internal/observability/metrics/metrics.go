package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	bookingMutations metric.Int64Counter
	bookingConflicts metric.Int64Counter
	auditFailures    metric.Int64Counter
	paymentsRecorded metric.Int64Counter
	loginRateLimited metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "hoteldesk"
	}
	meter := provider.Meter(name)

	bookingMutations, err := meter.Int64Counter("hoteldesk_booking_mutations_total")
	if err != nil {
		return nil, err
	}
	bookingConflicts, err := meter.Int64Counter("hoteldesk_booking_conflicts_total")
	if err != nil {
		return nil, err
	}
	auditFailures, err := meter.Int64Counter("hoteldesk_audit_write_failures_total")
	if err != nil {
		return nil, err
	}
	paymentsRecorded, err := meter.Int64Counter("hoteldesk_payments_recorded_total")
	if err != nil {
		return nil, err
	}
	loginRateLimited, err := meter.Int64Counter("hoteldesk_login_rate_limited_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		bookingMutations: bookingMutations,
		bookingConflicts: bookingConflicts,
		auditFailures:    auditFailures,
		paymentsRecorded: paymentsRecorded,
		loginRateLimited: loginRateLimited,
	}, nil
}

// RecordBookingMutation counts a successful create, update, restore or delete.
func (m *Metrics) RecordBookingMutation(ctx context.Context, action string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("action", strings.TrimSpace(action)))
	m.bookingMutations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordBookingConflict counts writes rejected because a service was taken.
func (m *Metrics) RecordBookingConflict(ctx context.Context) {
	if m == nil {
		return
	}
	m.bookingConflicts.Add(ctx, 1)
}

// RecordAuditFailure counts audit records that could not be written.
func (m *Metrics) RecordAuditFailure(ctx context.Context, entityType string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("entity_type", strings.TrimSpace(entityType)))
	m.auditFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordPayment counts ledger rows by kind (payment_log, receipt, refund).
func (m *Metrics) RecordPayment(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("kind", strings.TrimSpace(kind)))
	m.paymentsRecorded.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordLoginRateLimited counts rejected login attempts.
func (m *Metrics) RecordLoginRateLimited(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("reason", strings.TrimSpace(reason)))
	m.loginRateLimited.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"action":      {},
	"entity_type": {},
	"kind":        {},
	"endpoint":    {},
	"status_code": {},
	"reason":      {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
