package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	invapp "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/config"
)

const (
	meterName             = "github.com/stockroom/backend"
	defaultExportInterval = 60 * time.Second
)

// MeterProvider wraps the OpenTelemetry MeterProvider with lifecycle management.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider exports metrics over OTLP gRPC on a fixed interval.
// When metrics are disabled the global no-op meter is used.
func NewMeterProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.MetricsEnabled {
		logger.Info("Metrics disabled, using no-op meter provider")
		return mp, nil
	}

	interval := cfg.MetricsInterval
	if interval <= 0 {
		interval = defaultExportInterval
	}
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}
	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(mp.provider)
	logger.Info("OpenTelemetry MeterProvider initialized", zap.Duration("export_interval", interval))
	return mp, nil
}

// Meter returns a named meter from the provider.
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

// Shutdown flushes pending metrics
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := mp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

// InventoryMetrics counts minted identifiers and created records
type InventoryMetrics struct {
	identifiers metric.Int64Counter
	created     metric.Int64Counter
}

var _ invapp.Metrics = (*InventoryMetrics)(nil)

// NewInventoryMetrics registers the inventory counters on meter
func NewInventoryMetrics(meter metric.Meter) (*InventoryMetrics, error) {
	identifiers, err := meter.Int64Counter("stockroom.identifiers.minted",
		metric.WithDescription("Barcodes allocated, by class"),
		metric.WithUnit("{identifier}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create identifiers counter: %w", err)
	}
	created, err := meter.Int64Counter("stockroom.records.created",
		metric.WithDescription("Inventory records created, by entity"),
		metric.WithUnit("{record}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create records counter: %w", err)
	}
	return &InventoryMetrics{identifiers: identifiers, created: created}, nil
}

// IdentifierMinted counts one allocated barcode
func (m *InventoryMetrics) IdentifierMinted(ctx context.Context, class inventory.IdentType) {
	m.identifiers.Add(ctx, 1, metric.WithAttributes(attribute.String("class", string(class))))
}

// RecordCreated counts one created record of entity
func (m *InventoryMetrics) RecordCreated(ctx context.Context, entity string) {
	m.created.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
}
