package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// InventoryStats reports point-in-time totals for the inventory gauges
type InventoryStats interface {
	CountItems(ctx context.Context) (int64, error)
	CountLocations(ctx context.Context) (int64, error)
	CountUnshelvedStock(ctx context.Context) (int64, error)
	CountOpenReceipts(ctx context.Context) (int64, error)
}

// GormInventoryStats reads the totals straight from the database
type GormInventoryStats struct {
	db *gorm.DB
}

// NewGormInventoryStats creates a new GormInventoryStats
func NewGormInventoryStats(db *gorm.DB) *GormInventoryStats {
	return &GormInventoryStats{db: db}
}

func (s *GormInventoryStats) count(ctx context.Context, model any, conds ...any) (int64, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(model)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	err := q.Count(&n).Error
	return n, err
}

// CountItems counts item templates
func (s *GormInventoryStats) CountItems(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.ItemTemplateModel{})
}

// CountLocations counts locations
func (s *GormInventoryStats) CountLocations(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.LocationModel{})
}

// CountUnshelvedStock counts stock records without a location
func (s *GormInventoryStats) CountUnshelvedStock(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.StockBookModel{}, "loc_id IS NULL")
}

// CountOpenReceipts counts receipts still open
func (s *GormInventoryStats) CountOpenReceipts(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.ReceiptModel{}, "status = ?", string(inventory.ReceiptOpen))
}

// RegisterInventoryGauges observes the inventory totals on every collection.
// The returned registration stops the callback when unregistered.
func RegisterInventoryGauges(meter metric.Meter, stats InventoryStats, logger *zap.Logger) (metric.Registration, error) {
	items, err := meter.Int64ObservableGauge("stockroom.items", metric.WithDescription("Item templates on file"))
	if err != nil {
		return nil, fmt.Errorf("failed to create items gauge: %w", err)
	}
	locations, err := meter.Int64ObservableGauge("stockroom.locations", metric.WithDescription("Shelf locations on file"))
	if err != nil {
		return nil, fmt.Errorf("failed to create locations gauge: %w", err)
	}
	unshelved, err := meter.Int64ObservableGauge("stockroom.stock.unshelved", metric.WithDescription("Stock records without a location"))
	if err != nil {
		return nil, fmt.Errorf("failed to create unshelved gauge: %w", err)
	}
	openReceipts, err := meter.Int64ObservableGauge("stockroom.receipts.open", metric.WithDescription("Receipts in OPEN status"))
	if err != nil {
		return nil, fmt.Errorf("failed to create open receipts gauge: %w", err)
	}

	gauges := []struct {
		gauge metric.Int64ObservableGauge
		read  func(context.Context) (int64, error)
	}{
		{items, stats.CountItems},
		{locations, stats.CountLocations},
		{unshelved, stats.CountUnshelvedStock},
		{openReceipts, stats.CountOpenReceipts},
	}
	return meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		for _, g := range gauges {
			n, err := g.read(ctx)
			if err != nil {
				logger.Warn("Failed to collect inventory gauge", zap.Error(err))
				continue
			}
			o.ObserveInt64(g.gauge, n)
		}
		return nil
	}, items, locations, unshelved, openReceipts)
}
