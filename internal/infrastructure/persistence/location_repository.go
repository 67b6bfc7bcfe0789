package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByBarcode finds a location by its identifier
func (r *GormLocationRepository) FindByBarcode(ctx context.Context, barcode string) (*inventory.Location, error) {
	m, err := first[models.LocationModel](r.db.WithContext(ctx).Where("identifier_id = ?", barcode))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByName finds a location by its exact name
func (r *GormLocationRepository) FindByName(ctx context.Context, name string) (*inventory.Location, error) {
	m, err := first[models.LocationModel](r.db.WithContext(ctx).Where("name = ?", name))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists every location ordered by barcode
func (r *GormLocationRepository) FindAll(ctx context.Context) ([]inventory.Location, error) {
	return r.FindPage(ctx, 0, -1)
}

// FindPage lists a window of locations ordered by barcode; a negative limit means no limit
func (r *GormLocationRepository) FindPage(ctx context.Context, offset, limit int) ([]inventory.Location, error) {
	var ms []models.LocationModel
	if err := r.db.WithContext(ctx).
		Order("identifier_id").
		Offset(offset).
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	locs := make([]inventory.Location, len(ms))
	for i := range ms {
		locs[i] = *ms[i].ToDomain()
	}
	return locs, nil
}

// Count returns the number of locations
func (r *GormLocationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.LocationModel{}).Count(&n).Error; err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

// Create inserts a new location
func (r *GormLocationRepository) Create(ctx context.Context, loc *inventory.Location) error {
	return translateError(r.db.WithContext(ctx).Create(models.LocationModelFromDomain(loc)).Error)
}

// Save updates an existing location
func (r *GormLocationRepository) Save(ctx context.Context, loc *inventory.Location) error {
	return translateError(r.db.WithContext(ctx).Save(models.LocationModelFromDomain(loc)).Error)
}

var _ inventory.LocationRepository = (*GormLocationRepository)(nil)
