package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormPriceRepository implements PriceRepository using GORM
type GormPriceRepository struct {
	db *gorm.DB
}

// NewGormPriceRepository creates a new GormPriceRepository
func NewGormPriceRepository(db *gorm.DB) *GormPriceRepository {
	return &GormPriceRepository{db: db}
}

// FindByItem finds the price record of an item
func (r *GormPriceRepository) FindByItem(ctx context.Context, itemID string) (*inventory.Price, error) {
	m, err := first[models.PriceModel](r.db.WithContext(ctx).Where("itm_id = ?", itemID))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists every price ordered by item
func (r *GormPriceRepository) FindAll(ctx context.Context) ([]inventory.Price, error) {
	var ms []models.PriceModel
	if err := r.db.WithContext(ctx).Order("itm_id").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	prices := make([]inventory.Price, len(ms))
	for i := range ms {
		prices[i] = *ms[i].ToDomain()
	}
	return prices, nil
}

// Create inserts a new price record and fills its timestamps
func (r *GormPriceRepository) Create(ctx context.Context, p *inventory.Price) error {
	m := models.PriceModelFromDomain(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	p.Created, p.Updated = m.Created, m.Updated
	return nil
}

// Save updates an existing price record and refreshes Updated
func (r *GormPriceRepository) Save(ctx context.Context, p *inventory.Price) error {
	m := models.PriceModelFromDomain(p)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translateError(err)
	}
	p.Updated = m.Updated
	return nil
}

var _ inventory.PriceRepository = (*GormPriceRepository)(nil)
