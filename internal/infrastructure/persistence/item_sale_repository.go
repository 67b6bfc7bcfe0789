package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormItemSaleRepository implements ItemSaleRepository using GORM
type GormItemSaleRepository struct {
	db *gorm.DB
}

// NewGormItemSaleRepository creates a new GormItemSaleRepository
func NewGormItemSaleRepository(db *gorm.DB) *GormItemSaleRepository {
	return &GormItemSaleRepository{db: db}
}

// FindByID finds an item sale by its ID
func (r *GormItemSaleRepository) FindByID(ctx context.Context, id int64) (*inventory.ItemSale, error) {
	m, err := first[models.ItemSaleModel](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists every item sale ordered by ID
func (r *GormItemSaleRepository) FindAll(ctx context.Context) ([]inventory.ItemSale, error) {
	var ms []models.ItemSaleModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	sales := make([]inventory.ItemSale, len(ms))
	for i := range ms {
		sales[i] = *ms[i].ToDomain()
	}
	return sales, nil
}

// Create inserts a new item sale and sets its ID
func (r *GormItemSaleRepository) Create(ctx context.Context, s *inventory.ItemSale) error {
	m := models.ItemSaleModelFromDomain(s)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	s.ID = m.ID
	return nil
}

// Save updates an existing item sale
func (r *GormItemSaleRepository) Save(ctx context.Context, s *inventory.ItemSale) error {
	return translateError(r.db.WithContext(ctx).Save(models.ItemSaleModelFromDomain(s)).Error)
}

var _ inventory.ItemSaleRepository = (*GormItemSaleRepository)(nil)
