package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormStockBookRepository implements StockBookRepository using GORM
type GormStockBookRepository struct {
	db *gorm.DB
}

// NewGormStockBookRepository creates a new GormStockBookRepository
func NewGormStockBookRepository(db *gorm.DB) *GormStockBookRepository {
	return &GormStockBookRepository{db: db}
}

// FindByItem finds the stock record of an item
func (r *GormStockBookRepository) FindByItem(ctx context.Context, itemID string) (*inventory.StockBook, error) {
	m, err := first[models.StockBookModel](r.db.WithContext(ctx).Where("itm_id = ?", itemID))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists every stock record ordered by item
func (r *GormStockBookRepository) FindAll(ctx context.Context) ([]inventory.StockBook, error) {
	var ms []models.StockBookModel
	if err := r.db.WithContext(ctx).Order("itm_id").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	books := make([]inventory.StockBook, len(ms))
	for i := range ms {
		books[i] = *ms[i].ToDomain()
	}
	return books, nil
}

// Create inserts a new stock record and fills its timestamps
func (r *GormStockBookRepository) Create(ctx context.Context, s *inventory.StockBook) error {
	m := models.StockBookModelFromDomain(s)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	s.Created, s.Updated = m.Created, m.Updated
	return nil
}

// Save updates an existing stock record and refreshes Updated
func (r *GormStockBookRepository) Save(ctx context.Context, s *inventory.StockBook) error {
	m := models.StockBookModelFromDomain(s)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translateError(err)
	}
	s.Updated = m.Updated
	return nil
}

var _ inventory.StockBookRepository = (*GormStockBookRepository)(nil)
