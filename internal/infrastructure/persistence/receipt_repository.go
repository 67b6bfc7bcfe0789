package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt by its number
func (r *GormReceiptRepository) FindByID(ctx context.Context, id int64) (*inventory.Receipt, error) {
	m, err := first[models.ReceiptModel](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists every receipt ordered by number
func (r *GormReceiptRepository) FindAll(ctx context.Context) ([]inventory.Receipt, error) {
	var ms []models.ReceiptModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	receipts := make([]inventory.Receipt, len(ms))
	for i := range ms {
		receipts[i] = *ms[i].ToDomain()
	}
	return receipts, nil
}

// MaxID returns the highest receipt number, 0 when there are none
func (r *GormReceiptRepository) MaxID(ctx context.Context) (int64, error) {
	return maxID(ctx, r.db, &models.ReceiptModel{})
}

// Create inserts a new receipt and fills its creation time
func (r *GormReceiptRepository) Create(ctx context.Context, rc *inventory.Receipt) error {
	m := models.ReceiptModelFromDomain(rc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	rc.Created = m.Created
	return nil
}

// Save updates an existing receipt
func (r *GormReceiptRepository) Save(ctx context.Context, rc *inventory.Receipt) error {
	return translateError(r.db.WithContext(ctx).Save(models.ReceiptModelFromDomain(rc)).Error)
}

var _ inventory.ReceiptRepository = (*GormReceiptRepository)(nil)
