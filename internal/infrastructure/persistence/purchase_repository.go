package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id int64) (*inventory.Purchase, error) {
	m, err := first[models.PurchaseModel](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByInvoiceAndItem finds the line for an item on an invoice
func (r *GormPurchaseRepository) FindByInvoiceAndItem(ctx context.Context, invoiceID int64, itemID string) (*inventory.Purchase, error) {
	m, err := first[models.PurchaseModel](r.db.WithContext(ctx).
		Where("invoice_id = ? AND item_id = ?", invoiceID, itemID))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindLatestForItem finds the item's line on its most recent invoice
func (r *GormPurchaseRepository) FindLatestForItem(ctx context.Context, itemID string) (*inventory.Purchase, error) {
	var m models.PurchaseModel
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("invoice_id DESC").
		Limit(1).
		Find(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	if m.ID == 0 {
		return nil, translateError(gorm.ErrRecordNotFound)
	}
	return m.ToDomain(), nil
}

// FindAll lists every purchase ordered by ID
func (r *GormPurchaseRepository) FindAll(ctx context.Context) ([]inventory.Purchase, error) {
	var ms []models.PurchaseModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	purchases := make([]inventory.Purchase, len(ms))
	for i := range ms {
		purchases[i] = *ms[i].ToDomain()
	}
	return purchases, nil
}

// Create inserts a new purchase and sets its ID
func (r *GormPurchaseRepository) Create(ctx context.Context, p *inventory.Purchase) error {
	m := models.PurchaseModelFromDomain(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	p.ID = m.ID
	return nil
}

// Save updates an existing purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, p *inventory.Purchase) error {
	return translateError(r.db.WithContext(ctx).Save(models.PurchaseModelFromDomain(p)).Error)
}

var _ inventory.PurchaseRepository = (*GormPurchaseRepository)(nil)
