package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its number
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id int64) (*inventory.Invoice, error) {
	m, err := first[models.InvoiceModel](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists every invoice ordered by number
func (r *GormInvoiceRepository) FindAll(ctx context.Context) ([]inventory.Invoice, error) {
	var ms []models.InvoiceModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	invoices := make([]inventory.Invoice, len(ms))
	for i := range ms {
		invoices[i] = *ms[i].ToDomain()
	}
	return invoices, nil
}

// MaxID returns the highest invoice number, 0 when there are none
func (r *GormInvoiceRepository) MaxID(ctx context.Context) (int64, error) {
	return maxID(ctx, r.db, &models.InvoiceModel{})
}

// Create inserts a new invoice
func (r *GormInvoiceRepository) Create(ctx context.Context, inv *inventory.Invoice) error {
	return translateError(r.db.WithContext(ctx).Create(models.InvoiceModelFromDomain(inv)).Error)
}

// Save updates an existing invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *inventory.Invoice) error {
	return translateError(r.db.WithContext(ctx).Save(models.InvoiceModelFromDomain(inv)).Error)
}

// maxID reads MAX(id) of the model's table
func maxID(ctx context.Context, db *gorm.DB, model any) (int64, error) {
	var id int64
	if err := db.WithContext(ctx).Model(model).Select("COALESCE(MAX(id), 0)").Scan(&id).Error; err != nil {
		return 0, translateError(err)
	}
	return id, nil
}

var _ inventory.InvoiceRepository = (*GormInvoiceRepository)(nil)
