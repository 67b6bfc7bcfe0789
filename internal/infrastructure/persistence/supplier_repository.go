package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id int64) (*inventory.Supplier, error) {
	m, err := first[models.SupplierModel](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByName finds a supplier by its exact name
func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*inventory.Supplier, error) {
	m, err := first[models.SupplierModel](r.db.WithContext(ctx).Where("name = ?", name))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists every supplier ordered by ID
func (r *GormSupplierRepository) FindAll(ctx context.Context) ([]inventory.Supplier, error) {
	return r.FindPage(ctx, 0, -1)
}

// FindPage lists a window of suppliers ordered by ID; a negative limit means no limit
func (r *GormSupplierRepository) FindPage(ctx context.Context, offset, limit int) ([]inventory.Supplier, error) {
	var ms []models.SupplierModel
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	suppliers := make([]inventory.Supplier, len(ms))
	for i := range ms {
		suppliers[i] = *ms[i].ToDomain()
	}
	return suppliers, nil
}

// Count returns the number of suppliers
func (r *GormSupplierRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.SupplierModel{}).Count(&n).Error; err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

// Create inserts a new supplier and sets its ID
func (r *GormSupplierRepository) Create(ctx context.Context, s *inventory.Supplier) error {
	m := models.SupplierModelFromDomain(s)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	s.ID = m.ID
	return nil
}

// Save updates an existing supplier
func (r *GormSupplierRepository) Save(ctx context.Context, s *inventory.Supplier) error {
	return translateError(r.db.WithContext(ctx).Save(models.SupplierModelFromDomain(s)).Error)
}

var _ inventory.SupplierRepository = (*GormSupplierRepository)(nil)
