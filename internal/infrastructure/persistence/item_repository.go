package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// withLinkedCode selects item columns together with the identifier's linked code
func (r *GormItemRepository) withLinkedCode(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ItemTemplateModel{}).
		Select("item_templates.*, identifiers.linked_code AS linked_code").
		Joins("JOIN identifiers ON identifiers.barcode = item_templates.identifier_id")
}

// FindByBarcode finds an item by its identifier
func (r *GormItemRepository) FindByBarcode(ctx context.Context, barcode string) (*inventory.ItemTemplate, error) {
	m, err := first[models.ItemTemplateModel](r.withLinkedCode(ctx).Where("item_templates.identifier_id = ?", barcode))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByDescription finds an item by its exact description
func (r *GormItemRepository) FindByDescription(ctx context.Context, description string) (*inventory.ItemTemplate, error) {
	m, err := first[models.ItemTemplateModel](r.withLinkedCode(ctx).Where("item_templates.description = ?", description))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists every item ordered by barcode
func (r *GormItemRepository) FindAll(ctx context.Context) ([]inventory.ItemTemplate, error) {
	var ms []models.ItemTemplateModel
	if err := r.withLinkedCode(ctx).Order("item_templates.identifier_id").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	items := make([]inventory.ItemTemplate, len(ms))
	for i := range ms {
		items[i] = *ms[i].ToDomain()
	}
	return items, nil
}

// Create inserts a new item. The identifier must already exist.
func (r *GormItemRepository) Create(ctx context.Context, item *inventory.ItemTemplate) error {
	return translateError(r.db.WithContext(ctx).Create(models.ItemTemplateModelFromDomain(item)).Error)
}

// Save updates an existing item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.ItemTemplate) error {
	return translateError(r.db.WithContext(ctx).Save(models.ItemTemplateModelFromDomain(item)).Error)
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)
