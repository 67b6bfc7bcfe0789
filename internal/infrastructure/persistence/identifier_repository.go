package persistence

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormIdentifierRepository implements IdentifierRepository using GORM
type GormIdentifierRepository struct {
	db *gorm.DB
}

// NewGormIdentifierRepository creates a new GormIdentifierRepository
func NewGormIdentifierRepository(db *gorm.DB) *GormIdentifierRepository {
	return &GormIdentifierRepository{db: db}
}

// first loads one row into a model, mapping a miss to shared.ErrNotFound
func first[M any](q *gorm.DB) (*M, error) {
	var m M
	if err := q.First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

// FindByBarcode finds an identifier by its barcode
func (r *GormIdentifierRepository) FindByBarcode(ctx context.Context, barcode string) (*inventory.Identifier, error) {
	m, err := first[models.IdentifierModel](r.db.WithContext(ctx).Where("barcode = ?", barcode))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByLinkedCode finds the identifier carrying an external code
func (r *GormIdentifierRepository) FindByLinkedCode(ctx context.Context, code string) (*inventory.Identifier, error) {
	m, err := first[models.IdentifierModel](r.db.WithContext(ctx).Where("linked_code = ?", code))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// MaxBarcode returns the greatest barcode of the class.
// Barcodes of one class share a width, so the string maximum is the numeric one.
func (r *GormIdentifierRepository) MaxBarcode(ctx context.Context, class inventory.Class) (string, error) {
	q := r.db.WithContext(ctx).
		Model(&models.IdentifierModel{}).
		Where("length(barcode) = ?", class.Width())

	if digits, ok := digitsOnly(r.db); ok {
		var max sql.NullString
		if err := q.Where(digits).Select("MAX(barcode)").Row().Scan(&max); err != nil {
			return "", translateError(err)
		}
		return max.String, nil
	}

	var barcodes []string
	if err := q.Pluck("barcode", &barcodes).Error; err != nil {
		return "", translateError(err)
	}
	max := ""
	for _, b := range barcodes {
		if class.Contains(b) && b > max {
			max = b
		}
	}
	return max, nil
}

// digitsOnly returns the dialect's condition matching all-digit barcodes
func digitsOnly(db *gorm.DB) (string, bool) {
	switch db.Dialector.Name() {
	case "postgres":
		return "barcode ~ '^[0-9]+$'", true
	case "sqlite":
		return "barcode NOT GLOB '*[^0-9]*'", true
	}
	return "", false
}

// FindAllInClass lists the identifiers of one class ordered by barcode
func (r *GormIdentifierRepository) FindAllInClass(ctx context.Context, class inventory.Class) ([]inventory.Identifier, error) {
	var ms []models.IdentifierModel
	if err := r.db.WithContext(ctx).
		Where("length(barcode) = ?", class.Width()).
		Order("barcode").
		Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}

	idents := make([]inventory.Identifier, 0, len(ms))
	for i := range ms {
		if class.Contains(ms[i].Barcode) {
			idents = append(idents, *ms[i].ToDomain())
		}
	}
	return idents, nil
}

// Create inserts a new identifier
func (r *GormIdentifierRepository) Create(ctx context.Context, ident *inventory.Identifier) error {
	m := models.IdentifierModelFromDomain(ident)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	ident.Created = m.Created
	return nil
}

// SetLinkedCode replaces the external code of an identifier
func (r *GormIdentifierRepository) SetLinkedCode(ctx context.Context, barcode string, code *string) error {
	result := r.db.WithContext(ctx).
		Model(&models.IdentifierModel{}).
		Where("barcode = ?", barcode).
		Update("linked_code", code)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

var _ inventory.IdentifierRepository = (*GormIdentifierRepository)(nil)
