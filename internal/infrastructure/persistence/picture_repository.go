package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormPictureRepository implements PictureRepository using GORM
type GormPictureRepository struct {
	db *gorm.DB
}

// NewGormPictureRepository creates a new GormPictureRepository
func NewGormPictureRepository(db *gorm.DB) *GormPictureRepository {
	return &GormPictureRepository{db: db}
}

// FindByID finds a picture by its ID
func (r *GormPictureRepository) FindByID(ctx context.Context, id int64) (*inventory.Picture, error) {
	m, err := first[models.PictureModel](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists every picture ordered by ID
func (r *GormPictureRepository) FindAll(ctx context.Context) ([]inventory.Picture, error) {
	var ms []models.PictureModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	pics := make([]inventory.Picture, len(ms))
	for i := range ms {
		pics[i] = *ms[i].ToDomain()
	}
	return pics, nil
}

// Create inserts a new picture and sets its ID
func (r *GormPictureRepository) Create(ctx context.Context, p *inventory.Picture) error {
	m := models.PictureModelFromDomain(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	p.ID = m.ID
	return nil
}

// Save updates an existing picture
func (r *GormPictureRepository) Save(ctx context.Context, p *inventory.Picture) error {
	return translateError(r.db.WithContext(ctx).Save(models.PictureModelFromDomain(p)).Error)
}

var _ inventory.PictureRepository = (*GormPictureRepository)(nil)
