package persistence

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/accounts"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*accounts.User, error) {
	m, err := first[models.UserModel](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByUsername finds a user by username, ignoring case
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*accounts.User, error) {
	m, err := first[models.UserModel](r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// Create creates a new user and sets its ID
func (r *GormUserRepository) Create(ctx context.Context, user *accounts.User) error {
	model := models.UserModelFromDomain(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	user.ID = model.ID
	return nil
}

// Save updates an existing user
func (r *GormUserRepository) Save(ctx context.Context, user *accounts.User) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserModel{ID: user.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(models.UserModelFromDomain(user))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ accounts.UserRepository = (*GormUserRepository)(nil)
