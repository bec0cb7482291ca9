package users

import (
	"context"

	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles account persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to user operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a user by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByAuthSub loads a user by its external identity subject.
func (r *Repository) FindByAuthSub(ctx context.Context, sub string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("auth_sub = ?", sub).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
