package ptusers

import (
	"context"
	"fmt"

	"github.com/easybody/easybody-backend/internal/geo"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles trainer profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to trainer profile operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new profile row together with its location.
func (r *Repository) Create(ctx context.Context, dto CreatePTUserDTO) (*models.PTUser, error) {
	pt := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(pt).Error; err != nil {
		return nil, err
	}
	return pt, nil
}

// FindByID loads a profile with its location.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PTUser, error) {
	var pt models.PTUser
	if err := r.db.WithContext(ctx).
		Preload("Location").
		Where("id = ?", id).
		First(&pt).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

// FindByUserID loads the profile owned by the given account.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.PTUser, error) {
	var pt models.PTUser
	if err := r.db.WithContext(ctx).
		Preload("Location").
		Where("user_id = ?", userID).
		First(&pt).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

// Update saves the provided profile and, if loaded, its location.
func (r *Repository) Update(ctx context.Context, pt *models.PTUser) error {
	if pt == nil {
		return fmt.Errorf("profile is required")
	}
	tx := r.db.WithContext(ctx)
	if pt.Location != nil {
		if err := tx.Save(pt.Location).Error; err != nil {
			return err
		}
		pt.LocationID = &pt.Location.ID
	}
	return tx.Save(pt).Error
}

// List returns active trainer profiles, newest first.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.PTUser, int64, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.PTUser{}).Where("active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pts []models.PTUser
	if err := query.
		Preload("Location").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&pts).Error; err != nil {
		return nil, 0, err
	}
	return pts, total, nil
}

// FindInBox returns active profiles whose location falls inside the
// rectangle. Callers still apply the exact radius check.
func (r *Repository) FindInBox(ctx context.Context, box geo.BoundingBox) ([]models.PTUser, error) {
	var pts []models.PTUser
	err := r.db.WithContext(ctx).
		Preload("Location").
		Joins("JOIN locations ON locations.id = pt_users.location_id").
		Where("pt_users.active = ?", true).
		Where("locations.latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("locations.longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Find(&pts).Error
	if err != nil {
		return nil, err
	}
	return pts, nil
}
