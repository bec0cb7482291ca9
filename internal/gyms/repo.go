package gyms

import (
	"context"
	"fmt"
	"strings"

	"github.com/easybody/easybody-backend/internal/geo"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles gym persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to gym operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new gym row together with its location.
func (r *Repository) Create(ctx context.Context, dto CreateGymDTO) (*models.Gym, error) {
	gym := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(gym).Error; err != nil {
		return nil, err
	}
	return gym, nil
}

// FindByID loads a gym with its location.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Gym, error) {
	var gym models.Gym
	if err := r.db.WithContext(ctx).
		Preload("Location").
		Where("id = ?", id).
		First(&gym).Error; err != nil {
		return nil, err
	}
	return &gym, nil
}

// Update saves the provided gym and, if loaded, its location.
func (r *Repository) Update(ctx context.Context, gym *models.Gym) error {
	if gym == nil {
		return fmt.Errorf("gym is required")
	}
	tx := r.db.WithContext(ctx)
	if gym.Location != nil {
		if err := tx.Save(gym.Location).Error; err != nil {
			return err
		}
		gym.LocationID = &gym.Location.ID
	}
	return tx.Save(gym).Error
}

// List returns active gyms, newest first.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Gym, int64, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Gym{}).Where("active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var gyms []models.Gym
	if err := query.
		Preload("Location").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&gyms).Error; err != nil {
		return nil, 0, err
	}
	return gyms, total, nil
}

// SearchByTerm returns active gyms whose name or city matches the
// query, newest first.
func (r *Repository) SearchByTerm(ctx context.Context, q string, params pagination.Params) ([]models.Gym, int64, error) {
	params = params.Normalize()

	needle := "%" + strings.ToLower(q) + "%"
	query := r.db.WithContext(ctx).
		Model(&models.Gym{}).
		Joins("LEFT JOIN locations ON locations.id = gyms.location_id").
		Where("gyms.active = ?", true).
		Where("LOWER(gyms.name) LIKE ? OR LOWER(locations.city) LIKE ?", needle, needle)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var gyms []models.Gym
	if err := query.
		Preload("Location").
		Order("gyms.created_at DESC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&gyms).Error; err != nil {
		return nil, 0, err
	}
	return gyms, total, nil
}

// FindInBox returns active gyms whose location falls inside the
// rectangle. Callers still apply the exact radius check.
func (r *Repository) FindInBox(ctx context.Context, box geo.BoundingBox) ([]models.Gym, error) {
	var gyms []models.Gym
	err := r.db.WithContext(ctx).
		Preload("Location").
		Joins("JOIN locations ON locations.id = gyms.location_id").
		Where("gyms.active = ?", true).
		Where("locations.latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("locations.longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Find(&gyms).Error
	if err != nil {
		return nil, err
	}
	return gyms, nil
}
