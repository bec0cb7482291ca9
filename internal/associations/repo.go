package associations

import (
	"context"
	"fmt"

	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles gym/trainer association persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to association operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new pending association.
func (r *Repository) Create(ctx context.Context, assoc *models.GymPTAssociation) error {
	if assoc == nil {
		return fmt.Errorf("association is required")
	}
	return r.db.WithContext(ctx).Create(assoc).Error
}

// FindByID loads an association.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GymPTAssociation, error) {
	var assoc models.GymPTAssociation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&assoc).Error; err != nil {
		return nil, err
	}
	return &assoc, nil
}

// FindByPair loads the association for a gym/trainer pair regardless of
// its state.
func (r *Repository) FindByPair(ctx context.Context, gymID, ptUserID uuid.UUID) (*models.GymPTAssociation, error) {
	var assoc models.GymPTAssociation
	if err := r.db.WithContext(ctx).
		Where("gym_id = ? AND pt_user_id = ?", gymID, ptUserID).
		First(&assoc).Error; err != nil {
		return nil, err
	}
	return &assoc, nil
}

// Update saves the provided association.
func (r *Repository) Update(ctx context.Context, assoc *models.GymPTAssociation) error {
	if assoc == nil {
		return fmt.Errorf("association is required")
	}
	return r.db.WithContext(ctx).Save(assoc).Error
}

func (r *Repository) list(ctx context.Context, where string, arg any, params pagination.Params) ([]models.GymPTAssociation, int64, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.GymPTAssociation{}).Where(where, arg)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.GymPTAssociation
	if err := query.
		Order("created_at ASC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListByGym pages a gym's associations in request order.
func (r *Repository) ListByGym(ctx context.Context, gymID uuid.UUID, params pagination.Params) ([]models.GymPTAssociation, int64, error) {
	return r.list(ctx, "gym_id = ?", gymID, params)
}

// ListByPT pages a trainer's associations in request order.
func (r *Repository) ListByPT(ctx context.Context, ptUserID uuid.UUID, params pagination.Params) ([]models.GymPTAssociation, int64, error) {
	return r.list(ctx, "pt_user_id = ?", ptUserID, params)
}

// ListPending pages all pending requests in request order.
func (r *Repository) ListPending(ctx context.Context, params pagination.Params) ([]models.GymPTAssociation, int64, error) {
	return r.list(ctx, "status = ?", enums.ApprovalStatusPending, params)
}
