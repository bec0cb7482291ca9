package ratings

import (
	"context"
	"fmt"

	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles rating persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to rating operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByOfferAndClient loads the caller's existing rating for an offer.
func (r *Repository) FindByOfferAndClient(ctx context.Context, offerID, clientID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("offer_id = ? AND client_user_id = ?", offerID, clientID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByOffer pages ratings for one offer, newest first.
func (r *Repository) ListByOffer(ctx context.Context, offerID uuid.UUID, params pagination.Params) ([]models.Rating, int64, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Rating{}).Where("offer_id = ?", offerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ratings []models.Rating
	if err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&ratings).Error; err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

// CreateWithTx persists a rating inside the caller's transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, rating *models.Rating) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if rating == nil {
		return fmt.Errorf("rating is required")
	}
	return tx.Create(rating).Error
}

// StatsWithTx aggregates score count and sum for one offer inside the
// caller's transaction.
func (r *Repository) StatsWithTx(tx *gorm.DB, offerID uuid.UUID) (int64, int64, error) {
	if tx == nil {
		return 0, 0, gorm.ErrInvalidTransaction
	}
	var stats struct {
		Count int64
		Sum   int64
	}
	err := tx.Model(&models.Rating{}).
		Select("COUNT(*) AS count, COALESCE(SUM(score), 0) AS sum").
		Where("offer_id = ?", offerID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}
	return stats.Count, stats.Sum, nil
}
