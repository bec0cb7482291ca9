package offers

import (
	"context"
	"fmt"
	"strings"

	"github.com/easybody/easybody-backend/internal/geo"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SearchFilter narrows a listing search. Nil fields are skipped, so
// filters compose as a conjunction. Status and Active carry the
// public-facing defaults (APPROVED, true) when unset.
type SearchFilter struct {
	Status    *enums.OfferStatus
	Active    *bool
	OfferType *enums.OfferType
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	MinRating *decimal.Decimal
	GymID     *uuid.UUID
	PTUserID  *uuid.UUID
	Query     *string
	SortBy    *string
	SortDesc  *bool
}

// Sortable columns for non-geo searches. Geo searches always rank by
// distance instead.
var searchSortColumns = map[string]string{
	"created_at":     "offers.created_at",
	"price":          "offers.price",
	"average_rating": "offers.average_rating",
	"title":          "offers.title",
}

func (f SearchFilter) orderClause() string {
	column := "offers.created_at"
	if f.SortBy != nil {
		if mapped, ok := searchSortColumns[*f.SortBy]; ok {
			column = mapped
		}
	}
	direction := "DESC"
	if f.SortDesc != nil && !*f.SortDesc {
		direction = "ASC"
	}
	return column + " " + direction
}

// Repository handles listing persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to listing operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new listing row.
func (r *Repository) Create(ctx context.Context, dto CreateOfferDTO) (*models.Offer, error) {
	offer := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

// FindByID loads a listing with its publisher profiles.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.WithContext(ctx).
		Preload("Gym.Location").
		Preload("PTUser.Location").
		Where("id = ?", id).
		First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// Update saves the provided listing.
func (r *Repository) Update(ctx context.Context, offer *models.Offer) error {
	if offer == nil {
		return fmt.Errorf("offer is required")
	}
	return r.db.WithContext(ctx).Save(offer).Error
}

// ListByStatus pages listings in one moderation state, newest first.
func (r *Repository) ListByStatus(ctx context.Context, status enums.OfferStatus, params pagination.Params) ([]models.Offer, int64, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Offer{}).Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var offers []models.Offer
	if err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&offers).Error; err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

func (r *Repository) applyFilter(query *gorm.DB, filter SearchFilter) *gorm.DB {
	status := enums.OfferStatusApproved
	if filter.Status != nil {
		status = *filter.Status
	}
	active := true
	if filter.Active != nil {
		active = *filter.Active
	}
	query = query.
		Where("offers.active = ?", active).
		Where("offers.status = ?", status)

	if filter.OfferType != nil {
		query = query.Where("offers.offer_type = ?", *filter.OfferType)
	}
	if filter.MinPrice != nil {
		query = query.Where("offers.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("offers.price <= ?", *filter.MaxPrice)
	}
	if filter.MinRating != nil {
		query = query.Where("offers.average_rating >= ?", *filter.MinRating)
	}
	if filter.GymID != nil {
		query = query.Where("offers.gym_id = ?", *filter.GymID)
	}
	if filter.PTUserID != nil {
		query = query.Where("offers.pt_user_id = ?", *filter.PTUserID)
	}
	if filter.Query != nil && strings.TrimSpace(*filter.Query) != "" {
		needle := "%" + strings.ToLower(strings.TrimSpace(*filter.Query)) + "%"
		query = query.Where("LOWER(offers.title) LIKE ? OR LOWER(offers.description) LIKE ?", needle, needle)
	}
	return query
}

// Search pages listings matching the filter, approved and active unless
// overridden, ordered by the requested sortable column (newest first by
// default).
func (r *Repository) Search(ctx context.Context, filter SearchFilter, params pagination.Params) ([]models.Offer, int64, error) {
	params = params.Normalize()

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Offer{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var offers []models.Offer
	if err := query.
		Preload("Gym.Location").
		Preload("PTUser.Location").
		Order(filter.orderClause()).
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&offers).Error; err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

// SearchInBox returns every filter match whose publisher location falls
// inside the rectangle. Callers apply the exact radius check and sort by
// distance, so no SQL-side paging happens here.
func (r *Repository) SearchInBox(ctx context.Context, filter SearchFilter, box geo.BoundingBox) ([]models.Offer, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Offer{}), filter).
		Joins("LEFT JOIN gyms ON gyms.id = offers.gym_id").
		Joins("LEFT JOIN pt_users ON pt_users.id = offers.pt_user_id").
		Joins("JOIN locations ON locations.id = gyms.location_id OR locations.id = pt_users.location_id").
		Where("locations.latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("locations.longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)

	var offers []models.Offer
	if err := query.
		Preload("Gym.Location").
		Preload("PTUser.Location").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}
