package offers

import (
	"time"

	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OfferDTO exposes safe listing data in API responses.
type OfferDTO struct {
	ID                  uuid.UUID         `json:"id"`
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	OfferType           enums.OfferType   `json:"offer_type"`
	GymID               *uuid.UUID        `json:"gym_id,omitempty"`
	PTUserID            *uuid.UUID        `json:"pt_user_id,omitempty"`
	Price               decimal.Decimal   `json:"price"`
	Currency            string            `json:"currency"`
	DurationDescription *string           `json:"duration_description,omitempty"`
	ImageURLs           []string          `json:"image_urls,omitempty"`
	Status              enums.OfferStatus `json:"status"`
	RiskScore           decimal.Decimal   `json:"risk_score"`
	RejectionReason     *string           `json:"rejection_reason,omitempty"`
	ModeratedByUserID   *uuid.UUID        `json:"moderated_by_user_id,omitempty"`
	ModeratedAt         *time.Time        `json:"moderated_at,omitempty"`
	AverageRating       decimal.Decimal   `json:"average_rating"`
	RatingCount         int               `json:"rating_count"`
	Active              bool              `json:"active"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// OfferWithDistanceDTO augments a search hit with its distance from the
// search origin. DistanceKm is nil when the search had no geo filter.
type OfferWithDistanceDTO struct {
	OfferDTO
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// CreateOfferDTO holds creation-time data for a listing.
type CreateOfferDTO struct {
	Title               string
	Description         string
	OfferType           enums.OfferType
	GymID               *uuid.UUID
	PTUserID            *uuid.UUID
	Price               decimal.Decimal
	Currency            string
	DurationDescription *string
	ImageURLs           []string
}

// ToModel maps creation data onto a persistable row. New listings always
// start in the moderation queue.
func (d CreateOfferDTO) ToModel() *models.Offer {
	currency := d.Currency
	if currency == "" {
		currency = "USD"
	}
	return &models.Offer{
		Title:               d.Title,
		Description:         d.Description,
		OfferType:           d.OfferType,
		GymID:               d.GymID,
		PTUserID:            d.PTUserID,
		Price:               d.Price,
		Currency:            currency,
		DurationDescription: d.DurationDescription,
		ImageURLs:           pq.StringArray(d.ImageURLs),
		Status:              enums.OfferStatusPending,
		Active:              true,
	}
}

// UpdateOfferInput captures the listing fields an owner may edit.
type UpdateOfferInput struct {
	Title               *string
	Description         *string
	Price               *decimal.Decimal
	Currency            *string
	DurationDescription *string
	ImageURLs           []string
	Active              *bool
}

// FromModel maps the persisted listing into a DTO.
func FromModel(m *models.Offer) *OfferDTO {
	if m == nil {
		return nil
	}
	return &OfferDTO{
		ID:                  m.ID,
		Title:               m.Title,
		Description:         m.Description,
		OfferType:           m.OfferType,
		GymID:               m.GymID,
		PTUserID:            m.PTUserID,
		Price:               m.Price,
		Currency:            m.Currency,
		DurationDescription: m.DurationDescription,
		ImageURLs:           []string(m.ImageURLs),
		Status:              m.Status,
		RiskScore:           m.RiskScore,
		RejectionReason:     m.RejectionReason,
		ModeratedByUserID:   m.ModeratedByUserID,
		ModeratedAt:         m.ModeratedAt,
		AverageRating:       m.AverageRating,
		RatingCount:         m.RatingCount,
		Active:              m.Active,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
