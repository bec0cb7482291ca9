package models

import (
	"time"

	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Offer is a purchasable listing published by a gym or a PT. New offers
// and edited offers always sit in PENDING until a moderator rules on
// them. AverageRating and RatingCount are denormalized aggregates owned
// by the ratings package.
type Offer struct {
	ID                  uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title               string            `gorm:"type:text;not null"`
	Description         string            `gorm:"type:text;not null"`
	OfferType           enums.OfferType   `gorm:"column:offer_type;type:text;not null;index"`
	GymID               *uuid.UUID        `gorm:"type:uuid;column:gym_id;index"`
	Gym                 *Gym              `gorm:"foreignKey:GymID"`
	PTUserID            *uuid.UUID        `gorm:"type:uuid;column:pt_user_id;index"`
	PTUser              *PTUser           `gorm:"foreignKey:PTUserID"`
	Price               decimal.Decimal   `gorm:"type:numeric(10,2);not null"`
	Currency            string            `gorm:"type:text;not null"`
	DurationDescription *string           `gorm:"column:duration_description"`
	ImageURLs           pq.StringArray    `gorm:"column:image_urls;type:text[]"`
	Status              enums.OfferStatus `gorm:"type:text;not null;index"`
	RiskScore           decimal.Decimal   `gorm:"column:risk_score;type:numeric(3,2);not null"`
	RejectionReason     *string           `gorm:"column:rejection_reason"`
	ModeratedByUserID   *uuid.UUID        `gorm:"type:uuid;column:moderated_by_user_id"`
	ModeratedAt         *time.Time        `gorm:"column:moderated_at"`
	AverageRating       decimal.Decimal   `gorm:"column:average_rating;type:numeric(3,2);not null"`
	RatingCount         int               `gorm:"column:rating_count;not null"`
	Active              bool              `gorm:"column:active;not null"`
	CreatedAt           time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
