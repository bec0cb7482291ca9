package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one client's score for one offer. The composite unique index
// enforces one rating per client per offer.
type Rating struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OfferID      uuid.UUID `gorm:"type:uuid;column:offer_id;not null;uniqueIndex:idx_ratings_offer_client"`
	ClientUserID uuid.UUID `gorm:"type:uuid;column:client_user_id;not null;uniqueIndex:idx_ratings_offer_client"`
	Score        int       `gorm:"column:score;not null"`
	Comment      *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
