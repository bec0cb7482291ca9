package models

import (
	"time"

	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/google/uuid"
)

// Report is a user complaint about an offer or about another user.
// Exactly one of OfferID and ReportedUserID is set.
type Report struct {
	ID               uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ReportedByUserID uuid.UUID          `gorm:"type:uuid;column:reported_by_user_id;not null;index"`
	OfferID          *uuid.UUID         `gorm:"type:uuid;column:offer_id;index"`
	Offer            *Offer             `gorm:"foreignKey:OfferID"`
	ReportedUserID   *uuid.UUID         `gorm:"type:uuid;column:reported_user_id;index"`
	ReportedUser     *User              `gorm:"foreignKey:ReportedUserID"`
	Reason           string             `gorm:"type:text;not null"`
	Details          *string            `gorm:"type:text"`
	Status           enums.ReportStatus `gorm:"type:text;not null;index"`
	ReviewedByUserID *uuid.UUID         `gorm:"type:uuid;column:reviewed_by_user_id"`
	ReviewedAt       *time.Time         `gorm:"column:reviewed_at"`
	ReviewNotes      *string            `gorm:"column:review_notes"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
