package models

import (
	"time"

	"github.com/google/uuid"
)

// PTUser is the personal trainer profile layered on a user account.
// Exactly one profile per user.
type PTUser struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID  `gorm:"type:uuid;column:user_id;not null;uniqueIndex"`
	User              *User      `gorm:"foreignKey:UserID"`
	Bio               *string    `gorm:"type:text"`
	Specializations   *string    `gorm:"type:text"`
	Certifications    *string    `gorm:"type:text"`
	YearsOfExperience *int       `gorm:"column:years_of_experience"`
	ProfileImageURL   *string    `gorm:"column:profile_image_url"`
	LocationID        *uuid.UUID `gorm:"type:uuid;column:location_id"`
	Location          *Location  `gorm:"foreignKey:LocationID"`
	Active            bool       `gorm:"column:active;not null"`
	Verified          bool       `gorm:"column:verified;not null"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (PTUser) TableName() string {
	return "pt_users"
}
