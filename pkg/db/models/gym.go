package models

import (
	"time"

	"github.com/google/uuid"
)

// Gym is a facility profile. Offers and PT associations hang off it.
type Gym struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string     `gorm:"type:text;not null"`
	Description *string    `gorm:"type:text"`
	LogoURL     *string    `gorm:"column:logo_url"`
	PhoneNumber string     `gorm:"column:phone_number;not null"`
	Email       *string    `gorm:"type:text"`
	Website     *string    `gorm:"type:text"`
	OwnerUserID uuid.UUID  `gorm:"type:uuid;column:owner_user_id;not null;index"`
	LocationID  *uuid.UUID `gorm:"type:uuid;column:location_id"`
	Location    *Location  `gorm:"foreignKey:LocationID"`
	Active      bool       `gorm:"column:active;not null"`
	Verified    bool       `gorm:"column:verified;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
