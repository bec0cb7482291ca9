package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is a geocoded street address. Coordinates are stored as plain
// doubles so distance math stays portable across storage engines.
type Location struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Address    string    `gorm:"type:text;not null"`
	City       string    `gorm:"type:text;not null"`
	State      *string   `gorm:"type:text"`
	Country    *string   `gorm:"type:text"`
	PostalCode *string   `gorm:"column:postal_code"`
	Latitude   float64   `gorm:"column:latitude;not null"`
	Longitude  float64   `gorm:"column:longitude;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
