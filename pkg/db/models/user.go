package models

import (
	"time"

	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/google/uuid"
)

// User represents the canonical identity entity. Authentication happens
// upstream; this row carries the platform role and profile basics.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AuthSub     string         `gorm:"column:auth_sub;type:text;not null;uniqueIndex"`
	Email       string         `gorm:"type:text;not null;uniqueIndex"`
	FirstName   string         `gorm:"column:first_name;not null"`
	LastName    string         `gorm:"column:last_name;not null"`
	Phone       *string        `gorm:"column:phone"`
	Role        enums.UserRole `gorm:"type:text;not null"`
	IsActive    bool           `gorm:"column:is_active;not null"`
	LastLoginAt *time.Time     `gorm:"column:last_login_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
