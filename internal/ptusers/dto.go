package ptusers

import (
	"time"

	"github.com/easybody/easybody-backend/internal/gyms"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/google/uuid"
)

// PTUserDTO exposes safe trainer profile data in API responses.
type PTUserDTO struct {
	ID                uuid.UUID         `json:"id"`
	UserID            uuid.UUID         `json:"user_id"`
	Bio               *string           `json:"bio,omitempty"`
	Specializations   *string           `json:"specializations,omitempty"`
	Certifications    *string           `json:"certifications,omitempty"`
	YearsOfExperience *int              `json:"years_of_experience,omitempty"`
	ProfileImageURL   *string           `json:"profile_image_url,omitempty"`
	Location          *gyms.LocationDTO `json:"location,omitempty"`
	Active            bool              `json:"active"`
	Verified          bool              `json:"verified"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// PTUserWithDistanceDTO augments a profile with its distance from a
// search origin.
type PTUserWithDistanceDTO struct {
	PTUserDTO
	DistanceKm float64 `json:"distance_km"`
}

// CreatePTUserDTO holds creation-time data for a trainer profile.
type CreatePTUserDTO struct {
	UserID            uuid.UUID
	Bio               *string
	Specializations   *string
	Certifications    *string
	YearsOfExperience *int
	ProfileImageURL   *string
	Location          *gyms.LocationInput
}

// ToModel maps creation data onto persistable rows.
func (d CreatePTUserDTO) ToModel() *models.PTUser {
	pt := &models.PTUser{
		UserID:            d.UserID,
		Bio:               d.Bio,
		Specializations:   d.Specializations,
		Certifications:    d.Certifications,
		YearsOfExperience: d.YearsOfExperience,
		ProfileImageURL:   d.ProfileImageURL,
		Active:            true,
	}
	if d.Location != nil {
		pt.Location = d.Location.ToModel()
	}
	return pt
}

// UpdatePTUserInput captures the allowed profile fields for mutation.
type UpdatePTUserInput struct {
	Bio               *string
	Specializations   *string
	Certifications    *string
	YearsOfExperience *int
	ProfileImageURL   *string
	Location          *gyms.LocationInput
}

// FromModel maps the persisted profile into a DTO.
func FromModel(m *models.PTUser) *PTUserDTO {
	if m == nil {
		return nil
	}
	return &PTUserDTO{
		ID:                m.ID,
		UserID:            m.UserID,
		Bio:               m.Bio,
		Specializations:   m.Specializations,
		Certifications:    m.Certifications,
		YearsOfExperience: m.YearsOfExperience,
		ProfileImageURL:   m.ProfileImageURL,
		Location:          gyms.LocationFromModel(m.Location),
		Active:            m.Active,
		Verified:          m.Verified,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
