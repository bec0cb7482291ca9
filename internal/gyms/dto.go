package gyms

import (
	"time"

	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/types"
	"github.com/google/uuid"
)

// LocationDTO is the address payload shared by gym and PT profiles.
type LocationDTO struct {
	ID         uuid.UUID      `json:"id"`
	Address    string         `json:"address"`
	City       string         `json:"city"`
	State      *string        `json:"state,omitempty"`
	Country    *string        `json:"country,omitempty"`
	PostalCode *string        `json:"postal_code,omitempty"`
	Point      types.GeoPoint `json:"point"`
}

// GymDTO exposes safe gym data in API responses.
type GymDTO struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	LogoURL     *string      `json:"logo_url,omitempty"`
	PhoneNumber string       `json:"phone_number"`
	Email       *string      `json:"email,omitempty"`
	Website     *string      `json:"website,omitempty"`
	OwnerUserID uuid.UUID    `json:"owner_user_id"`
	Location    *LocationDTO `json:"location,omitempty"`
	Active      bool         `json:"active"`
	Verified    bool         `json:"verified"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// GymWithDistanceDTO augments a gym with its distance from a search origin.
type GymWithDistanceDTO struct {
	GymDTO
	DistanceKm float64 `json:"distance_km"`
}

// LocationInput carries address fields on create and update.
type LocationInput struct {
	Address    string
	City       string
	State      *string
	Country    *string
	PostalCode *string
	Latitude   float64
	Longitude  float64
}

// CreateGymDTO holds creation-time data for a new gym.
type CreateGymDTO struct {
	Name        string
	Description *string
	LogoURL     *string
	PhoneNumber string
	Email       *string
	Website     *string
	OwnerUserID uuid.UUID
	Location    *LocationInput
}

// ToModel maps creation data onto persistable rows.
func (d CreateGymDTO) ToModel() *models.Gym {
	gym := &models.Gym{
		Name:        d.Name,
		Description: d.Description,
		LogoURL:     d.LogoURL,
		PhoneNumber: d.PhoneNumber,
		Email:       d.Email,
		Website:     d.Website,
		OwnerUserID: d.OwnerUserID,
		Active:      true,
	}
	if d.Location != nil {
		gym.Location = d.Location.ToModel()
	}
	return gym
}

// ToModel maps a location input onto a persistable row.
func (l LocationInput) ToModel() *models.Location {
	return &models.Location{
		Address:    l.Address,
		City:       l.City,
		State:      l.State,
		Country:    l.Country,
		PostalCode: l.PostalCode,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
	}
}

// UpdateGymInput captures the allowed gym fields for mutation.
type UpdateGymInput struct {
	Name        *string
	Description *string
	LogoURL     *string
	PhoneNumber *string
	Email       *string
	Website     *string
	Location    *LocationInput
}

// FromModel maps the persisted gym into a DTO.
func FromModel(m *models.Gym) *GymDTO {
	if m == nil {
		return nil
	}
	dto := &GymDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		LogoURL:     m.LogoURL,
		PhoneNumber: m.PhoneNumber,
		Email:       m.Email,
		Website:     m.Website,
		OwnerUserID: m.OwnerUserID,
		Active:      m.Active,
		Verified:    m.Verified,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	dto.Location = LocationFromModel(m.Location)
	return dto
}

// LocationFromModel maps the persisted location into a DTO.
func LocationFromModel(m *models.Location) *LocationDTO {
	if m == nil {
		return nil
	}
	return &LocationDTO{
		ID:         m.ID,
		Address:    m.Address,
		City:       m.City,
		State:      m.State,
		Country:    m.Country,
		PostalCode: m.PostalCode,
		Point:      types.GeoPoint{Lat: m.Latitude, Lng: m.Longitude},
	}
}
