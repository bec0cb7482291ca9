package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easybody/easybody-backend/api/responses"
	"github.com/easybody/easybody-backend/api/validators"
	"github.com/easybody/easybody-backend/internal/gyms"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/logger"
)

type locationRequest struct {
	Address    string  `json:"address" validate:"required"`
	City       string  `json:"city" validate:"required"`
	State      *string `json:"state,omitempty"`
	Country    *string `json:"country,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Latitude   float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude  float64 `json:"longitude" validate:"min=-180,max=180"`
}

func (l *locationRequest) toInput() *gyms.LocationInput {
	if l == nil {
		return nil
	}
	return &gyms.LocationInput{
		Address:    l.Address,
		City:       l.City,
		State:      l.State,
		Country:    l.Country,
		PostalCode: l.PostalCode,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
	}
}

type gymCreateRequest struct {
	Name        string           `json:"name" validate:"required,min=1"`
	Description *string          `json:"description,omitempty"`
	LogoURL     *string          `json:"logo_url,omitempty"`
	PhoneNumber string           `json:"phone_number" validate:"required"`
	Email       *string          `json:"email,omitempty" validate:"omitempty,email"`
	Website     *string          `json:"website,omitempty"`
	Location    *locationRequest `json:"location,omitempty"`
}

// GymCreate registers a facility owned by the calling staff account.
func GymCreate(svc gyms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload gymCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), uid, gyms.CreateGymInput{
			Name:        payload.Name,
			Description: payload.Description,
			LogoURL:     payload.LogoURL,
			PhoneNumber: payload.PhoneNumber,
			Email:       payload.Email,
			Website:     payload.Website,
			Location:    payload.Location.toInput(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// GymGet returns a single facility profile.
func GymGet(svc gyms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// GymList pages active facilities.
func GymList(svc gyms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

type gymUpdateRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string          `json:"description,omitempty"`
	LogoURL     *string          `json:"logo_url,omitempty"`
	PhoneNumber *string          `json:"phone_number,omitempty"`
	Email       *string          `json:"email,omitempty" validate:"omitempty,email"`
	Website     *string          `json:"website,omitempty"`
	Location    *locationRequest `json:"location,omitempty"`
}

// GymUpdate adjusts mutable facility fields for the owner or an admin.
func GymUpdate(svc gyms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		gymID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload gymUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), uid, gymID, gyms.UpdateGymInput{
			Name:        payload.Name,
			Description: payload.Description,
			LogoURL:     payload.LogoURL,
			PhoneNumber: payload.PhoneNumber,
			Email:       payload.Email,
			Website:     payload.Website,
			Location:    payload.Location.toInput(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// GymSearch matches facilities by name.
func GymSearch(svc gyms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.Search(r.Context(), r.URL.Query().Get("q"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// GymNear lists facilities around a point, nearest first.
func GymNear(svc gyms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, err := validators.ParseQueryFloat(r, "lat")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lng, err := validators.ParseQueryFloat(r, "lng")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if lat == nil || lng == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "lat and lng are required"))
			return
		}
		radius, err := validators.ParseQueryFloat(r, "radius_km")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := gyms.NearQuery{Latitude: *lat, Longitude: *lng}
		if radius != nil {
			query.RadiusKm = *radius
		}

		results, err := svc.Near(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}
