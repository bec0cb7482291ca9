package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easybody/easybody-backend/api/responses"
	"github.com/easybody/easybody-backend/api/validators"
	"github.com/easybody/easybody-backend/internal/ptusers"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/logger"
)

type ptUserCreateRequest struct {
	Bio               *string          `json:"bio,omitempty"`
	Specializations   *string          `json:"specializations,omitempty"`
	Certifications    *string          `json:"certifications,omitempty"`
	YearsOfExperience *int             `json:"years_of_experience,omitempty" validate:"omitempty,min=0"`
	ProfileImageURL   *string          `json:"profile_image_url,omitempty"`
	Location          *locationRequest `json:"location,omitempty"`
}

// PTUserCreate opens a trainer profile for the calling account.
func PTUserCreate(svc ptusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ptUserCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), uid, ptusers.CreatePTUserInput{
			Bio:               payload.Bio,
			Specializations:   payload.Specializations,
			Certifications:    payload.Certifications,
			YearsOfExperience: payload.YearsOfExperience,
			ProfileImageURL:   payload.ProfileImageURL,
			Location:          payload.Location.toInput(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// PTUserGet returns a single trainer profile.
func PTUserGet(svc ptusers.Service, logg *logger.Logger) http.HandlerFunc {
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

// PTUserByUser resolves the profile owned by an account.
func PTUserByUser(svc ptusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathUUID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetByUserID(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// PTUserList pages active trainer profiles.
func PTUserList(svc ptusers.Service, logg *logger.Logger) http.HandlerFunc {
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

type ptUserUpdateRequest struct {
	Bio               *string          `json:"bio,omitempty"`
	Specializations   *string          `json:"specializations,omitempty"`
	Certifications    *string          `json:"certifications,omitempty"`
	YearsOfExperience *int             `json:"years_of_experience,omitempty" validate:"omitempty,min=0"`
	ProfileImageURL   *string          `json:"profile_image_url,omitempty"`
	Location          *locationRequest `json:"location,omitempty"`
}

// PTUserUpdate adjusts a trainer profile for its owner or an admin.
func PTUserUpdate(svc ptusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profileID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ptUserUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), uid, profileID, ptusers.UpdatePTUserInput{
			Bio:               payload.Bio,
			Specializations:   payload.Specializations,
			Certifications:    payload.Certifications,
			YearsOfExperience: payload.YearsOfExperience,
			ProfileImageURL:   payload.ProfileImageURL,
			Location:          payload.Location.toInput(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// PTUserNear lists trainers around a point, nearest first.
func PTUserNear(svc ptusers.Service, logg *logger.Logger) http.HandlerFunc {
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

		query := ptusers.NearQuery{Latitude: *lat, Longitude: *lng}
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
