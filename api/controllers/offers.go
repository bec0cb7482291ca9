package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/easybody/easybody-backend/api/responses"
	"github.com/easybody/easybody-backend/api/validators"
	"github.com/easybody/easybody-backend/internal/offers"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/easybody/easybody-backend/pkg/logger"
)

type offerCreateRequest struct {
	Title               string          `json:"title" validate:"required,min=1"`
	Description         string          `json:"description" validate:"required,min=1"`
	OfferType           string          `json:"offer_type" validate:"required"`
	GymID               *uuid.UUID      `json:"gym_id,omitempty"`
	PTUserID            *uuid.UUID      `json:"pt_user_id,omitempty"`
	Price               decimal.Decimal `json:"price" validate:"required"`
	Currency            string          `json:"currency,omitempty"`
	DurationDescription *string         `json:"duration_description,omitempty"`
	ImageURLs           []string        `json:"image_urls,omitempty"`
}

// OfferCreate publishes a listing into the moderation queue.
func OfferCreate(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload offerCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), actor, offers.CreateOfferInput{
			Title:               payload.Title,
			Description:         payload.Description,
			OfferType:           enums.OfferType(payload.OfferType),
			GymID:               payload.GymID,
			PTUserID:            payload.PTUserID,
			Price:               payload.Price,
			Currency:            payload.Currency,
			DurationDescription: payload.DurationDescription,
			ImageURLs:           payload.ImageURLs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// OfferGet returns a listing, hiding unapproved ones from outsiders.
func OfferGet(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := optionalActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetByID(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type offerUpdateRequest struct {
	Title               *string          `json:"title,omitempty" validate:"omitempty,min=1"`
	Description         *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Price               *decimal.Decimal `json:"price,omitempty"`
	Currency            *string          `json:"currency,omitempty"`
	DurationDescription *string          `json:"duration_description,omitempty"`
	ImageURLs           []string         `json:"image_urls,omitempty"`
	Active              *bool            `json:"active,omitempty"`
}

// OfferUpdate edits a listing. Any edit re-enters moderation.
func OfferUpdate(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offerID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload offerUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), actor, offerID, offers.UpdateOfferInput{
			Title:               payload.Title,
			Description:         payload.Description,
			Price:               payload.Price,
			Currency:            payload.Currency,
			DurationDescription: payload.DurationDescription,
			ImageURLs:           payload.ImageURLs,
			Active:              payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
