package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/easybody/easybody-backend/api/responses"
	"github.com/easybody/easybody-backend/api/validators"
	"github.com/easybody/easybody-backend/internal/ratings"
	"github.com/easybody/easybody-backend/pkg/logger"
)

type ratingCreateRequest struct {
	OfferID uuid.UUID `json:"offer_id" validate:"required"`
	Score   int       `json:"score" validate:"required,min=1,max=5"`
	Comment *string   `json:"comment,omitempty"`
}

// RatingCreate records a score and recomputes the offer aggregates.
func RatingCreate(svc ratings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ratingCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Add(r.Context(), uid, ratings.AddRatingInput{
			OfferID: payload.OfferID,
			Score:   payload.Score,
			Comment: payload.Comment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// RatingListByOffer pages ratings for one listing, newest first.
func RatingListByOffer(svc ratings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offerID, err := validators.ParsePathUUID(chi.URLParam(r, "offerId"), "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListByOffer(r.Context(), offerID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
