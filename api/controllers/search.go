package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/easybody/easybody-backend/api/responses"
	"github.com/easybody/easybody-backend/api/validators"
	"github.com/easybody/easybody-backend/internal/offers"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/easybody/easybody-backend/pkg/logger"
	"github.com/easybody/easybody-backend/pkg/pagination"
)

type offerSearchRequest struct {
	Status    *string          `json:"status,omitempty"`
	Active    *bool            `json:"active,omitempty"`
	OfferType *string          `json:"offer_type,omitempty"`
	MinPrice  *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice  *decimal.Decimal `json:"max_price,omitempty"`
	MinRating *decimal.Decimal `json:"min_rating,omitempty"`
	GymID     *uuid.UUID       `json:"gym_id,omitempty"`
	PTUserID  *uuid.UUID       `json:"pt_user_id,omitempty"`
	Query     *string          `json:"q,omitempty"`
	SortBy    *string          `json:"sort_by,omitempty"`
	SortDesc  *bool            `json:"sort_desc,omitempty"`
	Latitude  *float64         `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64         `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	RadiusKm  *float64         `json:"radius_km,omitempty" validate:"omitempty,gt=0"`
	Page      *int             `json:"page,omitempty" validate:"omitempty,min=0"`
	Size      *int             `json:"size,omitempty" validate:"omitempty,min=1,max=100"`
}

// OfferSearch runs the composable listing search. All filters AND
// together; coordinates switch on distance ranking.
func OfferSearch(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload offerSearchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := offers.SearchInput{
			Filter: offers.SearchFilter{
				Active:    payload.Active,
				MinPrice:  payload.MinPrice,
				MaxPrice:  payload.MaxPrice,
				MinRating: payload.MinRating,
				GymID:     payload.GymID,
				PTUserID:  payload.PTUserID,
				Query:     payload.Query,
				SortBy:    payload.SortBy,
				SortDesc:  payload.SortDesc,
			},
			Latitude:  payload.Latitude,
			Longitude: payload.Longitude,
			RadiusKm:  payload.RadiusKm,
		}
		if payload.OfferType != nil {
			offerType := enums.OfferType(*payload.OfferType)
			input.Filter.OfferType = &offerType
		}
		if payload.Status != nil {
			status := enums.OfferStatus(*payload.Status)
			input.Filter.Status = &status
		}

		params := pagination.Params{Page: pagination.DefaultPage, Size: pagination.DefaultSize}
		if payload.Page != nil {
			params.Page = *payload.Page
		}
		if payload.Size != nil {
			params.Size = *payload.Size
		}
		input.Page = params

		page, err := svc.Search(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
