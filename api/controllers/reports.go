package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/easybody/easybody-backend/api/responses"
	"github.com/easybody/easybody-backend/api/validators"
	"github.com/easybody/easybody-backend/internal/reports"
	"github.com/easybody/easybody-backend/pkg/logger"
)

type reportCreateRequest struct {
	OfferID        *uuid.UUID `json:"offer_id,omitempty"`
	ReportedUserID *uuid.UUID `json:"reported_user_id,omitempty"`
	Reason         string     `json:"reason" validate:"required,min=1"`
	Details        *string    `json:"details,omitempty"`
}

// ReportCreate files a complaint about a listing or a user.
func ReportCreate(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reportCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), uid, reports.CreateReportInput{
			OfferID:        payload.OfferID,
			ReportedUserID: payload.ReportedUserID,
			Reason:         payload.Reason,
			Details:        payload.Details,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}
