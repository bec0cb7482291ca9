package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/easybody/easybody-backend/api/responses"
	"github.com/easybody/easybody-backend/api/validators"
	"github.com/easybody/easybody-backend/internal/associations"
	"github.com/easybody/easybody-backend/pkg/logger"
)

type associationRequestBody struct {
	GymID    uuid.UUID `json:"gym_id" validate:"required"`
	PTUserID uuid.UUID `json:"pt_user_id" validate:"required"`
}

// AssociationRequest opens a pending gym/trainer link. The gym's owner
// or an admin names both parties.
func AssociationRequest(svc associations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload associationRequestBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Request(r.Context(), associations.Actor{ID: actor.ID, Role: actor.Role}, payload.GymID, payload.PTUserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// AssociationListByGym pages a gym's trainer links in arrival order.
func AssociationListByGym(svc associations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gymID, err := validators.ParsePathUUID(chi.URLParam(r, "gymId"), "gymId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListByGym(r.Context(), gymID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AssociationListByPT pages a trainer's gym links in arrival order.
func AssociationListByPT(svc associations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ptUserID, err := validators.ParsePathUUID(chi.URLParam(r, "ptUserId"), "ptUserId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListByPT(r.Context(), ptUserID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
