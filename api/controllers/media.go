package controllers

import (
	"net/http"

	"github.com/easybody/easybody-backend/api/responses"
	"github.com/easybody/easybody-backend/api/validators"
	"github.com/easybody/easybody-backend/internal/media"
	"github.com/easybody/easybody-backend/pkg/logger"
)

// MediaUploadURL issues a presigned PUT ticket for a direct upload.
func MediaUploadURL(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload media.UploadRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.CreateUploadURL(r.Context(), uid, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ticket)
	}
}
