package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easybody/easybody-backend/api/responses"
	"github.com/easybody/easybody-backend/api/validators"
	"github.com/easybody/easybody-backend/internal/associations"
	"github.com/easybody/easybody-backend/internal/offers"
	"github.com/easybody/easybody-backend/internal/reports"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/logger"
	"github.com/easybody/easybody-backend/pkg/metrics"
)

type moderationRequest struct {
	Decision string  `json:"decision" validate:"required"`
	Reason   *string `json:"reason,omitempty"`
}

func (m moderationRequest) parsed() (enums.ModerationDecision, string, error) {
	decision, err := enums.ParseModerationDecision(m.Decision)
	if err != nil {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "decision must be approve or reject")
	}
	reason := ""
	if m.Reason != nil {
		reason = *m.Reason
	}
	return decision, reason, nil
}

// AdminPendingOffers pages the listing moderation queue.
func AdminPendingOffers(svc offers.Service, mod *metrics.ModerationMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListPending(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mod.SetQueueDepth("offers", page.TotalElements)
		responses.WriteSuccess(w, page)
	}
}

// AdminModerateOffer applies an approve or reject verdict to a listing.
func AdminModerateOffer(svc offers.Service, mod *metrics.ModerationMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offerID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload moderationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		decision, reason, err := payload.parsed()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var dto *offers.OfferDTO
		switch decision {
		case enums.ModerationDecisionApprove:
			dto, err = svc.Approve(r.Context(), uid, offerID)
		case enums.ModerationDecisionReject:
			dto, err = svc.Reject(r.Context(), uid, offerID, reason)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mod.IncDecision("offers", decision.String())
		responses.WriteSuccess(w, dto)
	}
}

// AdminPendingAssociations pages the gym link moderation queue.
func AdminPendingAssociations(svc associations.Service, mod *metrics.ModerationMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListPending(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mod.SetQueueDepth("associations", page.TotalElements)
		responses.WriteSuccess(w, page)
	}
}

// AdminModerateAssociation applies an approve or reject verdict to a gym link.
func AdminModerateAssociation(svc associations.Service, mod *metrics.ModerationMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assocID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload moderationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		decision, reason, err := payload.parsed()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		modActor := associations.Actor{ID: actor.ID, Role: actor.Role}
		var dto *associations.AssociationDTO
		switch decision {
		case enums.ModerationDecisionApprove:
			dto, err = svc.Approve(r.Context(), modActor, assocID)
		case enums.ModerationDecisionReject:
			dto, err = svc.Reject(r.Context(), modActor, assocID, reason)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mod.IncDecision("associations", decision.String())
		responses.WriteSuccess(w, dto)
	}
}

// AdminListReports pages complaints in one review state.
func AdminListReports(svc reports.Service, mod *metrics.ModerationMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := enums.ReportStatusPending
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := enums.ParseReportStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid report status"))
				return
			}
			status = parsed
		}

		page, err := svc.ListByStatus(r.Context(), status, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if status == enums.ReportStatusPending {
			mod.SetQueueDepth("reports", page.TotalElements)
		}
		responses.WriteSuccess(w, page)
	}
}

type reportReviewRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// AdminResolveReport closes a complaint as actioned.
func AdminResolveReport(svc reports.Service, mod *metrics.ModerationMetrics, logg *logger.Logger) http.HandlerFunc {
	return reportReview(svc, mod, logg, "resolve")
}

// AdminDismissReport closes a complaint without action.
func AdminDismissReport(svc reports.Service, mod *metrics.ModerationMetrics, logg *logger.Logger) http.HandlerFunc {
	return reportReview(svc, mod, logg, "dismiss")
}

func reportReview(svc reports.Service, mod *metrics.ModerationMetrics, logg *logger.Logger, verdict string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reportID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reportReviewRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		var dto *reports.ReportDTO
		switch verdict {
		case "resolve":
			dto, err = svc.Resolve(r.Context(), uid, reportID, payload.Notes)
		default:
			dto, err = svc.Dismiss(r.Context(), uid, reportID, payload.Notes)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mod.IncDecision("reports", verdict)
		responses.WriteSuccess(w, dto)
	}
}
