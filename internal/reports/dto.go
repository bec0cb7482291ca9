package reports

import (
	"time"

	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/google/uuid"
)

// ReportDTO exposes a complaint in API responses.
type ReportDTO struct {
	ID               uuid.UUID          `json:"id"`
	ReportedByUserID uuid.UUID          `json:"reported_by_user_id"`
	OfferID          *uuid.UUID         `json:"offer_id,omitempty"`
	ReportedUserID   *uuid.UUID         `json:"reported_user_id,omitempty"`
	Reason           string             `json:"reason"`
	Details          *string            `json:"details,omitempty"`
	Status           enums.ReportStatus `json:"status"`
	ReviewedByUserID *uuid.UUID         `json:"reviewed_by_user_id,omitempty"`
	ReviewedAt       *time.Time         `json:"reviewed_at,omitempty"`
	ReviewNotes      *string            `json:"review_notes,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// FromModel maps the persisted report into a DTO.
func FromModel(m *models.Report) *ReportDTO {
	if m == nil {
		return nil
	}
	return &ReportDTO{
		ID:               m.ID,
		ReportedByUserID: m.ReportedByUserID,
		OfferID:          m.OfferID,
		ReportedUserID:   m.ReportedUserID,
		Reason:           m.Reason,
		Details:          m.Details,
		Status:           m.Status,
		ReviewedByUserID: m.ReviewedByUserID,
		ReviewedAt:       m.ReviewedAt,
		ReviewNotes:      m.ReviewNotes,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
