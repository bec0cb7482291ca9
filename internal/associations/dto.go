package associations

import (
	"time"

	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/google/uuid"
)

// AssociationDTO exposes a gym/trainer link in API responses.
type AssociationDTO struct {
	ID                uuid.UUID            `json:"id"`
	GymID             uuid.UUID            `json:"gym_id"`
	PTUserID          uuid.UUID            `json:"pt_user_id"`
	Status            enums.ApprovalStatus `json:"status"`
	RejectionReason   *string              `json:"rejection_reason,omitempty"`
	ModeratedByUserID *uuid.UUID           `json:"moderated_by_user_id,omitempty"`
	ModeratedAt       *time.Time           `json:"moderated_at,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// FromModel maps the persisted association into a DTO.
func FromModel(m *models.GymPTAssociation) *AssociationDTO {
	if m == nil {
		return nil
	}
	return &AssociationDTO{
		ID:                m.ID,
		GymID:             m.GymID,
		PTUserID:          m.PTUserID,
		Status:            m.Status,
		RejectionReason:   m.RejectionReason,
		ModeratedByUserID: m.ModeratedByUserID,
		ModeratedAt:       m.ModeratedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
