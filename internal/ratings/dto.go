package ratings

import (
	"time"

	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/google/uuid"
)

// RatingDTO exposes a single client score in API responses.
type RatingDTO struct {
	ID           uuid.UUID `json:"id"`
	OfferID      uuid.UUID `json:"offer_id"`
	ClientUserID uuid.UUID `json:"client_user_id"`
	Score        int       `json:"score"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromModel maps the persisted rating into a DTO.
func FromModel(m *models.Rating) *RatingDTO {
	if m == nil {
		return nil
	}
	return &RatingDTO{
		ID:           m.ID,
		OfferID:      m.OfferID,
		ClientUserID: m.ClientUserID,
		Score:        m.Score,
		Comment:      m.Comment,
		CreatedAt:    m.CreatedAt,
	}
}
