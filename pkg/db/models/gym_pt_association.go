package models

import (
	"time"

	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/google/uuid"
)

// GymPTAssociation links a PT to a gym. One row per pair, ever; a
// rejected pair is not re-requestable.
type GymPTAssociation struct {
	ID                uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GymID             uuid.UUID            `gorm:"type:uuid;column:gym_id;not null;uniqueIndex:idx_assoc_gym_pt"`
	Gym               *Gym                 `gorm:"foreignKey:GymID"`
	PTUserID          uuid.UUID            `gorm:"type:uuid;column:pt_user_id;not null;uniqueIndex:idx_assoc_gym_pt"`
	PTUser            *PTUser              `gorm:"foreignKey:PTUserID"`
	Status            enums.ApprovalStatus `gorm:"type:text;not null;index"`
	RejectionReason   *string              `gorm:"column:rejection_reason"`
	ModeratedByUserID *uuid.UUID           `gorm:"type:uuid;column:moderated_by_user_id"`
	ModeratedAt       *time.Time           `gorm:"column:moderated_at"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (GymPTAssociation) TableName() string {
	return "gym_pt_associations"
}
