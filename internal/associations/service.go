package associations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/easybody/easybody-backend/pkg/db"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type associationRepository interface {
	Create(ctx context.Context, assoc *models.GymPTAssociation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.GymPTAssociation, error)
	FindByPair(ctx context.Context, gymID, ptUserID uuid.UUID) (*models.GymPTAssociation, error)
	Update(ctx context.Context, assoc *models.GymPTAssociation) error
	ListByGym(ctx context.Context, gymID uuid.UUID, params pagination.Params) ([]models.GymPTAssociation, int64, error)
	ListByPT(ctx context.Context, ptUserID uuid.UUID, params pagination.Params) ([]models.GymPTAssociation, int64, error)
	ListPending(ctx context.Context, params pagination.Params) ([]models.GymPTAssociation, int64, error)
}

type gymFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Gym, error)
}

type ptFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.PTUser, error)
}

// Actor identifies the authenticated caller.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// Service exposes gym/trainer association operations.
type Service interface {
	Request(ctx context.Context, actor Actor, gymID, ptUserID uuid.UUID) (*AssociationDTO, error)
	Approve(ctx context.Context, actor Actor, associationID uuid.UUID) (*AssociationDTO, error)
	Reject(ctx context.Context, actor Actor, associationID uuid.UUID, reason string) (*AssociationDTO, error)
	ListByGym(ctx context.Context, gymID uuid.UUID, params pagination.Params) (pagination.Page[AssociationDTO], error)
	ListByPT(ctx context.Context, ptUserID uuid.UUID, params pagination.Params) (pagination.Page[AssociationDTO], error)
	ListPending(ctx context.Context, params pagination.Params) (pagination.Page[AssociationDTO], error)
}

type service struct {
	repo associationRepository
	gyms gymFinder
	pts  ptFinder
	now  func() time.Time
}

// NewService builds an association service.
func NewService(repo associationRepository, gymsRepo gymFinder, ptsRepo ptFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("association repository required")
	}
	if gymsRepo == nil {
		return nil, fmt.Errorf("gyms repository required")
	}
	if ptsRepo == nil {
		return nil, fmt.Errorf("pt repository required")
	}
	return &service{repo: repo, gyms: gymsRepo, pts: ptsRepo, now: time.Now}, nil
}

// Request opens a pending linkage between a gym and a trainer profile.
// The gym's owner or an admin names both parties.
func (s *service) Request(ctx context.Context, actor Actor, gymID, ptUserID uuid.UUID) (*AssociationDTO, error) {
	gym, err := s.gyms.FindByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "gym not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gym")
	}
	if actor.Role != enums.UserRoleAdmin && gym.OwnerUserID != actor.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the gym owner")
	}

	pt, err := s.pts.FindByID(ctx, ptUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "trainer profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load trainer profile")
	}

	// One request per pair, ever. A rejected pair stays closed.
	if _, err := s.repo.FindByPair(ctx, gymID, pt.ID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "association already requested")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing association")
	}

	assoc := &models.GymPTAssociation{
		ID:       uuid.New(),
		GymID:    gymID,
		PTUserID: pt.ID,
		Status:   enums.ApprovalStatusPending,
	}
	if err := s.repo.Create(ctx, assoc); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "association already requested")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create association")
	}
	return FromModel(assoc), nil
}

// loadForModeration fetches the association and verifies the caller may
// rule on it. Gym owners moderate their own gym's requests; admins
// moderate anything.
func (s *service) loadForModeration(ctx context.Context, actor Actor, associationID uuid.UUID) (*models.GymPTAssociation, error) {
	assoc, err := s.repo.FindByID(ctx, associationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "association not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load association")
	}

	if actor.Role != enums.UserRoleAdmin {
		gym, err := s.gyms.FindByID(ctx, assoc.GymID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gym")
		}
		if gym.OwnerUserID != actor.ID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the gym owner")
		}
	}
	return assoc, nil
}

func (s *service) Approve(ctx context.Context, actor Actor, associationID uuid.UUID) (*AssociationDTO, error) {
	assoc, err := s.loadForModeration(ctx, actor, associationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	assoc.Status = enums.ApprovalStatusApproved
	assoc.RejectionReason = nil
	assoc.ModeratedByUserID = &actor.ID
	assoc.ModeratedAt = &now

	if err := s.repo.Update(ctx, assoc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve association")
	}
	return FromModel(assoc), nil
}

func (s *service) Reject(ctx context.Context, actor Actor, associationID uuid.UUID, reason string) (*AssociationDTO, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rejection reason is required")
	}

	assoc, err := s.loadForModeration(ctx, actor, associationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	assoc.Status = enums.ApprovalStatusRejected
	assoc.RejectionReason = &reason
	assoc.ModeratedByUserID = &actor.ID
	assoc.ModeratedAt = &now

	if err := s.repo.Update(ctx, assoc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject association")
	}
	return FromModel(assoc), nil
}

func (s *service) page(rows []models.GymPTAssociation, params pagination.Params, total int64) pagination.Page[AssociationDTO] {
	dtos := make([]AssociationDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return pagination.NewPage(dtos, params, total)
}

func (s *service) ListByGym(ctx context.Context, gymID uuid.UUID, params pagination.Params) (pagination.Page[AssociationDTO], error) {
	rows, total, err := s.repo.ListByGym(ctx, gymID, params)
	if err != nil {
		return pagination.Page[AssociationDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list associations")
	}
	return s.page(rows, params, total), nil
}

func (s *service) ListByPT(ctx context.Context, ptUserID uuid.UUID, params pagination.Params) (pagination.Page[AssociationDTO], error) {
	rows, total, err := s.repo.ListByPT(ctx, ptUserID, params)
	if err != nil {
		return pagination.Page[AssociationDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list associations")
	}
	return s.page(rows, params, total), nil
}

func (s *service) ListPending(ctx context.Context, params pagination.Params) (pagination.Page[AssociationDTO], error) {
	rows, total, err := s.repo.ListPending(ctx, params)
	if err != nil {
		return pagination.Page[AssociationDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending associations")
	}
	return s.page(rows, params, total), nil
}
