package ptusers

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/easybody/easybody-backend/internal/geo"
	"github.com/easybody/easybody-backend/internal/gyms"
	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/db"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ptRepository interface {
	Create(ctx context.Context, dto CreatePTUserDTO) (*models.PTUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PTUser, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.PTUser, error)
	Update(ctx context.Context, pt *models.PTUser) error
	List(ctx context.Context, params pagination.Params) ([]models.PTUser, int64, error)
	FindInBox(ctx context.Context, box geo.BoundingBox) ([]models.PTUser, error)
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service exposes trainer profile operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input CreatePTUserInput) (*PTUserDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PTUserDTO, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*PTUserDTO, error)
	Update(ctx context.Context, actorID, profileID uuid.UUID, input UpdatePTUserInput) (*PTUserDTO, error)
	List(ctx context.Context, params pagination.Params) (pagination.Page[PTUserDTO], error)
	Near(ctx context.Context, query NearQuery) ([]PTUserWithDistanceDTO, error)
}

type service struct {
	repo      ptRepository
	users     usersRepository
	searchCfg config.SearchConfig
}

// NewService builds a trainer profile service.
func NewService(repo ptRepository, usersRepo usersRepository, searchCfg config.SearchConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pt repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, users: usersRepo, searchCfg: searchCfg}, nil
}

// CreatePTUserInput captures the fields accepted when opening a profile.
type CreatePTUserInput struct {
	Bio               *string
	Specializations   *string
	Certifications    *string
	YearsOfExperience *int
	ProfileImageURL   *string
	Location          *gyms.LocationInput
}

// NearQuery is a proximity lookup around a point.
type NearQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreatePTUserInput) (*PTUserDTO, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown account")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	if actor.Role != enums.UserRolePT {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only trainer accounts can open a profile")
	}

	if _, err := s.repo.FindByUserID(ctx, actorID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "profile already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing profile")
	}

	pt, err := s.repo.Create(ctx, CreatePTUserDTO{
		UserID:            actorID,
		Bio:               input.Bio,
		Specializations:   input.Specializations,
		Certifications:    input.Certifications,
		YearsOfExperience: input.YearsOfExperience,
		ProfileImageURL:   input.ProfileImageURL,
		Location:          input.Location,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "profile already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
	}
	return FromModel(pt), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PTUserDTO, error) {
	pt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return FromModel(pt), nil
}

func (s *service) GetByUserID(ctx context.Context, userID uuid.UUID) (*PTUserDTO, error) {
	pt, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return FromModel(pt), nil
}

func (s *service) Update(ctx context.Context, actorID, profileID uuid.UUID, input UpdatePTUserInput) (*PTUserDTO, error) {
	pt, err := s.repo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	if pt.UserID != actorID {
		actor, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
		}
		if actor.Role != enums.UserRoleAdmin {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the profile owner")
		}
	}

	if input.Bio != nil {
		pt.Bio = input.Bio
	}
	if input.Specializations != nil {
		pt.Specializations = input.Specializations
	}
	if input.Certifications != nil {
		pt.Certifications = input.Certifications
	}
	if input.YearsOfExperience != nil {
		pt.YearsOfExperience = input.YearsOfExperience
	}
	if input.ProfileImageURL != nil {
		pt.ProfileImageURL = input.ProfileImageURL
	}
	if input.Location != nil {
		if pt.Location == nil {
			pt.Location = input.Location.ToModel()
		} else {
			loc := input.Location
			pt.Location.Address = loc.Address
			pt.Location.City = loc.City
			pt.Location.State = loc.State
			pt.Location.Country = loc.Country
			pt.Location.PostalCode = loc.PostalCode
			pt.Location.Latitude = loc.Latitude
			pt.Location.Longitude = loc.Longitude
		}
	}

	if err := s.repo.Update(ctx, pt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return FromModel(pt), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (pagination.Page[PTUserDTO], error) {
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return pagination.Page[PTUserDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list trainer profiles")
	}
	dtos := make([]PTUserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return pagination.NewPage(dtos, params, total), nil
}

func (s *service) Near(ctx context.Context, query NearQuery) ([]PTUserWithDistanceDTO, error) {
	radius := query.RadiusKm
	if radius <= 0 {
		radius = s.searchCfg.DefaultRadiusKm
	}
	if radius > s.searchCfg.MaxRadiusKm {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "radius exceeds the supported maximum")
	}

	box := geo.NewBoundingBox(query.Latitude, query.Longitude, radius)
	rows, err := s.repo.FindInBox(ctx, box)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search profiles")
	}

	results := make([]PTUserWithDistanceDTO, 0, len(rows))
	for i := range rows {
		pt := &rows[i]
		if pt.Location == nil {
			continue
		}
		d := geo.DistanceKm(query.Latitude, query.Longitude, pt.Location.Latitude, pt.Location.Longitude)
		if d > radius {
			continue
		}
		results = append(results, PTUserWithDistanceDTO{PTUserDTO: *FromModel(pt), DistanceKm: d})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}
