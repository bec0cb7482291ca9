package gyms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/easybody/easybody-backend/internal/geo"
	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gymRepository interface {
	Create(ctx context.Context, dto CreateGymDTO) (*models.Gym, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Gym, error)
	Update(ctx context.Context, gym *models.Gym) error
	List(ctx context.Context, params pagination.Params) ([]models.Gym, int64, error)
	SearchByTerm(ctx context.Context, q string, params pagination.Params) ([]models.Gym, int64, error)
	FindInBox(ctx context.Context, box geo.BoundingBox) ([]models.Gym, error)
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service exposes gym operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input CreateGymInput) (*GymDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*GymDTO, error)
	Update(ctx context.Context, actorID, gymID uuid.UUID, input UpdateGymInput) (*GymDTO, error)
	List(ctx context.Context, params pagination.Params) (pagination.Page[GymDTO], error)
	Search(ctx context.Context, q string, params pagination.Params) (pagination.Page[GymDTO], error)
	Near(ctx context.Context, query NearQuery) ([]GymWithDistanceDTO, error)
}

type service struct {
	repo      gymRepository
	users     usersRepository
	searchCfg config.SearchConfig
}

// NewService builds a gym service with the provided repositories.
func NewService(repo gymRepository, usersRepo usersRepository, searchCfg config.SearchConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("gym repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, users: usersRepo, searchCfg: searchCfg}, nil
}

// CreateGymInput captures the fields accepted when registering a gym.
type CreateGymInput struct {
	Name        string
	Description *string
	LogoURL     *string
	PhoneNumber string
	Email       *string
	Website     *string
	Location    *LocationInput
}

// NearQuery is a proximity lookup around a point.
type NearQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateGymInput) (*GymDTO, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown account")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	if actor.Role != enums.UserRoleGymStaff && actor.Role != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only gym staff can register gyms")
	}

	gym, err := s.repo.Create(ctx, CreateGymDTO{
		Name:        input.Name,
		Description: input.Description,
		LogoURL:     input.LogoURL,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Website:     input.Website,
		OwnerUserID: actorID,
		Location:    input.Location,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create gym")
	}
	return FromModel(gym), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*GymDTO, error) {
	gym, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "gym not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gym")
	}
	return FromModel(gym), nil
}

func (s *service) Update(ctx context.Context, actorID, gymID uuid.UUID, input UpdateGymInput) (*GymDTO, error) {
	gym, err := s.repo.FindByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "gym not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gym")
	}

	if gym.OwnerUserID != actorID {
		actor, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
		}
		if actor.Role != enums.UserRoleAdmin {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the gym owner")
		}
	}

	if input.Name != nil {
		gym.Name = *input.Name
	}
	if input.Description != nil {
		gym.Description = input.Description
	}
	if input.LogoURL != nil {
		gym.LogoURL = input.LogoURL
	}
	if input.PhoneNumber != nil {
		gym.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		gym.Email = input.Email
	}
	if input.Website != nil {
		gym.Website = input.Website
	}
	if input.Location != nil {
		if gym.Location == nil {
			gym.Location = input.Location.ToModel()
		} else {
			loc := input.Location
			gym.Location.Address = loc.Address
			gym.Location.City = loc.City
			gym.Location.State = loc.State
			gym.Location.Country = loc.Country
			gym.Location.PostalCode = loc.PostalCode
			gym.Location.Latitude = loc.Latitude
			gym.Location.Longitude = loc.Longitude
		}
	}

	if err := s.repo.Update(ctx, gym); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update gym")
	}
	return FromModel(gym), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (pagination.Page[GymDTO], error) {
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return pagination.Page[GymDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list gyms")
	}
	dtos := make([]GymDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return pagination.NewPage(dtos, params, total), nil
}

func (s *service) Search(ctx context.Context, q string, params pagination.Params) (pagination.Page[GymDTO], error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return pagination.Page[GymDTO]{}, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	rows, total, err := s.repo.SearchByTerm(ctx, q, params)
	if err != nil {
		return pagination.Page[GymDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search gyms")
	}
	dtos := make([]GymDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return pagination.NewPage(dtos, params, total), nil
}

func (s *service) Near(ctx context.Context, query NearQuery) ([]GymWithDistanceDTO, error) {
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search gyms")
	}

	results := make([]GymWithDistanceDTO, 0, len(rows))
	for i := range rows {
		gym := &rows[i]
		if gym.Location == nil {
			continue
		}
		d := geo.DistanceKm(query.Latitude, query.Longitude, gym.Location.Latitude, gym.Location.Longitude)
		if d > radius {
			continue
		}
		results = append(results, GymWithDistanceDTO{GymDTO: *FromModel(gym), DistanceKm: d})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}
