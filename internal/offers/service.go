package offers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/easybody/easybody-backend/internal/geo"
	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type offerRepository interface {
	Create(ctx context.Context, dto CreateOfferDTO) (*models.Offer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	ListByStatus(ctx context.Context, status enums.OfferStatus, params pagination.Params) ([]models.Offer, int64, error)
	Search(ctx context.Context, filter SearchFilter, params pagination.Params) ([]models.Offer, int64, error)
	SearchInBox(ctx context.Context, filter SearchFilter, box geo.BoundingBox) ([]models.Offer, error)
}

type gymFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Gym, error)
}

type ptFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.PTUser, error)
}

// Actor identifies the authenticated caller for visibility decisions.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// Service exposes listing operations.
type Service interface {
	Create(ctx context.Context, actor Actor, input CreateOfferInput) (*OfferDTO, error)
	GetByID(ctx context.Context, actor *Actor, id uuid.UUID) (*OfferDTO, error)
	Update(ctx context.Context, actor Actor, offerID uuid.UUID, input UpdateOfferInput) (*OfferDTO, error)
	Approve(ctx context.Context, moderatorID, offerID uuid.UUID) (*OfferDTO, error)
	Reject(ctx context.Context, moderatorID, offerID uuid.UUID, reason string) (*OfferDTO, error)
	ListPending(ctx context.Context, params pagination.Params) (pagination.Page[OfferDTO], error)
	Search(ctx context.Context, input SearchInput) (pagination.Page[OfferWithDistanceDTO], error)
}

type service struct {
	repo      offerRepository
	gyms      gymFinder
	pts       ptFinder
	searchCfg config.SearchConfig
	now       func() time.Time
}

// NewService builds a listing service with the provided repositories.
func NewService(repo offerRepository, gymsRepo gymFinder, ptsRepo ptFinder, searchCfg config.SearchConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("offer repository required")
	}
	if gymsRepo == nil {
		return nil, fmt.Errorf("gyms repository required")
	}
	if ptsRepo == nil {
		return nil, fmt.Errorf("pt repository required")
	}
	return &service{
		repo:      repo,
		gyms:      gymsRepo,
		pts:       ptsRepo,
		searchCfg: searchCfg,
		now:       time.Now,
	}, nil
}

// CreateOfferInput captures the fields accepted when publishing a
// listing.
type CreateOfferInput struct {
	Title               string
	Description         string
	OfferType           enums.OfferType
	GymID               *uuid.UUID
	PTUserID            *uuid.UUID
	Price               decimal.Decimal
	Currency            string
	DurationDescription *string
	ImageURLs           []string
}

// SearchInput is a composable listing search. Latitude and Longitude
// must be supplied together to enable distance ranking.
type SearchInput struct {
	Filter    SearchFilter
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
	Page      pagination.Params
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateOfferInput) (*OfferDTO, error) {
	if !input.OfferType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid offer type")
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}

	switch input.OfferType {
	case enums.OfferTypeGym:
		if input.GymID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "gym offers require a gym")
		}
		if input.PTUserID != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "gym offers cannot name a trainer profile")
		}
		gym, err := s.gyms.FindByID(ctx, *input.GymID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "gym not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gym")
		}
		if gym.OwnerUserID != actor.ID && actor.Role != enums.UserRoleAdmin {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the gym owner")
		}
	case enums.OfferTypePT:
		if input.PTUserID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "trainer offers require a trainer profile")
		}
		if input.GymID != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "trainer offers cannot name a gym")
		}
		pt, err := s.pts.FindByID(ctx, *input.PTUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "trainer profile not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load trainer profile")
		}
		if pt.UserID != actor.ID && actor.Role != enums.UserRoleAdmin {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the profile owner")
		}
	}

	offer, err := s.repo.Create(ctx, CreateOfferDTO{
		Title:               input.Title,
		Description:         input.Description,
		OfferType:           input.OfferType,
		GymID:               input.GymID,
		PTUserID:            input.PTUserID,
		Price:               input.Price,
		Currency:            input.Currency,
		DurationDescription: input.DurationDescription,
		ImageURLs:           input.ImageURLs,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create offer")
	}
	return FromModel(offer), nil
}

// ownerID resolves the account that controls the listing.
func (s *service) ownerID(ctx context.Context, offer *models.Offer) (uuid.UUID, error) {
	switch {
	case offer.GymID != nil:
		if offer.Gym != nil {
			return offer.Gym.OwnerUserID, nil
		}
		gym, err := s.gyms.FindByID(ctx, *offer.GymID)
		if err != nil {
			return uuid.Nil, err
		}
		return gym.OwnerUserID, nil
	case offer.PTUserID != nil:
		if offer.PTUser != nil {
			return offer.PTUser.UserID, nil
		}
		pt, err := s.pts.FindByID(ctx, *offer.PTUserID)
		if err != nil {
			return uuid.Nil, err
		}
		return pt.UserID, nil
	default:
		return uuid.Nil, fmt.Errorf("offer %s has no publisher", offer.ID)
	}
}

func (s *service) GetByID(ctx context.Context, actor *Actor, id uuid.UUID) (*OfferDTO, error) {
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}

	// Unapproved or inactive listings stay hidden from everyone but
	// their publisher and moderators.
	if offer.Status != enums.OfferStatusApproved || !offer.Active {
		if actor == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		if actor.Role != enums.UserRoleAdmin {
			owner, err := s.ownerID(ctx, offer)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve offer owner")
			}
			if owner != actor.ID {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
			}
		}
	}
	return FromModel(offer), nil
}

func (s *service) Update(ctx context.Context, actor Actor, offerID uuid.UUID, input UpdateOfferInput) (*OfferDTO, error) {
	offer, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}

	if actor.Role != enums.UserRoleAdmin {
		owner, err := s.ownerID(ctx, offer)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve offer owner")
		}
		if owner != actor.ID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the offer owner")
		}
	}

	if input.Title != nil {
		offer.Title = *input.Title
	}
	if input.Description != nil {
		offer.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.LessThanOrEqual(decimal.Zero) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
		}
		offer.Price = *input.Price
	}
	if input.Currency != nil {
		offer.Currency = *input.Currency
	}
	if input.DurationDescription != nil {
		offer.DurationDescription = input.DurationDescription
	}
	if input.ImageURLs != nil {
		offer.ImageURLs = pq.StringArray(input.ImageURLs)
	}
	if input.Active != nil {
		offer.Active = *input.Active
	}

	// Any edit sends the listing back through moderation.
	offer.Status = enums.OfferStatusPending
	offer.RejectionReason = nil
	offer.ModeratedByUserID = nil
	offer.ModeratedAt = nil

	if err := s.repo.Update(ctx, offer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update offer")
	}
	return FromModel(offer), nil
}

func (s *service) Approve(ctx context.Context, moderatorID, offerID uuid.UUID) (*OfferDTO, error) {
	offer, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}

	now := s.now()
	offer.Status = enums.OfferStatusApproved
	offer.RejectionReason = nil
	offer.ModeratedByUserID = &moderatorID
	offer.ModeratedAt = &now

	if err := s.repo.Update(ctx, offer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve offer")
	}
	return FromModel(offer), nil
}

func (s *service) Reject(ctx context.Context, moderatorID, offerID uuid.UUID, reason string) (*OfferDTO, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rejection reason is required")
	}

	offer, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}

	now := s.now()
	offer.Status = enums.OfferStatusRejected
	offer.RejectionReason = &reason
	offer.ModeratedByUserID = &moderatorID
	offer.ModeratedAt = &now

	if err := s.repo.Update(ctx, offer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject offer")
	}
	return FromModel(offer), nil
}

func (s *service) ListPending(ctx context.Context, params pagination.Params) (pagination.Page[OfferDTO], error) {
	rows, total, err := s.repo.ListByStatus(ctx, enums.OfferStatusPending, params)
	if err != nil {
		return pagination.Page[OfferDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending offers")
	}
	dtos := make([]OfferDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return pagination.NewPage(dtos, params, total), nil
}

func (s *service) Search(ctx context.Context, input SearchInput) (pagination.Page[OfferWithDistanceDTO], error) {
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return pagination.Page[OfferWithDistanceDTO]{}, pkgerrors.New(pkgerrors.CodeValidation, "latitude and longitude must be supplied together")
	}
	if input.Filter.MinPrice != nil && input.Filter.MaxPrice != nil && input.Filter.MinPrice.GreaterThan(*input.Filter.MaxPrice) {
		return pagination.Page[OfferWithDistanceDTO]{}, pkgerrors.New(pkgerrors.CodeValidation, "min price exceeds max price")
	}
	if input.Filter.SortBy != nil {
		if _, ok := searchSortColumns[*input.Filter.SortBy]; !ok {
			return pagination.Page[OfferWithDistanceDTO]{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort field")
		}
	}
	if input.Filter.OfferType != nil && !input.Filter.OfferType.IsValid() {
		return pagination.Page[OfferWithDistanceDTO]{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid offer type")
	}
	if input.Filter.Status != nil && !input.Filter.Status.IsValid() {
		return pagination.Page[OfferWithDistanceDTO]{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid offer status")
	}

	if input.Latitude == nil {
		rows, total, err := s.repo.Search(ctx, input.Filter, input.Page)
		if err != nil {
			return pagination.Page[OfferWithDistanceDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search offers")
		}
		dtos := make([]OfferWithDistanceDTO, 0, len(rows))
		for i := range rows {
			dtos = append(dtos, OfferWithDistanceDTO{OfferDTO: *FromModel(&rows[i])})
		}
		return pagination.NewPage(dtos, input.Page, total), nil
	}

	radius := s.searchCfg.DefaultRadiusKm
	if input.RadiusKm != nil {
		radius = *input.RadiusKm
	}
	if radius <= 0 {
		return pagination.Page[OfferWithDistanceDTO]{}, pkgerrors.New(pkgerrors.CodeValidation, "radius must be positive")
	}
	if radius > s.searchCfg.MaxRadiusKm {
		return pagination.Page[OfferWithDistanceDTO]{}, pkgerrors.New(pkgerrors.CodeValidation, "radius exceeds the supported maximum")
	}

	box := geo.NewBoundingBox(*input.Latitude, *input.Longitude, radius)
	rows, err := s.repo.SearchInBox(ctx, input.Filter, box)
	if err != nil {
		return pagination.Page[OfferWithDistanceDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search offers")
	}

	hits := make([]OfferWithDistanceDTO, 0, len(rows))
	for i := range rows {
		offer := &rows[i]
		loc := publisherLocation(offer)
		if loc == nil {
			continue
		}
		d := geo.DistanceKm(*input.Latitude, *input.Longitude, loc.Latitude, loc.Longitude)
		if d > radius {
			continue
		}
		hit := OfferWithDistanceDTO{OfferDTO: *FromModel(offer)}
		hit.DistanceKm = &d
		hits = append(hits, hit)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return *hits[i].DistanceKm < *hits[j].DistanceKm
	})

	params := input.Page.Normalize()
	total := int64(len(hits))
	start := params.Offset()
	if start > len(hits) {
		start = len(hits)
	}
	end := start + params.Size
	if end > len(hits) {
		end = len(hits)
	}
	return pagination.NewPage(hits[start:end], params, total), nil
}

func publisherLocation(offer *models.Offer) *models.Location {
	if offer.Gym != nil && offer.Gym.Location != nil {
		return offer.Gym.Location
	}
	if offer.PTUser != nil && offer.PTUser.Location != nil {
		return offer.PTUser.Location
	}
	return nil
}
