package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/easybody/easybody-backend/pkg/db"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ratingRepository interface {
	FindByOfferAndClient(ctx context.Context, offerID, clientID uuid.UUID) (*models.Rating, error)
	ListByOffer(ctx context.Context, offerID uuid.UUID, params pagination.Params) ([]models.Rating, int64, error)
	CreateWithTx(tx *gorm.DB, rating *models.Rating) error
	StatsWithTx(tx *gorm.DB, offerID uuid.UUID) (int64, int64, error)
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes rating operations.
type Service interface {
	Add(ctx context.Context, clientID uuid.UUID, input AddRatingInput) (*RatingDTO, error)
	ListByOffer(ctx context.Context, offerID uuid.UUID, params pagination.Params) (pagination.Page[RatingDTO], error)
}

type service struct {
	repo  ratingRepository
	users usersRepository
	tx    txRunner
}

// NewService builds a rating service.
func NewService(repo ratingRepository, usersRepo usersRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rating repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, users: usersRepo, tx: tx}, nil
}

// AddRatingInput captures a client's score for an offer.
type AddRatingInput struct {
	OfferID uuid.UUID
	Score   int
	Comment *string
}

func (s *service) Add(ctx context.Context, clientID uuid.UUID, input AddRatingInput) (*RatingDTO, error) {
	if input.Score < 1 || input.Score > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "score must be between 1 and 5")
	}

	client, err := s.users.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown account")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	if client.Role != enums.UserRoleClient {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only clients can rate offers")
	}

	if _, err := s.repo.FindByOfferAndClient(ctx, input.OfferID, clientID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "offer already rated")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing rating")
	}

	rating := &models.Rating{
		ID:           uuid.New(),
		OfferID:      input.OfferID,
		ClientUserID: clientID,
		Score:        input.Score,
		Comment:      input.Comment,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		// Lock the offer row so concurrent ratings serialize their
		// aggregate recomputes.
		var offer models.Offer
		if err := db.LockForUpdate(tx).Where("id = ?", input.OfferID).First(&offer).Error; err != nil {
			return err
		}
		if offer.Status != enums.OfferStatusApproved || !offer.Active {
			return pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}

		if err := s.repo.CreateWithTx(tx, rating); err != nil {
			return err
		}

		count, sum, err := s.repo.StatsWithTx(tx, input.OfferID)
		if err != nil {
			return err
		}

		avg := decimal.Zero
		if count > 0 {
			avg = decimal.NewFromInt(sum).
				Div(decimal.NewFromInt(count)).
				Round(2)
		}

		return tx.Model(&models.Offer{}).
			Where("id = ?", input.OfferID).
			Updates(map[string]any{
				"average_rating": avg,
				"rating_count":   count,
			}).Error
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "offer already rated")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add rating")
	}
	return FromModel(rating), nil
}

func (s *service) ListByOffer(ctx context.Context, offerID uuid.UUID, params pagination.Params) (pagination.Page[RatingDTO], error) {
	rows, total, err := s.repo.ListByOffer(ctx, offerID, params)
	if err != nil {
		return pagination.Page[RatingDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ratings")
	}
	dtos := make([]RatingDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return pagination.NewPage(dtos, params, total), nil
}
