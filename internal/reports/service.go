package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	Update(ctx context.Context, report *models.Report) error
	ListByStatus(ctx context.Context, status enums.ReportStatus, params pagination.Params) ([]models.Report, int64, error)
}

type offerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Service exposes report operations.
type Service interface {
	Create(ctx context.Context, reporterID uuid.UUID, input CreateReportInput) (*ReportDTO, error)
	Resolve(ctx context.Context, reviewerID, reportID uuid.UUID, notes *string) (*ReportDTO, error)
	Dismiss(ctx context.Context, reviewerID, reportID uuid.UUID, notes *string) (*ReportDTO, error)
	ListByStatus(ctx context.Context, status enums.ReportStatus, params pagination.Params) (pagination.Page[ReportDTO], error)
}

type service struct {
	repo     reportRepository
	offers   offerFinder
	users    userFinder
	limiter  rateLimiter
	limitCfg config.ReportRateLimitConfig
	now      func() time.Time
}

// NewService builds a report service. The limiter is optional; without
// one, report creation is unthrottled.
func NewService(repo reportRepository, offersRepo offerFinder, usersRepo userFinder, limiter rateLimiter, limitCfg config.ReportRateLimitConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("report repository required")
	}
	if offersRepo == nil {
		return nil, fmt.Errorf("offers repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{
		repo:     repo,
		offers:   offersRepo,
		users:    usersRepo,
		limiter:  limiter,
		limitCfg: limitCfg,
		now:      time.Now,
	}, nil
}

// CreateReportInput captures a complaint. Exactly one target must be
// set.
type CreateReportInput struct {
	OfferID        *uuid.UUID
	ReportedUserID *uuid.UUID
	Reason         string
	Details        *string
}

func (s *service) Create(ctx context.Context, reporterID uuid.UUID, input CreateReportInput) (*ReportDTO, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reason is required")
	}
	if (input.OfferID == nil) == (input.ReportedUserID == nil) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of offer or user must be reported")
	}

	if s.limiter != nil && s.limitCfg.Limit > 0 {
		scope := "reports:" + reporterID.String()
		allowed, _, err := s.limiter.FixedWindowAllow(ctx, scope, int64(s.limitCfg.Limit), s.limitCfg.Window)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting")
		}
		if !allowed {
			return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "too many reports, try again later")
		}
	}

	switch {
	case input.OfferID != nil:
		if _, err := s.offers.FindByID(ctx, *input.OfferID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
		}
	case input.ReportedUserID != nil:
		if *input.ReportedUserID == reporterID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot report yourself")
		}
		if _, err := s.users.FindByID(ctx, *input.ReportedUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}
	}

	report := &models.Report{
		ID:               uuid.New(),
		ReportedByUserID: reporterID,
		OfferID:          input.OfferID,
		ReportedUserID:   input.ReportedUserID,
		Reason:           strings.TrimSpace(input.Reason),
		Details:          input.Details,
		Status:           enums.ReportStatusPending,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create report")
	}
	return FromModel(report), nil
}

func (s *service) review(ctx context.Context, reviewerID, reportID uuid.UUID, status enums.ReportStatus, notes *string) (*ReportDTO, error) {
	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}

	now := s.now()
	report.Status = status
	report.ReviewedByUserID = &reviewerID
	report.ReviewedAt = &now
	report.ReviewNotes = notes

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update report")
	}
	return FromModel(report), nil
}

func (s *service) Resolve(ctx context.Context, reviewerID, reportID uuid.UUID, notes *string) (*ReportDTO, error) {
	return s.review(ctx, reviewerID, reportID, enums.ReportStatusResolved, notes)
}

func (s *service) Dismiss(ctx context.Context, reviewerID, reportID uuid.UUID, notes *string) (*ReportDTO, error) {
	return s.review(ctx, reviewerID, reportID, enums.ReportStatusDismissed, notes)
}

func (s *service) ListByStatus(ctx context.Context, status enums.ReportStatus, params pagination.Params) (pagination.Page[ReportDTO], error) {
	if !status.IsValid() {
		return pagination.Page[ReportDTO]{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid report status")
	}
	rows, total, err := s.repo.ListByStatus(ctx, status, params)
	if err != nil {
		return pagination.Page[ReportDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reports")
	}
	dtos := make([]ReportDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return pagination.NewPage(dtos, params, total), nil
}
