package reports

import (
	"context"
	"testing"
	"time"

	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubReportRepo struct {
	report  *models.Report
	created *models.Report
	updated *models.Report
	listed  []models.Report
}

func (s *stubReportRepo) Create(_ context.Context, report *models.Report) error {
	s.created = report
	return nil
}

func (s *stubReportRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Report, error) {
	if s.report == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.report, nil
}

func (s *stubReportRepo) Update(_ context.Context, report *models.Report) error {
	s.updated = report
	return nil
}

func (s *stubReportRepo) ListByStatus(_ context.Context, _ enums.ReportStatus, _ pagination.Params) ([]models.Report, int64, error) {
	return s.listed, int64(len(s.listed)), nil
}

type stubOfferFinder struct {
	offer *models.Offer
}

func (s stubOfferFinder) FindByID(_ context.Context, _ uuid.UUID) (*models.Offer, error) {
	if s.offer == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.offer, nil
}

type stubUserFinder struct {
	user *models.User
}

func (s stubUserFinder) FindByID(_ context.Context, _ uuid.UUID) (*models.User, error) {
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubLimiter struct {
	allowed bool
	calls   int
}

func (s *stubLimiter) FixedWindowAllow(_ context.Context, _ string, _ int64, _ time.Duration) (bool, int64, error) {
	s.calls++
	return s.allowed, int64(s.calls), nil
}

func limitCfg() config.ReportRateLimitConfig {
	return config.ReportRateLimitConfig{Window: time.Hour, Limit: 10}
}

func TestCreateRequiresExactlyOneTarget(t *testing.T) {
	svc, err := NewService(&stubReportRepo{}, stubOfferFinder{}, stubUserFinder{}, nil, limitCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	offerID := uuid.New()
	userID := uuid.New()

	// Neither target.
	_, gotErr := svc.Create(context.Background(), uuid.New(), CreateReportInput{Reason: "spam"})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}

	// Both targets.
	_, gotErr = svc.Create(context.Background(), uuid.New(), CreateReportInput{Reason: "spam", OfferID: &offerID, ReportedUserID: &userID})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestCreateOfferReport(t *testing.T) {
	repo := &stubReportRepo{}
	svc, _ := NewService(repo, stubOfferFinder{offer: &models.Offer{ID: uuid.New()}}, stubUserFinder{}, nil, limitCfg())

	offerID := uuid.New()
	dto, err := svc.Create(context.Background(), uuid.New(), CreateReportInput{Reason: "misleading", OfferID: &offerID})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if dto.Status != enums.ReportStatusPending {
		t.Fatalf("expected pending, got %s", dto.Status)
	}
	if repo.created == nil {
		t.Fatal("expected repository create call")
	}
}

func TestCreateRejectsSelfReport(t *testing.T) {
	svc, _ := NewService(&stubReportRepo{}, stubOfferFinder{}, stubUserFinder{user: &models.User{}}, nil, limitCfg())

	reporter := uuid.New()
	_, err := svc.Create(context.Background(), reporter, CreateReportInput{Reason: "abuse", ReportedUserID: &reporter})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateMissingOfferTarget(t *testing.T) {
	svc, _ := NewService(&stubReportRepo{}, stubOfferFinder{}, stubUserFinder{}, nil, limitCfg())

	offerID := uuid.New()
	_, err := svc.Create(context.Background(), uuid.New(), CreateReportInput{Reason: "spam", OfferID: &offerID})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateRateLimited(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	svc, _ := NewService(&stubReportRepo{}, stubOfferFinder{offer: &models.Offer{}}, stubUserFinder{}, limiter, limitCfg())

	offerID := uuid.New()
	_, err := svc.Create(context.Background(), uuid.New(), CreateReportInput{Reason: "spam", OfferID: &offerID})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected one limiter call, got %d", limiter.calls)
	}
}

func TestResolveStampsReviewer(t *testing.T) {
	report := &models.Report{ID: uuid.New(), Status: enums.ReportStatusPending}
	repo := &stubReportRepo{report: report}
	svc, _ := NewService(repo, stubOfferFinder{}, stubUserFinder{}, nil, limitCfg())

	reviewer := uuid.New()
	notes := "verified and removed"
	dto, err := svc.Resolve(context.Background(), reviewer, report.ID, &notes)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if dto.Status != enums.ReportStatusResolved {
		t.Fatalf("expected resolved, got %s", dto.Status)
	}
	if dto.ReviewedByUserID == nil || *dto.ReviewedByUserID != reviewer {
		t.Fatal("expected reviewer stamp")
	}
	if dto.ReviewNotes == nil || *dto.ReviewNotes != notes {
		t.Fatalf("expected notes, got %v", dto.ReviewNotes)
	}
}

func TestDismiss(t *testing.T) {
	report := &models.Report{ID: uuid.New(), Status: enums.ReportStatusPending}
	svc, _ := NewService(&stubReportRepo{report: report}, stubOfferFinder{}, stubUserFinder{}, nil, limitCfg())

	dto, err := svc.Dismiss(context.Background(), uuid.New(), report.ID, nil)
	if err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if dto.Status != enums.ReportStatusDismissed {
		t.Fatalf("expected dismissed, got %s", dto.Status)
	}
}

func TestListByStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := NewService(&stubReportRepo{}, stubOfferFinder{}, stubUserFinder{}, nil, limitCfg())

	_, err := svc.ListByStatus(context.Background(), enums.ReportStatus("WEIRD"), pagination.Params{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
