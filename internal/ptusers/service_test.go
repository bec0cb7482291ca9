package ptusers

import (
	"context"
	"errors"
	"testing"

	"github.com/easybody/easybody-backend/internal/geo"
	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubPTRepo struct {
	profile  *models.PTUser
	byUser   *models.PTUser
	inBox    []models.PTUser
	err      error
	createID uuid.UUID
}

func (s *stubPTRepo) Create(_ context.Context, dto CreatePTUserDTO) (*models.PTUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	pt := dto.ToModel()
	pt.ID = s.createID
	return pt, nil
}

func (s *stubPTRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.PTUser, error) {
	if s.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.profile, nil
}

func (s *stubPTRepo) FindByUserID(_ context.Context, _ uuid.UUID) (*models.PTUser, error) {
	if s.byUser == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.byUser, nil
}

func (s *stubPTRepo) Update(_ context.Context, pt *models.PTUser) error {
	s.profile = pt
	return nil
}

func (s *stubPTRepo) List(_ context.Context, _ pagination.Params) ([]models.PTUser, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.inBox, int64(len(s.inBox)), nil
}

func (s *stubPTRepo) FindInBox(_ context.Context, _ geo.BoundingBox) ([]models.PTUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.inBox, nil
}

type stubUsersRepo struct {
	user *models.User
	err  error
}

func (s stubUsersRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{DefaultRadiusKm: 10, MaxRadiusKm: 100}
}

func TestServiceCreateRequiresTrainerRole(t *testing.T) {
	svc, err := NewService(&stubPTRepo{}, stubUsersRepo{user: &models.User{Role: enums.UserRoleClient}}, testSearchConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), uuid.New(), CreatePTUserInput{})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", gotErr)
	}
}

func TestServiceCreateRejectsSecondProfile(t *testing.T) {
	userID := uuid.New()
	repo := &stubPTRepo{byUser: &models.PTUser{ID: uuid.New(), UserID: userID}}
	svc, _ := NewService(repo, stubUsersRepo{user: &models.User{ID: userID, Role: enums.UserRolePT}}, testSearchConfig())

	_, gotErr := svc.Create(context.Background(), userID, CreatePTUserInput{})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", gotErr)
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	userID := uuid.New()
	repo := &stubPTRepo{createID: uuid.New()}
	svc, _ := NewService(repo, stubUsersRepo{user: &models.User{ID: userID, Role: enums.UserRolePT}}, testSearchConfig())

	bio := "Strength coach"
	dto, err := svc.Create(context.Background(), userID, CreatePTUserInput{Bio: &bio})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if dto.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, dto.UserID)
	}
	if dto.Bio == nil || *dto.Bio != bio {
		t.Fatalf("expected bio to round-trip, got %v", dto.Bio)
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, _ := NewService(&stubPTRepo{}, stubUsersRepo{}, testSearchConfig())

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", gotErr)
	}
}

func TestServiceUpdateRequiresOwnership(t *testing.T) {
	profile := &models.PTUser{ID: uuid.New(), UserID: uuid.New()}
	svc, _ := NewService(&stubPTRepo{profile: profile}, stubUsersRepo{user: &models.User{Role: enums.UserRolePT}}, testSearchConfig())

	bio := "x"
	_, gotErr := svc.Update(context.Background(), uuid.New(), profile.ID, UpdatePTUserInput{Bio: &bio})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", gotErr)
	}
}

func TestServiceNearDependencyError(t *testing.T) {
	svc, _ := NewService(&stubPTRepo{err: errors.New("boom")}, stubUsersRepo{}, testSearchConfig())

	_, gotErr := svc.Near(context.Background(), NearQuery{Latitude: 40, Longitude: -73, RadiusKm: 5})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
}

func TestServiceNearSortsByDistance(t *testing.T) {
	mkProfile := func(lat, lng float64) models.PTUser {
		return models.PTUser{
			ID:       uuid.New(),
			UserID:   uuid.New(),
			Active:   true,
			Location: &models.Location{ID: uuid.New(), Address: "a", City: "c", Latitude: lat, Longitude: lng},
		}
	}
	far := mkProfile(40.03, -73)
	nearby := mkProfile(40.005, -73)
	svc, _ := NewService(&stubPTRepo{inBox: []models.PTUser{far, nearby}}, stubUsersRepo{}, testSearchConfig())

	results, err := svc.Near(context.Background(), NearQuery{Latitude: 40, Longitude: -73, RadiusKm: 10})
	if err != nil {
		t.Fatalf("near: %v", err)
	}
	if len(results) != 2 || results[0].ID != nearby.ID {
		t.Fatalf("expected nearest first, got %+v", results)
	}
}

func TestListReturnsActiveProfiles(t *testing.T) {
	pt := models.PTUser{ID: uuid.New(), UserID: uuid.New(), Active: true}
	repo := &stubPTRepo{inBox: []models.PTUser{pt}}
	svc, _ := NewService(repo, stubUsersRepo{}, testSearchConfig())

	page, err := svc.List(context.Background(), pagination.Params{})
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].ID != pt.ID {
		t.Fatalf("unexpected results %+v", page.Content)
	}
}

func TestGetByUserIDNotFound(t *testing.T) {
	svc, _ := NewService(&stubPTRepo{}, stubUsersRepo{}, testSearchConfig())

	_, err := svc.GetByUserID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
