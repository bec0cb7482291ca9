package ratings

import (
	"context"
	"testing"

	"github.com/easybody/easybody-backend/internal/users"
	pkgdb "github.com/easybody/easybody-backend/pkg/db"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRatingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  auth_sub TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL UNIQUE,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  phone TEXT,
  role TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	offersTable := `
CREATE TABLE IF NOT EXISTS offers (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  offer_type TEXT NOT NULL,
  gym_id TEXT,
  pt_user_id TEXT,
  price NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USD',
  duration_description TEXT,
  image_urls TEXT,
  status TEXT NOT NULL DEFAULT 'PENDING',
  risk_score NUMERIC NOT NULL DEFAULT 0,
  rejection_reason TEXT,
  moderated_by_user_id TEXT,
  moderated_at DATETIME,
  average_rating NUMERIC NOT NULL DEFAULT 0,
  rating_count INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	ratingsTable := `
CREATE TABLE IF NOT EXISTS ratings (
  id TEXT PRIMARY KEY,
  offer_id TEXT NOT NULL,
  client_user_id TEXT NOT NULL,
  score INTEGER NOT NULL,
  comment TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (offer_id, client_user_id)
);`
	require.NoError(t, db.Exec(usersTable).Error)
	require.NoError(t, db.Exec(offersTable).Error)
	require.NoError(t, db.Exec(ratingsTable).Error)
	require.NoError(t, db.Exec("DELETE FROM ratings").Error)
	require.NoError(t, db.Exec("DELETE FROM offers").Error)
	require.NoError(t, db.Exec("DELETE FROM users").Error)
	return db
}

func newRatingService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), users.NewRepository(db), pkgdb.NewFromGorm(db))
	require.NoError(t, err)
	return svc
}

func seedClient(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		FirstName: "Test",
		LastName:  "Client",
		Role:      enums.UserRoleClient,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedApprovedOffer(t *testing.T, db *gorm.DB) *models.Offer {
	t.Helper()
	gymID := uuid.New()
	offer := &models.Offer{
		ID:          uuid.New(),
		Title:       "Monthly Pass",
		Description: "unlimited",
		OfferType:   enums.OfferTypeGym,
		GymID:       &gymID,
		Price:       decimal.RequireFromString("20.00"),
		Currency:    "USD",
		Status:      enums.OfferStatusApproved,
		Active:      true,
	}
	require.NoError(t, db.Create(offer).Error)
	return offer
}

func reloadOffer(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Offer {
	t.Helper()
	var offer models.Offer
	require.NoError(t, db.First(&offer, "id = ?", id).Error)
	return &offer
}

func TestAddRecomputesAggregates(t *testing.T) {
	db := setupRatingsTestDB(t)
	svc := newRatingService(t, db)
	offer := seedApprovedOffer(t, db)

	first := seedClient(t, db)
	_, err := svc.Add(context.Background(), first.ID, AddRatingInput{OfferID: offer.ID, Score: 5})
	require.NoError(t, err)

	got := reloadOffer(t, db, offer.ID)
	require.Equal(t, 1, got.RatingCount)
	require.True(t, got.AverageRating.Equal(decimal.RequireFromString("5")), "got %s", got.AverageRating)

	second := seedClient(t, db)
	_, err = svc.Add(context.Background(), second.ID, AddRatingInput{OfferID: offer.ID, Score: 4})
	require.NoError(t, err)

	got = reloadOffer(t, db, offer.ID)
	require.Equal(t, 2, got.RatingCount)
	require.True(t, got.AverageRating.Equal(decimal.RequireFromString("4.5")), "got %s", got.AverageRating)

	third := seedClient(t, db)
	_, err = svc.Add(context.Background(), third.ID, AddRatingInput{OfferID: offer.ID, Score: 4})
	require.NoError(t, err)

	got = reloadOffer(t, db, offer.ID)
	require.Equal(t, 3, got.RatingCount)
	require.True(t, got.AverageRating.Equal(decimal.RequireFromString("4.33")), "got %s", got.AverageRating)
}

func TestAddRejectsDuplicate(t *testing.T) {
	db := setupRatingsTestDB(t)
	svc := newRatingService(t, db)
	offer := seedApprovedOffer(t, db)
	client := seedClient(t, db)

	_, err := svc.Add(context.Background(), client.ID, AddRatingInput{OfferID: offer.ID, Score: 5})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), client.ID, AddRatingInput{OfferID: offer.ID, Score: 3})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// The failed attempt must not disturb the aggregates.
	got := reloadOffer(t, db, offer.ID)
	require.Equal(t, 1, got.RatingCount)
	require.True(t, got.AverageRating.Equal(decimal.RequireFromString("5")))
}

func TestAddValidatesScoreRange(t *testing.T) {
	db := setupRatingsTestDB(t)
	svc := newRatingService(t, db)
	offer := seedApprovedOffer(t, db)
	client := seedClient(t, db)

	for _, score := range []int{0, 6, -1} {
		_, err := svc.Add(context.Background(), client.ID, AddRatingInput{OfferID: offer.ID, Score: score})
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "score %d", score)
		require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestAddRequiresClientRole(t *testing.T) {
	db := setupRatingsTestDB(t)
	svc := newRatingService(t, db)
	offer := seedApprovedOffer(t, db)

	staff := &models.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		FirstName: "Gym",
		LastName:  "Staff",
		Role:      enums.UserRoleGymStaff,
		IsActive:  true,
	}
	require.NoError(t, db.Create(staff).Error)

	_, err := svc.Add(context.Background(), staff.ID, AddRatingInput{OfferID: offer.ID, Score: 5})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestAddHidesUnapprovedOffers(t *testing.T) {
	db := setupRatingsTestDB(t)
	svc := newRatingService(t, db)
	client := seedClient(t, db)

	gymID := uuid.New()
	pending := &models.Offer{
		ID:          uuid.New(),
		Title:       "Pending",
		Description: "x",
		OfferType:   enums.OfferTypeGym,
		GymID:       &gymID,
		Price:       decimal.RequireFromString("10.00"),
		Currency:    "USD",
		Status:      enums.OfferStatusPending,
		Active:      true,
	}
	require.NoError(t, db.Create(pending).Error)

	_, err := svc.Add(context.Background(), client.ID, AddRatingInput{OfferID: pending.ID, Score: 5})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListByOfferNewestFirst(t *testing.T) {
	db := setupRatingsTestDB(t)
	svc := newRatingService(t, db)
	offer := seedApprovedOffer(t, db)

	for _, score := range []int{5, 3, 4} {
		client := seedClient(t, db)
		_, err := svc.Add(context.Background(), client.ID, AddRatingInput{OfferID: offer.ID, Score: score})
		require.NoError(t, err)
	}

	page, err := svc.ListByOffer(context.Background(), offer.ID, pagination.Params{Size: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, page.TotalElements)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 2)
}
