package offers

import (
	"context"
	"testing"
	"time"

	"github.com/easybody/easybody-backend/internal/geo"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOffersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	locations := `
CREATE TABLE IF NOT EXISTS locations (
  id TEXT PRIMARY KEY,
  address TEXT NOT NULL,
  city TEXT NOT NULL,
  state TEXT,
  country TEXT,
  postal_code TEXT,
  latitude REAL NOT NULL,
  longitude REAL NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	gyms := `
CREATE TABLE IF NOT EXISTS gyms (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  logo_url TEXT,
  phone_number TEXT NOT NULL,
  email TEXT,
  website TEXT,
  owner_user_id TEXT NOT NULL,
  location_id TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  verified INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	ptUsers := `
CREATE TABLE IF NOT EXISTS pt_users (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  bio TEXT,
  specializations TEXT,
  certifications TEXT,
  years_of_experience INTEGER,
  profile_image_url TEXT,
  location_id TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  verified INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	offers := `
CREATE TABLE IF NOT EXISTS offers (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-4' || substr(hex(randomblob(2)), 2) || '-' || substr('89ab', abs(random()) % 4 + 1, 1) || substr(hex(randomblob(2)), 2) || '-' || hex(randomblob(6)))),
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
	require.NoError(t, db.Exec(locations).Error)
	require.NoError(t, db.Exec(gyms).Error)
	require.NoError(t, db.Exec(ptUsers).Error)
	require.NoError(t, db.Exec(offers).Error)
	require.NoError(t, db.Exec("DELETE FROM offers").Error)
	require.NoError(t, db.Exec("DELETE FROM gyms").Error)
	require.NoError(t, db.Exec("DELETE FROM pt_users").Error)
	require.NoError(t, db.Exec("DELETE FROM locations").Error)
	return db
}

func seedGym(t *testing.T, db *gorm.DB, lat, lng float64) *models.Gym {
	t.Helper()

	loc := &models.Location{ID: uuid.New(), Address: "1 Main St", City: "Testville", Latitude: lat, Longitude: lng}
	require.NoError(t, db.Create(loc).Error)

	gym := &models.Gym{
		ID:          uuid.New(),
		Name:        "Seed Gym",
		PhoneNumber: "555-0100",
		OwnerUserID: uuid.New(),
		LocationID:  &loc.ID,
		Active:      true,
	}
	require.NoError(t, db.Create(gym).Error)
	return gym
}

type seedOfferOpts struct {
	title     string
	price     string
	status    enums.OfferStatus
	active    bool
	avgRating string
	createdAt time.Time
}

func seedOffer(t *testing.T, db *gorm.DB, gym *models.Gym, opts seedOfferOpts) *models.Offer {
	t.Helper()

	if opts.title == "" {
		opts.title = "Monthly Pass"
	}
	if opts.price == "" {
		opts.price = "20.00"
	}
	if opts.status == "" {
		opts.status = enums.OfferStatusApproved
	}
	if opts.avgRating == "" {
		opts.avgRating = "0"
	}
	if opts.createdAt.IsZero() {
		opts.createdAt = time.Now()
	}

	offer := &models.Offer{
		ID:            uuid.New(),
		Title:         opts.title,
		Description:   "seeded listing",
		OfferType:     enums.OfferTypeGym,
		GymID:         &gym.ID,
		Price:         decimal.RequireFromString(opts.price),
		Currency:      "USD",
		Status:        opts.status,
		AverageRating: decimal.RequireFromString(opts.avgRating),
		Active:        opts.active,
		CreatedAt:     opts.createdAt,
	}
	require.NoError(t, db.Create(offer).Error)
	return offer
}

func TestRepositoryCreateStartsPending(t *testing.T) {
	db := setupOffersTestDB(t)
	repo := NewRepository(db)
	gym := seedGym(t, db, 40, -73)

	offer, err := repo.Create(context.Background(), CreateOfferDTO{
		Title:       "Day Pass",
		Description: "single visit",
		OfferType:   enums.OfferTypeGym,
		GymID:       &gym.ID,
		Price:       decimal.RequireFromString("9.99"),
		ImageURLs:   []string{"https://cdn.test/day-pass.jpg", "https://cdn.test/lobby.jpg"},
	})
	require.NoError(t, err)
	require.Equal(t, enums.OfferStatusPending, offer.Status)
	require.True(t, offer.Active)
	require.Equal(t, "USD", offer.Currency)

	loaded, err := repo.FindByID(context.Background(), offer.ID)
	require.NoError(t, err)
	require.Equal(t, pq.StringArray{"https://cdn.test/day-pass.jpg", "https://cdn.test/lobby.jpg"}, loaded.ImageURLs)
}

func TestOfferDTOCarriesRiskScoreAndImages(t *testing.T) {
	m := &models.Offer{
		ID:        uuid.New(),
		RiskScore: decimal.RequireFromString("0.75"),
		ImageURLs: pq.StringArray{"https://cdn.test/a.jpg"},
	}
	dto := FromModel(m)
	require.True(t, dto.RiskScore.Equal(decimal.RequireFromString("0.75")))
	require.Equal(t, []string{"https://cdn.test/a.jpg"}, dto.ImageURLs)
}

func TestRepositorySearchDefaultsToApprovedActive(t *testing.T) {
	db := setupOffersTestDB(t)
	repo := NewRepository(db)
	gym := seedGym(t, db, 40, -73)

	approved := seedOffer(t, db, gym, seedOfferOpts{status: enums.OfferStatusApproved, active: true})
	seedOffer(t, db, gym, seedOfferOpts{status: enums.OfferStatusPending, active: true})
	seedOffer(t, db, gym, seedOfferOpts{status: enums.OfferStatusApproved, active: false})
	seedOffer(t, db, gym, seedOfferOpts{status: enums.OfferStatusRejected, active: true})

	rows, total, err := repo.Search(context.Background(), SearchFilter{}, pagination.Params{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	require.Equal(t, approved.ID, rows[0].ID)
}

func TestRepositorySearchHonorsStatusAndActiveOverrides(t *testing.T) {
	db := setupOffersTestDB(t)
	repo := NewRepository(db)
	gym := seedGym(t, db, 40, -73)

	seedOffer(t, db, gym, seedOfferOpts{status: enums.OfferStatusApproved, active: true})
	pending := seedOffer(t, db, gym, seedOfferOpts{status: enums.OfferStatusPending, active: true})
	retired := seedOffer(t, db, gym, seedOfferOpts{status: enums.OfferStatusApproved, active: false})

	status := enums.OfferStatusPending
	rows, total, err := repo.Search(context.Background(), SearchFilter{Status: &status}, pagination.Params{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, pending.ID, rows[0].ID)

	inactive := false
	rows, total, err = repo.Search(context.Background(), SearchFilter{Active: &inactive}, pagination.Params{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, retired.ID, rows[0].ID)
}

func TestRepositorySearchComposesFilters(t *testing.T) {
	db := setupOffersTestDB(t)
	repo := NewRepository(db)
	gym := seedGym(t, db, 40, -73)

	match := seedOffer(t, db, gym, seedOfferOpts{title: "Yoga Bootcamp", price: "30.00", avgRating: "4.50", active: true})
	seedOffer(t, db, gym, seedOfferOpts{title: "Yoga Bootcamp", price: "80.00", avgRating: "4.50", active: true})
	seedOffer(t, db, gym, seedOfferOpts{title: "Spin Class", price: "30.00", avgRating: "4.50", active: true})
	seedOffer(t, db, gym, seedOfferOpts{title: "Yoga Bootcamp", price: "30.00", avgRating: "2.00", active: true})

	query := "yoga"
	minPrice := decimal.RequireFromString("10")
	maxPrice := decimal.RequireFromString("50")
	minRating := decimal.RequireFromString("4")
	rows, total, err := repo.Search(context.Background(), SearchFilter{
		Query:     &query,
		MinPrice:  &minPrice,
		MaxPrice:  &maxPrice,
		MinRating: &minRating,
	}, pagination.Params{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	require.Equal(t, match.ID, rows[0].ID)
}

func TestRepositorySearchInBox(t *testing.T) {
	db := setupOffersTestDB(t)
	repo := NewRepository(db)

	insideGym := seedGym(t, db, 40.01, -73.0)
	outsideGym := seedGym(t, db, 41.0, -73.0)
	inside := seedOffer(t, db, insideGym, seedOfferOpts{active: true})
	seedOffer(t, db, outsideGym, seedOfferOpts{active: true})

	box := geo.NewBoundingBox(40.0, -73.0, 5)
	rows, err := repo.SearchInBox(context.Background(), SearchFilter{}, box)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, inside.ID, rows[0].ID)
	require.NotNil(t, rows[0].Gym)
	require.NotNil(t, rows[0].Gym.Location)
}

func TestRepositoryListByStatusNewestFirst(t *testing.T) {
	db := setupOffersTestDB(t)
	repo := NewRepository(db)
	gym := seedGym(t, db, 40, -73)

	older := seedOffer(t, db, gym, seedOfferOpts{status: enums.OfferStatusPending, active: true, createdAt: time.Now().Add(-2 * time.Hour)})
	newer := seedOffer(t, db, gym, seedOfferOpts{status: enums.OfferStatusPending, active: true, createdAt: time.Now().Add(-1 * time.Hour)})
	seedOffer(t, db, gym, seedOfferOpts{status: enums.OfferStatusApproved, active: true})

	rows, total, err := repo.ListByStatus(context.Background(), enums.OfferStatusPending, pagination.Params{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, rows, 2)
	require.Equal(t, newer.ID, rows[0].ID)
	require.Equal(t, older.ID, rows[1].ID)
}
