package ratings

import (
	"context"
	"testing"

	"github.com/easybody/easybody-backend/pkg/db"
	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRatingsRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ratings := `
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
	require.NoError(t, conn.Exec(ratings).Error)

	t.Cleanup(func() {
		require.NoError(t, conn.Exec("DELETE FROM ratings").Error)
	})
	return conn
}

func newRating(offerID, clientID uuid.UUID, score int) *models.Rating {
	return &models.Rating{
		ID:           uuid.New(),
		OfferID:      offerID,
		ClientUserID: clientID,
		Score:        score,
	}
}

func TestCreateWithTxEnforcesOneRatingPerClient(t *testing.T) {
	conn := setupRatingsRepoTestDB(t)
	repo := NewRepository(conn)
	client := db.NewFromGorm(conn)

	offerID := uuid.New()
	clientID := uuid.New()

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return repo.CreateWithTx(tx, newRating(offerID, clientID, 5))
	})
	require.NoError(t, err)

	err = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return repo.CreateWithTx(tx, newRating(offerID, clientID, 3))
	})
	require.Error(t, err)
	require.True(t, db.IsUniqueViolation(err, ""))
}

func TestStatsWithTxAggregatesScores(t *testing.T) {
	conn := setupRatingsRepoTestDB(t)
	repo := NewRepository(conn)
	client := db.NewFromGorm(conn)

	offerID := uuid.New()
	for _, score := range []int{5, 4, 4} {
		err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
			return repo.CreateWithTx(tx, newRating(offerID, uuid.New(), score))
		})
		require.NoError(t, err)
	}

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		count, sum, err := repo.StatsWithTx(tx, offerID)
		require.NoError(t, err)
		require.EqualValues(t, 3, count)
		require.EqualValues(t, 13, sum)
		return nil
	})
	require.NoError(t, err)
}

func TestStatsWithTxEmptyOffer(t *testing.T) {
	conn := setupRatingsRepoTestDB(t)
	repo := NewRepository(conn)
	client := db.NewFromGorm(conn)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		count, sum, err := repo.StatsWithTx(tx, uuid.New())
		require.NoError(t, err)
		require.Zero(t, count)
		require.Zero(t, sum)
		return nil
	})
	require.NoError(t, err)
}

func TestListByOfferPagesNewestFirst(t *testing.T) {
	conn := setupRatingsRepoTestDB(t)
	repo := NewRepository(conn)

	offerID := uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, conn.Create(newRating(offerID, uuid.New(), 4)).Error)
	}
	require.NoError(t, conn.Create(newRating(uuid.New(), uuid.New(), 2)).Error)

	rows, total, err := repo.ListByOffer(context.Background(), offerID, pagination.Params{Page: 0, Size: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Equal(t, offerID, row.OfferID)
	}
}
