package users

import (
	"context"
	"errors"
	"testing"

	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  auth_sub TEXT NOT NULL UNIQUE,
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
	require.NoError(t, db.Exec(ddl).Error)
	require.NoError(t, db.Exec("DELETE FROM users").Error)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, sub string, role enums.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		ID:        uuid.New(),
		AuthSub:   sub,
		Email:     sub + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRepositoryFindByAuthSub(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	seeded := seedUser(t, db, "idp|abc", enums.UserRoleClient)
	seedUser(t, db, "idp|def", enums.UserRolePT)

	found, err := repo.FindByAuthSub(context.Background(), "idp|abc")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, found.ID)
	require.Equal(t, enums.UserRoleClient, found.Role)

	_, err = repo.FindByAuthSub(context.Background(), "idp|nobody")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryFindByID(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	seeded := seedUser(t, db, "idp|ghi", enums.UserRoleAdmin)

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Equal(t, "idp|ghi", found.AuthSub)

	_, err = repo.FindByID(context.Background(), uuid.New())
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
