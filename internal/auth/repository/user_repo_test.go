package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-genie/dev-genie-backend/internal/auth/domain"
)

var userCols = []string{"id", "firebase_uid", "email", "display_name", "photo_url", "bio", "created_at", "updated_at"}

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-1", "fb-1", "a@b.c", nil, nil, "hello", now, now))

	u, err := NewUserRepository(db).GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "fb-1", u.FirebaseUID)
	require.NotNil(t, u.Email)
	assert.Equal(t, "a@b.c", *u.Email)
	assert.Nil(t, u.DisplayName)
	require.NotNil(t, u.Bio)
	assert.Equal(t, "hello", *u.Bio)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnError(sql.ErrNoRows)

	_, err = NewUserRepository(db).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	name := "Ada Lovelace"
	now := time.Now()
	mock.ExpectQuery("UPDATE users SET display_name = COALESCE\\(\\$2, display_name\\)").
		WithArgs("u-1", name, nil).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-1", "fb-1", nil, name, nil, nil, now, now))

	u, err := NewUserRepository(db).UpdateProfile(context.Background(), "u-1", domain.UpdateProfileRequest{DisplayName: &name})
	require.NoError(t, err)
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, name, *u.DisplayName)
	assert.Nil(t, u.Bio)
	assert.NoError(t, mock.ExpectationsWereMet())
}
