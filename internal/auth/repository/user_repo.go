package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dev-genie/dev-genie-backend/internal/auth/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id::text, firebase_uid, email, display_name, photo_url, bio, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var email, displayName, photoURL, bio sql.NullString
	if err := row.Scan(&u.ID, &u.FirebaseUID, &email, &displayName, &photoURL, &bio, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	// Handle nullable fields
	u.Email = nullable(email)
	u.DisplayName = nullable(displayName)
	u.PhotoURL = nullable(photoURL)
	u.Bio = nullable(bio)
	return &u, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// GetByID retrieves a user by the users.id the auth middleware resolved.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1;`

	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateProfile writes the editable fields. A nil field keeps the stored value.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, req domain.UpdateProfileRequest) (*domain.User, error) {
	q := `
UPDATE users
SET display_name = COALESCE($2, display_name),
    bio = COALESCE($3, bio),
    updated_at = now()
WHERE id = $1
RETURNING ` + userColumns + `;`

	u, err := scanUser(r.db.QueryRowContext(ctx, q, id, req.DisplayName, req.Bio))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}
