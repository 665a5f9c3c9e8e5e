// Package users maps authenticated Firebase identities onto users rows.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrMissingUID = errors.New("firebase uid required")

// querier is the slice of *pgxpool.Pool the repository uses.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repo struct {
	db querier
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type UpsertUser struct {
	FirebaseUID string
	Email       string
	DisplayName string
	PhotoURL    string
}

// ensureUserSQL creates the row on first sight. Later requests refresh the
// email from the token but only fill display_name and photo_url while they
// are empty, so edits made through the profile endpoint stick.
const ensureUserSQL = `
insert into users (firebase_uid, email, display_name, photo_url, updated_at)
values ($1, nullif($2,''), nullif($3,''), nullif($4,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(users.display_name, excluded.display_name),
  photo_url = coalesce(users.photo_url, excluded.photo_url),
  updated_at = now()
returning id::text;
`

// EnsureUser upserts the caller by firebase uid and returns users.id.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (string, error) {
	uid := strings.TrimSpace(u.FirebaseUID)
	if uid == "" {
		return "", ErrMissingUID
	}

	var id string
	err := r.db.QueryRow(ctx, ensureUserSQL,
		uid,
		strings.TrimSpace(u.Email),
		strings.TrimSpace(u.DisplayName),
		strings.TrimSpace(u.PhotoURL),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("ensure user %s: %w", uid, err)
	}
	return id, nil
}
