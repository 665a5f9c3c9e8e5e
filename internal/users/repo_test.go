package users

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	id  string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.id
	return nil
}

type recordingDB struct {
	sql  string
	args []any
	row  fakeRow
}

func (d *recordingDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	d.sql, d.args = sql, args
	return d.row
}

func TestEnsureUser(t *testing.T) {
	db := &recordingDB{row: fakeRow{id: "u-1"}}
	repo := &Repo{db: db}

	id, err := repo.EnsureUser(context.Background(), UpsertUser{
		FirebaseUID: " fb-1 ",
		Email:       "a@b.c",
		DisplayName: "Token Name",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)
	assert.Equal(t, []any{"fb-1", "a@b.c", "Token Name", ""}, db.args)
}

func TestEnsureUser_KeepsEditedProfileFields(t *testing.T) {
	db := &recordingDB{row: fakeRow{id: "u-1"}}
	_, err := (&Repo{db: db}).EnsureUser(context.Background(), UpsertUser{FirebaseUID: "fb-1", DisplayName: "B"})
	require.NoError(t, err)

	// stored values win over token claims for editable columns
	assert.Contains(t, db.sql, "display_name = coalesce(users.display_name, excluded.display_name)")
	assert.Contains(t, db.sql, "photo_url = coalesce(users.photo_url, excluded.photo_url)")
	assert.NotContains(t, db.sql, "coalesce(excluded.display_name")
}

func TestEnsureUser_RequiresUID(t *testing.T) {
	db := &recordingDB{}
	_, err := (&Repo{db: db}).EnsureUser(context.Background(), UpsertUser{FirebaseUID: "  "})
	assert.ErrorIs(t, err, ErrMissingUID)
	assert.Empty(t, db.sql)
}

func TestEnsureUser_WrapsQueryError(t *testing.T) {
	boom := errors.New("conn reset")
	_, err := (&Repo{db: &recordingDB{row: fakeRow{err: boom}}}).EnsureUser(context.Background(), UpsertUser{FirebaseUID: "fb-1"})
	assert.ErrorIs(t, err, boom)
}
