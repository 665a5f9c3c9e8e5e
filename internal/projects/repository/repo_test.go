package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
)

var projectCols = []string{"id", "owner_id", "title", "description", "difficulty", "tags", "category",
	"estimated_time", "market_demand", "source_provider", "created_at"}

func setupProjectRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewProjectRepository(db), mock
}

func TestProjectRepository_InsertBatch(t *testing.T) {
	t.Run("stores every record in one transaction", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		now := time.Now()

		mock.ExpectBegin()
		for _, title := range []string{"A", "B"} {
			mock.ExpectQuery(`INSERT INTO projects`).
				WithArgs(sqlmock.AnyArg(), "owner-1", title, sqlmock.AnyArg(), "Beginner", sqlmock.AnyArg(),
					"General", "2-4 weeks", "Medium", "openai").
				WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		}
		mock.ExpectCommit()

		recs := []domain.Project{
			{Title: "A", Difficulty: "Beginner", Category: "General", EstimatedTime: "2-4 weeks", MarketDemand: "Medium", SourceProvider: "openai"},
			{Title: "B", Difficulty: "Beginner", Category: "General", EstimatedTime: "2-4 weeks", MarketDemand: "Medium", SourceProvider: "openai"},
		}
		got, err := repo.InsertBatch(context.Background(), "owner-1", recs)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, p := range got {
			_, err := uuid.Parse(p.ID)
			assert.NoError(t, err)
			assert.Equal(t, "owner-1", p.OwnerID)
			assert.Equal(t, []string{}, p.Tags)
			assert.False(t, p.CreatedAt.IsZero())
		}
		assert.NotEqual(t, got[0].ID, got[1].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectQuery(`INSERT INTO projects`).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := repo.InsertBatch(context.Background(), "owner-1", []domain.Project{{Title: "A"}, {Title: "B"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch touches nothing", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		got, err := repo.InsertBatch(context.Background(), "owner-1", nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_ListByOwner(t *testing.T) {
	repo, mock := setupProjectRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM projects`).
		WithArgs("owner-1", `%100\% react%`, "Web Development").
		WillReturnRows(sqlmock.NewRows(projectCols).
			AddRow("p1", "owner-1", "Budget", "desc", "Beginner", "{React,Chart.js}", "Web Development",
				"2-4 weeks", "Medium", "claude", now))

	got, err := repo.ListByOwner(context.Background(), "owner-1", domain.ListFilter{Query: " 100% react ", Category: "Web Development"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"React", "Chart.js"}, got[0].Tags)
	assert.Equal(t, "claude", got[0].SourceProvider)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		id := uuid.NewString()
		mock.ExpectQuery(`SELECT (.+) FROM projects`).
			WithArgs("owner-1", id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "owner-1", id)
		assert.True(t, errors.Is(err, domain.ErrProjectNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id never hits the database", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		_, err := repo.GetByID(context.Background(), "owner-1", "project-123")
		assert.True(t, errors.Is(err, domain.ErrProjectNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_Delete(t *testing.T) {
	t.Run("owner scoped delete", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		id := uuid.NewString()
		mock.ExpectExec(`DELETE FROM projects WHERE owner_id = \$1 AND id = \$2`).
			WithArgs("owner-1", id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), "owner-1", id))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other owner's project is not found", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		id := uuid.NewString()
		mock.ExpectExec(`DELETE FROM projects`).
			WithArgs("owner-2", id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "owner-2", id)
		assert.True(t, errors.Is(err, domain.ErrProjectNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id never hits the database", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		err := repo.Delete(context.Background(), "owner-1", "project-123")
		assert.True(t, errors.Is(err, domain.ErrProjectNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
