package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, owner_id, title, description, difficulty, tags, category,
       estimated_time, market_demand, source_provider, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (domain.Project, error) {
	var p domain.Project
	err := s.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Difficulty, pq.Array(&p.Tags),
		&p.Category, &p.EstimatedTime, &p.MarketDemand, &p.SourceProvider, &p.CreatedAt)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, err
}

// InsertBatch stores all records for ownerID in one transaction and returns
// them with ids and timestamps filled. Nothing is stored if any insert fails.
func (r *ProjectRepository) InsertBatch(ctx context.Context, ownerID string, records []domain.Project) ([]domain.Project, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id required")
	}
	if len(records) == 0 {
		return []domain.Project{}, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
INSERT INTO projects (id, owner_id, title, description, difficulty, tags, category,
                      estimated_time, market_demand, source_provider)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created_at;
`
	out := make([]domain.Project, 0, len(records))
	for _, rec := range records {
		p := rec
		p.ID = uuid.NewString()
		p.OwnerID = ownerID
		if p.Tags == nil {
			p.Tags = []string{}
		}
		err := tx.QueryRowContext(ctx, q,
			p.ID, p.OwnerID, p.Title, p.Description, p.Difficulty, pq.Array(p.Tags), p.Category,
			p.EstimatedTime, p.MarketDemand, p.SourceProvider,
		).Scan(&p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert project %q: %w", p.Title, err)
		}
		out = append(out, p)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

// ListByOwner returns the owner's projects, newest first. Query matches title,
// description or any tag case-insensitively; Category must match exactly.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string, f domain.ListFilter) ([]domain.Project, error) {
	q := `
SELECT ` + projectColumns + `
FROM projects
WHERE owner_id = $1
  AND ($2 = '' OR title ILIKE $2 OR description ILIKE $2
       OR EXISTS (SELECT 1 FROM unnest(tags) AS t WHERE t ILIKE $2))
  AND ($3 = '' OR category = $3)
ORDER BY created_at DESC;
`
	pattern := ""
	if s := strings.TrimSpace(f.Query); s != "" {
		pattern = "%" + escapeLike(s) + "%"
	}

	rows, err := r.db.QueryContext(ctx, q, ownerID, pattern, strings.TrimSpace(f.Category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrProjectNotFound
	}

	q := `
SELECT ` + projectColumns + `
FROM projects
WHERE owner_id = $1 AND id = $2;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes the owner's project; its detail row goes with it through
// ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrProjectNotFound
	}

	const q = `
DELETE FROM projects
WHERE owner_id = $1 AND id = $2;
`
	result, err := r.db.ExecContext(ctx, q, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
