package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
)

// DetailRepository persists generated project details, one row per project.
type DetailRepository struct {
	db *sql.DB
}

func NewDetailRepository(db *sql.DB) *DetailRepository {
	return &DetailRepository{db: db}
}

func (r *DetailRepository) GetByProjectID(ctx context.Context, projectID string) (*domain.Detail, error) {
	const q = `
SELECT id, project_id, title, description, structure, flow, roadmap, pseudo_code,
       resources, github_links, source_provider, created_at
FROM project_details
WHERE project_id = $1;
`
	var d domain.Detail
	err := r.db.QueryRowContext(ctx, q, projectID).Scan(
		&d.ID, &d.ProjectID, &d.Title, &d.Description, &d.Structure, &d.Flow, &d.Roadmap, &d.PseudoCode,
		pq.Array(&d.Resources), pq.Array(&d.GithubLinks), &d.SourceProvider, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDetailNotFound
		}
		return nil, err
	}
	if d.Resources == nil {
		d.Resources = []string{}
	}
	if d.GithubLinks == nil {
		d.GithubLinks = []string{}
	}
	return &d, nil
}

// Insert stores d unless a detail already exists for the project, in which
// case the existing row is returned and inserted is false.
func (r *DetailRepository) Insert(ctx context.Context, d domain.Detail) (*domain.Detail, bool, error) {
	if d.ProjectID == "" {
		return nil, false, fmt.Errorf("project id required")
	}

	const q = `
INSERT INTO project_details (id, project_id, title, description, structure, flow, roadmap,
                             pseudo_code, resources, github_links, source_provider)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (project_id) DO NOTHING
RETURNING created_at;
`
	d.ID = uuid.NewString()
	if d.Resources == nil {
		d.Resources = []string{}
	}
	if d.GithubLinks == nil {
		d.GithubLinks = []string{}
	}

	err := r.db.QueryRowContext(ctx, q,
		d.ID, d.ProjectID, d.Title, d.Description, d.Structure, d.Flow, d.Roadmap,
		d.PseudoCode, pq.Array(d.Resources), pq.Array(d.GithubLinks), d.SourceProvider,
	).Scan(&d.CreatedAt)
	if err == nil {
		return &d, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	// lost the race: another writer stored the detail first
	existing, err := r.GetByProjectID(ctx, d.ProjectID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
