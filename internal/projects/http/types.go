package http

import (
	"context"

	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
	"github.com/dev-genie/dev-genie-backend/internal/projects/service"
)

type projectService interface {
	Generate(ctx context.Context, ownerID string, req domain.GenerationRequest) (*service.GenerationResult, error)
	List(ctx context.Context, ownerID string, f domain.ListFilter) ([]domain.Project, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Project, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type detailService interface {
	GetOrCreate(ctx context.Context, ownerID, projectID string, selection []llm.Provider) (*domain.Detail, bool, error)
	Paper(ctx context.Context, ownerID, projectID string) (*service.Paper, error)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	projects projectService
	details  detailService
}

func New(projects projectService, details detailService) *Handler {
	return &Handler{projects: projects, details: details}
}

type detailsReq struct {
	Providers []string `json:"providers"`
}
