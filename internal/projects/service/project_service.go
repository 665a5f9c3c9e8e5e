package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dev-genie/dev-genie-backend/internal/generation/dedupe"
	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/generation/normalize"
	"github.com/dev-genie/dev-genie-backend/internal/generation/prompt"
	"github.com/dev-genie/dev-genie-backend/internal/logger"
	"github.com/dev-genie/dev-genie-backend/internal/metrics"
	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
)

// Generator fans a call out to the configured providers.
type Generator interface {
	Generate(ctx context.Context, call llm.Call, selection []llm.Provider) []llm.Reply
	Available() []llm.Provider
}

// ProviderPreference resolves a user's stored provider choice, if any.
type ProviderPreference interface {
	PreferredProvider(ctx context.Context, userID string) (llm.Provider, bool)
}

type ProjectStore interface {
	InsertBatch(ctx context.Context, ownerID string, records []domain.Project) ([]domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string, f domain.ListFilter) ([]domain.Project, error)
	GetByID(ctx context.Context, ownerID, id string) (*domain.Project, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type GenerationResult struct {
	Projects []domain.Project `json:"projects"`
	Sources  []string         `json:"sources"`
	Fallback bool             `json:"fallback"`
}

// ProjectService runs the idea generation pipeline and serves saved projects.
type ProjectService struct {
	gen   Generator
	repo  ProjectStore
	prefs ProviderPreference
}

// NewProjectService wires the pipeline. prefs may be nil.
func NewProjectService(gen Generator, repo ProjectStore, prefs ProviderPreference) *ProjectService {
	return &ProjectService{gen: gen, repo: repo, prefs: prefs}
}

// Generate builds the prompt, fans it out, normalizes and deduplicates the
// replies, falls back to sample ideas when nothing usable came back, and
// stores the result for ownerID.
func (s *ProjectService) Generate(ctx context.Context, ownerID string, req domain.GenerationRequest) (*GenerationResult, error) {
	log := logger.NewLogger(ctx)

	if !domain.ValidDifficulty(req.Difficulty) {
		return nil, fmt.Errorf("%w: difficulty must be one of %s", domain.ErrInvalidRequest, strings.Join(domain.Difficulties, ", "))
	}
	selection, err := llm.ParseProviders(req.Providers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	ideaReq := prompt.IdeaRequest{
		ProjectType: req.ProjectType,
		Interests:   req.Interests,
		Skills:      req.Skills,
		Difficulty:  req.Difficulty,
	}
	text, err := prompt.ProjectIdeas(ideaReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	if len(selection) == 0 {
		selection = s.defaultSelection(ctx, ownerID)
	}
	replies := s.gen.Generate(ctx, llm.Call{Task: llm.TaskProjects, Prompt: text}, selection)

	var pooled []normalize.Project
	for _, r := range replies {
		items, err := normalize.Projects(r, ideaReq)
		if err != nil {
			metrics.NormalizeFailuresTotal.WithLabelValues(string(r.Source), string(llm.TaskProjects)).Inc()
			log.With("provider", string(r.Source)).LogWarn("projects.normalize", err)
			continue
		}
		pooled = append(pooled, items...)
	}
	pooled = dedupe.By(pooled, func(p normalize.Project) []string {
		return []string{dedupe.TitleKey(p.Title)}
	})

	result := &GenerationResult{}
	var records []domain.Project
	if len(pooled) == 0 {
		metrics.FallbacksTotal.WithLabelValues(string(llm.TaskProjects)).Inc()
		log.LogWarnf("projects.generate", "no usable provider output, serving fallback ideas")
		records = FallbackProjects(req.Difficulty)
		result.Fallback = true
		result.Sources = []string{domain.SourceFallback}
	} else {
		records = make([]domain.Project, 0, len(pooled))
		for _, p := range pooled {
			records = append(records, domain.Project{
				Title:          p.Title,
				Description:    p.Description,
				Difficulty:     p.Difficulty,
				Tags:           p.Tags,
				Category:       p.Category,
				EstimatedTime:  p.EstimatedTime,
				MarketDemand:   p.MarketDemand,
				SourceProvider: string(p.Source),
			})
		}
		result.Sources = sourcesOf(records)
	}

	stored, err := s.repo.InsertBatch(ctx, ownerID, records)
	if err != nil {
		log.LogError("projects.store", err)
		return nil, fmt.Errorf("store projects: %w", err)
	}
	result.Projects = stored

	log.LogInfof("projects.generate", "stored %d projects from %v", len(stored), result.Sources)
	return result, nil
}

// defaultSelection prefers the user's stored provider when it is configured;
// otherwise every configured provider is used.
func (s *ProjectService) defaultSelection(ctx context.Context, ownerID string) []llm.Provider {
	if s.prefs == nil {
		return nil
	}
	p, ok := s.prefs.PreferredProvider(ctx, ownerID)
	if !ok {
		return nil
	}
	for _, avail := range s.gen.Available() {
		if avail == p {
			return []llm.Provider{p}
		}
	}
	return nil
}

func (s *ProjectService) List(ctx context.Context, ownerID string, f domain.ListFilter) ([]domain.Project, error) {
	return s.repo.ListByOwner(ctx, ownerID, f)
}

func (s *ProjectService) Get(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// Delete removes a saved project and its detail.
func (s *ProjectService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	logger.NewLogger(ctx).With("project_id", id).LogInfof("projects.delete", "project removed")
	return nil
}

func sourcesOf(records []domain.Project) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range records {
		if !seen[r.SourceProvider] {
			seen[r.SourceProvider] = true
			out = append(out, r.SourceProvider)
		}
	}
	return out
}
