// Package resources gathers learning material for a category: popular GitHub
// repositories plus AI-suggested tutorials, courses and books.
package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dev-genie/dev-genie-backend/internal/generation/dedupe"
	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/generation/normalize"
	"github.com/dev-genie/dev-genie-backend/internal/generation/prompt"
	"github.com/dev-genie/dev-genie-backend/internal/logger"
	"github.com/dev-genie/dev-genie-backend/internal/metrics"
)

var ErrInvalidRequest = errors.New("invalid resource query")

type Generator interface {
	Generate(ctx context.Context, call llm.Call, selection []llm.Provider) []llm.Reply
}

type RepoSearcher interface {
	Search(ctx context.Context, query string) ([]Repository, error)
}

type Query struct {
	Category   string   `json:"category"`
	SearchTerm string   `json:"searchTerm"`
	Providers  []string `json:"providers"`
}

type LearningResource struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Type        string  `json:"type"`
	Difficulty  string  `json:"difficulty"`
	Rating      float64 `json:"rating"`
	IsFree      bool    `json:"isFree"`
	Source      string  `json:"source"`
}

type Result struct {
	GitHubRepos []Repository       `json:"githubRepos"`
	AIResources []LearningResource `json:"aiResources"`
	Category    string             `json:"category"`
	SearchTerm  string             `json:"searchTerm"`
	Sources     []string           `json:"sources"`
}

type Service struct {
	gen    Generator
	github RepoSearcher
}

func NewService(gen Generator, github RepoSearcher) *Service {
	return &Service{gen: gen, github: github}
}

// Fetch runs the GitHub search and the provider fan-out concurrently. Either
// half failing yields an empty list for that half, never an error.
func (s *Service) Fetch(ctx context.Context, q Query) (*Result, error) {
	log := logger.NewLogger(ctx)

	q.Category = strings.TrimSpace(q.Category)
	q.SearchTerm = strings.TrimSpace(q.SearchTerm)
	selection, err := llm.ParseProviders(q.Providers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	text, err := prompt.Resources(prompt.ResourceRequest{Category: q.Category, SearchTerm: q.SearchTerm})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var (
		repos   []Repository
		replies []llm.Reply
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		search := q.SearchTerm
		if search == "" {
			search = q.Category
		}
		r, err := s.github.Search(gctx, search)
		if err != nil {
			log.LogWarn("resources.github", err)
			return nil
		}
		repos = r
		return nil
	})
	g.Go(func() error {
		replies = s.gen.Generate(gctx, llm.Call{Task: llm.TaskResources, Prompt: text}, selection)
		return nil
	})
	_ = g.Wait()

	var pooled []LearningResource
	sources := make([]string, 0, len(replies))
	for _, r := range replies {
		sources = append(sources, string(r.Source))
		items, err := normalize.Resources(r)
		if err != nil {
			metrics.NormalizeFailuresTotal.WithLabelValues(string(r.Source), string(llm.TaskResources)).Inc()
			log.With("provider", string(r.Source)).LogWarn("resources.normalize", err)
			continue
		}
		for _, it := range items {
			pooled = append(pooled, LearningResource{
				Title:       it.Title,
				Description: it.Description,
				URL:         it.URL,
				Type:        it.Type,
				Difficulty:  it.Difficulty,
				Rating:      it.Rating,
				IsFree:      it.IsFree,
				Source:      string(it.Source),
			})
		}
	}

	if repos == nil {
		repos = []Repository{}
	}
	return &Result{
		GitHubRepos: repos,
		AIResources: Dedupe(pooled),
		Category:    q.Category,
		SearchTerm:  q.SearchTerm,
		Sources:     sources,
	}, nil
}

// Dedupe drops resources whose URL or normalized title was already seen.
func Dedupe(items []LearningResource) []LearningResource {
	return dedupe.By(items, func(r LearningResource) []string {
		return []string{prefixed("url:", strings.TrimSpace(r.URL)), prefixed("title:", dedupe.TitleKey(r.Title))}
	})
}

func prefixed(prefix, key string) string {
	if key == "" {
		return ""
	}
	return prefix + key
}
