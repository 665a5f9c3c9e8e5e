package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dev-genie/dev-genie-backend/internal/generation/dedupe"
	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/generation/normalize"
	"github.com/dev-genie/dev-genie-backend/internal/generation/prompt"
	"github.com/dev-genie/dev-genie-backend/internal/logger"
	"github.com/dev-genie/dev-genie-backend/internal/metrics"
	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
	"github.com/dev-genie/dev-genie-backend/internal/projects/lock"
)

// DetailGenerationTimeout bounds one shared detail run. It stays below
// lock.DefaultTTL so the lock cannot expire under a live run.
const DetailGenerationTimeout = 90 * time.Second

type DetailStore interface {
	GetByProjectID(ctx context.Context, projectID string) (*domain.Detail, error)
	Insert(ctx context.Context, d domain.Detail) (*domain.Detail, bool, error)
}

// Locker guards detail generation across instances.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(context.Context) error, error)
}

// DetailGenerator produces a detail for a project that has none yet.
type DetailGenerator func(ctx context.Context) (domain.Detail, error)

type DetailService struct {
	gen      Generator
	projects ProjectStore
	details  DetailStore
	locker   Locker
	flight   singleflight.Group
}

// NewDetailService wires detail lookups. locker may be nil for a single instance.
func NewDetailService(gen Generator, projects ProjectStore, details DetailStore, locker Locker) *DetailService {
	return &DetailService{gen: gen, projects: projects, details: details, locker: locker}
}

// GetOrCreate returns the stored detail for the owner's project, generating
// and storing it first if none exists. cached reports a stored hit.
func (s *DetailService) GetOrCreate(ctx context.Context, ownerID, projectID string, selection []llm.Provider) (*domain.Detail, bool, error) {
	project, err := s.projects.GetByID(ctx, ownerID, projectID)
	if err != nil {
		return nil, false, err
	}
	return s.GetOrCreateDetail(ctx, project.ID, func(ctx context.Context) (domain.Detail, error) {
		return s.generate(ctx, *project, selection), nil
	})
}

// GetOrCreateDetail stores at most one detail per project. Concurrent callers
// in this process share one run and other instances are held off by the
// locker. A stored detail is returned without generating; a fallback detail
// is returned but not stored.
func (s *DetailService) GetOrCreateDetail(ctx context.Context, projectID string, generator DetailGenerator) (*domain.Detail, bool, error) {
	if d, err := s.lookup(ctx, projectID); err != nil || d != nil {
		if d != nil {
			metrics.DetailCacheTotal.WithLabelValues("hit").Inc()
		}
		return d, d != nil, err
	}

	// The shared run outlives any single caller: one client going away must not
	// cancel generation for the others waiting on the same project.
	ch := s.flight.DoChan(projectID, func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DetailGenerationTimeout)
		defer cancel()
		return s.createOnce(runCtx, projectID, generator)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val.(*domain.Detail), false, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (s *DetailService) createOnce(ctx context.Context, projectID string, generator DetailGenerator) (*domain.Detail, error) {
	log := logger.NewLogger(ctx).With("project_id", projectID)

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, projectID)
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				if d, lerr := s.lookup(ctx, projectID); lerr == nil && d != nil {
					return d, nil
				}
				return nil, domain.ErrDetailInProgress
			}
			return nil, err
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				log.LogWarn("details.unlock", err)
			}
		}()
	}

	// another instance may have finished while we waited for the lock
	if d, err := s.lookup(ctx, projectID); err != nil || d != nil {
		return d, err
	}

	detail, err := generator(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate detail: %w", err)
	}
	detail.ProjectID = projectID

	// Sample content is served but never stored, so a later request can still
	// get a real detail once a provider answers.
	if detail.SourceProvider == domain.SourceFallback {
		log.LogInfof("details.generate", "serving fallback detail without storing it")
		return &detail, nil
	}

	stored, inserted, err := s.details.Insert(ctx, detail)
	if err != nil {
		log.LogError("details.store", err)
		return nil, fmt.Errorf("store detail: %w", err)
	}
	if inserted {
		metrics.DetailCacheTotal.WithLabelValues("generated").Inc()
		log.LogInfof("details.generate", "stored detail from %s", stored.SourceProvider)
	}
	return stored, nil
}

func (s *DetailService) lookup(ctx context.Context, projectID string) (*domain.Detail, error) {
	d, err := s.details.GetByProjectID(ctx, projectID)
	if errors.Is(err, domain.ErrDetailNotFound) {
		return nil, nil
	}
	return d, err
}

// generate asks the providers for a detail; the first parsable reply in
// completion order wins, otherwise the fallback detail is used.
func (s *DetailService) generate(ctx context.Context, p domain.Project, selection []llm.Provider) domain.Detail {
	log := logger.NewLogger(ctx).With("project_id", p.ID)

	text, err := prompt.ProjectDetail(prompt.DetailRequest{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
	})
	if err == nil {
		for _, r := range s.gen.Generate(ctx, llm.Call{Task: llm.TaskDetails, Prompt: text}, selection) {
			nd, err := normalize.Detail(r)
			if err != nil {
				metrics.NormalizeFailuresTotal.WithLabelValues(string(r.Source), string(llm.TaskDetails)).Inc()
				log.With("provider", string(r.Source)).LogWarn("details.normalize", err)
				continue
			}
			desc := nd.Description
			if desc == "" {
				desc = p.Description
			}
			return domain.Detail{
				ProjectID:      p.ID,
				Title:          p.Title,
				Description:    desc,
				Structure:      nd.Structure,
				Flow:           nd.Flow,
				Roadmap:        nd.Roadmap,
				PseudoCode:     nd.PseudoCode,
				Resources:      dedupe.Strings(nd.Resources),
				GithubLinks:    dedupe.Strings(nd.GithubLinks),
				SourceProvider: string(nd.Source),
			}
		}
	} else {
		log.LogWarn("details.prompt", err)
	}

	metrics.FallbacksTotal.WithLabelValues(string(llm.TaskDetails)).Inc()
	return FallbackDetail(p)
}
