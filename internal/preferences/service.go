package preferences

import (
	"context"
	"fmt"
	"strings"

	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/logger"
	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
)

type Store interface {
	Get(ctx context.Context, userID string) (Preferences, bool, error)
	Upsert(ctx context.Context, p Preferences) (Preferences, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, userID string) (Preferences, error) {
	p, _, err := s.store.Get(ctx, userID)
	return p, err
}

// Update loads the stored preferences for userID (or the defaults), lets
// apply change them, then validates and stores the result. Fields apply leaves
// alone keep their stored values; empty strings fall back to the defaults.
func (s *Service) Update(ctx context.Context, userID string, apply func(*Preferences) error) (Preferences, error) {
	p, _, err := s.store.Get(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	if err := apply(&p); err != nil {
		return Preferences{}, err
	}
	p.UserID = userID
	fillDefaults(&p)
	if err := validate(p); err != nil {
		return Preferences{}, err
	}
	return s.store.Upsert(ctx, p)
}

// PreferredProvider reports the provider a user explicitly saved.
func (s *Service) PreferredProvider(ctx context.Context, userID string) (llm.Provider, bool) {
	p, found, err := s.store.Get(ctx, userID)
	if err != nil {
		logger.NewLogger(ctx).LogWarn("preferences.get", err)
		return "", false
	}
	if !found {
		return "", false
	}
	return llm.Provider(p.PreferredProvider), true
}

func fillDefaults(p *Preferences) {
	d := Defaults(p.UserID)
	if strings.TrimSpace(p.PreferredProvider) == "" {
		p.PreferredProvider = d.PreferredProvider
	}
	if strings.TrimSpace(p.DefaultDifficulty) == "" {
		p.DefaultDifficulty = d.DefaultDifficulty
	}
	if strings.TrimSpace(p.Language) == "" {
		p.Language = d.Language
	}
	if strings.TrimSpace(p.Timezone) == "" {
		p.Timezone = d.Timezone
	}
	if strings.TrimSpace(p.ProfileVisibility) == "" {
		p.ProfileVisibility = d.ProfileVisibility
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = d.Theme
	}
	p.PreferredProvider = strings.ToLower(p.PreferredProvider)
}

func validate(p Preferences) error {
	if !llm.Provider(p.PreferredProvider).Valid() {
		return fmt.Errorf("%w: unknown provider %q", ErrInvalid, p.PreferredProvider)
	}
	if !domain.ValidDifficulty(p.DefaultDifficulty) {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, p.DefaultDifficulty)
	}
	if !oneOf(p.Theme, "light", "dark", "system") {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalid, p.Theme)
	}
	if !oneOf(p.ProfileVisibility, "public", "private", "friends") {
		return fmt.Errorf("%w: unknown profile visibility %q", ErrInvalid, p.ProfileVisibility)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
