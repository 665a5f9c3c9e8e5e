package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const prefColumns = `user_id, preferred_provider, default_difficulty, language, timezone,
       email_notifications, project_updates, weekly_digest, marketing_emails,
       profile_visibility, data_collection, theme, compact_mode, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPrefs(s scanner) (Preferences, error) {
	var p Preferences
	err := s.Scan(&p.UserID, &p.PreferredProvider, &p.DefaultDifficulty, &p.Language, &p.Timezone,
		&p.EmailNotify, &p.ProjectUpdates, &p.WeeklyDigest, &p.MarketingEmails,
		&p.ProfileVisibility, &p.DataCollection, &p.Theme, &p.CompactMode, &p.UpdatedAt)
	return p, err
}

// Get returns the stored preferences; found is false and defaults are
// returned when the user never saved any.
func (r *Repository) Get(ctx context.Context, userID string) (Preferences, bool, error) {
	q := `SELECT ` + prefColumns + ` FROM user_preferences WHERE user_id = $1;`

	p, err := scanPrefs(r.db.QueryRowContext(ctx, q, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Defaults(userID), false, nil
		}
		return Preferences{}, false, fmt.Errorf("get preferences: %w", err)
	}
	return p, true, nil
}

func (r *Repository) Upsert(ctx context.Context, p Preferences) (Preferences, error) {
	q := `
INSERT INTO user_preferences (user_id, preferred_provider, default_difficulty, language, timezone,
                              email_notifications, project_updates, weekly_digest, marketing_emails,
                              profile_visibility, data_collection, theme, compact_mode, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
ON CONFLICT (user_id) DO UPDATE SET
  preferred_provider = EXCLUDED.preferred_provider,
  default_difficulty = EXCLUDED.default_difficulty,
  language = EXCLUDED.language,
  timezone = EXCLUDED.timezone,
  email_notifications = EXCLUDED.email_notifications,
  project_updates = EXCLUDED.project_updates,
  weekly_digest = EXCLUDED.weekly_digest,
  marketing_emails = EXCLUDED.marketing_emails,
  profile_visibility = EXCLUDED.profile_visibility,
  data_collection = EXCLUDED.data_collection,
  theme = EXCLUDED.theme,
  compact_mode = EXCLUDED.compact_mode,
  updated_at = now()
RETURNING ` + prefColumns + `;`

	out, err := scanPrefs(r.db.QueryRowContext(ctx, q,
		p.UserID, p.PreferredProvider, p.DefaultDifficulty, p.Language, p.Timezone,
		p.EmailNotify, p.ProjectUpdates, p.WeeklyDigest, p.MarketingEmails,
		p.ProfileVisibility, p.DataCollection, p.Theme, p.CompactMode,
	))
	if err != nil {
		return Preferences{}, fmt.Errorf("upsert preferences: %w", err)
	}
	return out, nil
}
