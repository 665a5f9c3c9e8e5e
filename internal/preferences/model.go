// Package preferences stores per-user settings for the Settings page and
// supplies the default provider for generation.
package preferences

import (
	"errors"
	"time"
)

var ErrInvalid = errors.New("invalid preferences")

type Preferences struct {
	UserID            string    `json:"userId"`
	PreferredProvider string    `json:"preferredProvider"`
	DefaultDifficulty string    `json:"defaultDifficulty"`
	Language          string    `json:"language"`
	Timezone          string    `json:"timezone"`
	EmailNotify       bool      `json:"emailNotifications"`
	ProjectUpdates    bool      `json:"projectUpdates"`
	WeeklyDigest      bool      `json:"weeklyDigest"`
	MarketingEmails   bool      `json:"marketingEmails"`
	ProfileVisibility string    `json:"profileVisibility"`
	DataCollection    bool      `json:"dataCollection"`
	Theme             string    `json:"theme"`
	CompactMode       bool      `json:"compactMode"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Defaults returns the settings a user has before saving anything.
func Defaults(userID string) Preferences {
	return Preferences{
		UserID:            userID,
		PreferredProvider: "openai",
		DefaultDifficulty: "Intermediate",
		Language:          "en",
		Timezone:          "UTC",
		EmailNotify:       true,
		ProjectUpdates:    true,
		WeeklyDigest:      false,
		MarketingEmails:   false,
		ProfileVisibility: "private",
		DataCollection:    true,
		Theme:             "light",
		CompactMode:       false,
	}
}
