package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidProfile = errors.New("invalid profile")
)

// MaxBioLength caps the free-text bio shown on the Settings page.
const MaxBioLength = 500

// User is the profile view of a users row. Identity fields come from the
// auth token; DisplayName and Bio are editable.
type User struct {
	ID          string    `json:"id"`
	FirebaseUID string    `json:"firebaseUid"`
	Email       *string   `json:"email,omitempty"`
	DisplayName *string   `json:"displayName,omitempty"`
	PhotoURL    *string   `json:"photoUrl,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateProfileRequest carries the editable fields; nil leaves a field unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}
