package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dev-genie/dev-genie-backend/internal/auth/domain"
)

type UserStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, req domain.UpdateProfileRequest) (*domain.User, error)
}

type AuthService struct {
	userRepo UserStore
}

func NewAuthService(userRepo UserStore) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// GetProfile retrieves the caller's profile by users.id.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile trims the editable fields and rejects oversized input.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	if req.DisplayName != nil {
		name := strings.Join(strings.Fields(*req.DisplayName), " ")
		req.DisplayName = &name
	}
	if req.Bio != nil {
		bio := strings.TrimSpace(*req.Bio)
		if len([]rune(bio)) > domain.MaxBioLength {
			return nil, fmt.Errorf("%w: bio longer than %d characters", domain.ErrInvalidProfile, domain.MaxBioLength)
		}
		req.Bio = &bio
	}

	return s.userRepo.UpdateProfile(ctx, userID, req)
}
