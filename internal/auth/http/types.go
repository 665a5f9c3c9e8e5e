package http

import (
	"context"

	"github.com/dev-genie/dev-genie-backend/internal/auth/domain"
)

type profileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
}

type Handler struct {
	authService profileService
}

func New(authService profileService) *Handler {
	return &Handler{
		authService: authService,
	}
}
