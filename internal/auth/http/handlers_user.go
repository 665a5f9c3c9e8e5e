package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-genie/dev-genie-backend/internal/auth"
	"github.com/dev-genie/dev-genie-backend/internal/auth/domain"
	"github.com/dev-genie/dev-genie-backend/internal/logger"
)

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

// UpdateProfile edits the display name and bio.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
	case errors.Is(err, domain.ErrInvalidProfile):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		logger.FromContext(c.Request.Context()).Error("profile request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
