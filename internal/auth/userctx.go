package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-genie/dev-genie-backend/internal/logger"
	"github.com/dev-genie/dev-genie-backend/internal/users"
)

type UserEnsurer interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (string, error)
}

// WithUser upserts the authenticated caller into users and stores the row id
// under CtxUserDBID. It must run after one of the auth middlewares.
func WithUser(repo UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := UserFirebaseUID(c)
		if fuid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthenticated"})
			return
		}

		uid, err := repo.EnsureUser(c.Request.Context(), users.UpsertUser{
			FirebaseUID: fuid,
			Email:       c.GetString(CtxEmail),
			DisplayName: c.GetString(CtxDisplayName),
			PhotoURL:    c.GetString(CtxPhotoURL),
		})
		if err != nil {
			logger.FromContext(c.Request.Context()).Error("ensure user failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user failed"})
			return
		}

		c.Set(CtxUserDBID, uid)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), uid))
		c.Next()
	}
}
