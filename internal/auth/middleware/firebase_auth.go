package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	appauth "github.com/dev-genie/dev-genie-backend/internal/auth"
)

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthMiddleware validates Firebase ID tokens and extracts user info
func FirebaseAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		c.Set(appauth.CtxFirebaseUID, decoded.UID)
		setClaim(c, decoded.Claims, "email", appauth.CtxEmail)
		setClaim(c, decoded.Claims, "name", appauth.CtxDisplayName)
		setClaim(c, decoded.Claims, "picture", appauth.CtxPhotoURL)

		c.Next()
	}
}

// HeaderAuthMiddleware trusts X-User-Id and friends. Development only.
func HeaderAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing X-User-Id"})
			return
		}

		c.Set(appauth.CtxFirebaseUID, uid)
		c.Set(appauth.CtxEmail, c.GetHeader("X-User-Email"))
		c.Set(appauth.CtxDisplayName, c.GetHeader("X-User-Name"))
		c.Set(appauth.CtxPhotoURL, c.GetHeader("X-User-Photo"))
		c.Next()
	}
}

func setClaim(c *gin.Context, claims map[string]interface{}, claim, key string) {
	if v, ok := claims[claim].(string); ok {
		c.Set(key, v)
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
