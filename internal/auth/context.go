package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	CtxDisplayName = "display_name"
	CtxPhotoURL    = "photo_url"
	CtxUserDBID    = "user_db_id"
)

// UserFirebaseUID extracts the Firebase UID set by the auth middleware.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserDBID returns the users.id of the caller, set by WithUser.
func UserDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}
