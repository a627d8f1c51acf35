package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUserEmail   = "email"
	CtxUserRole    = "role"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// This is set by RequireAuth / OptionalAuth.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserEmail extracts the authenticated user's email, if the token carried one.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserEmail))
}

// IsAdmin reports whether the authenticated user carries the admin role.
func IsAdmin(c *gin.Context) bool {
	return c.GetString(CtxUserRole) == "admin"
}
