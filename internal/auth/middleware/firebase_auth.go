package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tuwebai/tuweb-backend/internal/auth"
	usersdomain "github.com/tuwebai/tuweb-backend/internal/users/domain"
)

// UserEnsurer creates the Firestore user record on first authenticated
// touch and reports the stored role back for authorization checks.
type UserEnsurer interface {
	Ensure(ctx context.Context, uid, email string) (*usersdomain.User, error)
}

// RequireAuth validates Firebase ID tokens and extracts user info.
// Requests without a valid bearer token are rejected with 401.
func RequireAuth(verifier auth.TokenVerifier, users UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(auth.CtxFirebaseUID, decoded.UID)

		email := ""
		if v, ok := decoded.Claims["email"].(string); ok {
			email = v
			c.Set(auth.CtxUserEmail, v)
		}

		u, err := users.Ensure(c.Request.Context(), decoded.UID, email)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "user store unavailable"})
			c.Abort()
			return
		}
		c.Set(auth.CtxUserRole, u.Role)

		c.Next()
	}
}

// OptionalAuth extracts user info when a valid token is present but never
// rejects the request. Many endpoints are public; a missing or expired
// token just means the request proceeds unauthenticated.
func OptionalAuth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			if decoded, err := verifier.VerifyIDToken(c.Request.Context(), token); err == nil {
				c.Set(auth.CtxFirebaseUID, decoded.UID)
				if email, ok := decoded.Claims["email"].(string); ok {
					c.Set(auth.CtxUserEmail, email)
				}
			}
		}
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
