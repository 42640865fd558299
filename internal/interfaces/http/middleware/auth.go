// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/pkg/auth"
)

const (
	userIDKey      = "user_id"
	tokenClaimsKey = "token_claims"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// GuestIdentity resolves the caller. A valid guest token binds the
// request to its subject; anything else acts as defaultUserID.
func GuestIdentity(validator TokenValidator, defaultUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userIDKey, defaultUserID)

		tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			// invalid tokens fall back to the default user
			c.Next()
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(tokenClaimsKey, claims)

		c.Next()
	}
}

// GetUserIDFromContext returns the resolved caller id
func GetUserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// IsGuestToken reports whether the caller presented a valid guest token
func IsGuestToken(c *gin.Context) bool {
	_, exists := c.Get(tokenClaimsKey)
	return exists
}
