package middleware

import (
	"net/http"
	"strings"

	"github.com/KadakWNL/crowd-connect/pkg/token"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// Auth verifies the bearer token and stores the authenticated user id on the
// context. Handlers never read a user id from request parameters.
func Auth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		userID, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the user id set by Auth.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}
