package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tristanguckenberger/srcdoc-server/internal/auth"
)

// ContextUserIDKey is where the resolved identity lands on the gin
// context.
const ContextUserIDKey = "userID"

type AuthMiddleware struct {
	Store auth.Store
}

func NewAuthMiddleware(store auth.Store) *AuthMiddleware {
	return &AuthMiddleware{Store: store}
}

// RequireAuth rejects requests that do not carry a valid bearer token.
func (a *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := a.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth resolves an identity when a valid bearer token is
// present and continues anonymously otherwise.
func (a *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := a.resolve(c); ok {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	}
}

func (a *AuthMiddleware) resolve(c *gin.Context) (string, bool) {
	// 1. Read bearer token
	header := c.GetHeader("Authorization")
	tokenID, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenID == "" {
		return "", false
	}

	// 2. Resolve token
	token, err := a.Store.Get(c.Request.Context(), tokenID)
	if err != nil || token == nil {
		return "", false
	}

	// 3. Enforce expiry even when the store has not evicted yet
	if time.Now().After(token.ExpiresAt) {
		_ = a.Store.Delete(c.Request.Context(), tokenID)
		return "", false
	}

	return token.UserID, true
}
