package middleware

import (
	"net/http"
	"strings"

	"watch-storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	KeyUserID = "user_id"
	KeyEmail  = "email"
	KeyName   = "name"
	KeyRole   = "role"
)

// AuthMiddleware accepts a Bearer token or the session cookie. Requests
// without a valid session stop here with 401.
func AuthMiddleware(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerOrCookie(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := sm.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyName, claims.Name)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

func bearerOrCookie(c *gin.Context) (string, bool) {
	if h := c.GetHeader("Authorization"); h != "" {
		token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if token == "" || token == h {
			return "", false
		}
		return token, true
	}
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// RequireRole must run after AuthMiddleware. A role mismatch is treated as
// an unauthenticated request.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(KeyRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Role not found in token"})
			return
		}

		if value != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}

func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(KeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
