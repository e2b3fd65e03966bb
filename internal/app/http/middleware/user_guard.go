package middleware

import (
	"context"
	"errors"
	"net/http"

	"watch-storefront/internal/domain/users"
	"watch-storefront/internal/store"

	"github.com/gin-gonic/gin"
)

const KeyUser = "user"

type UserLookup interface {
	UserByID(ctx context.Context, id uint) (*users.User, error)
}

// RequireCurrentUser loads the session user. A token that outlived its
// account gets 404.
func RequireCurrentUser(lookup UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := lookup.UserByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to load user"})
			return
		}

		c.Set(KeyUser, user)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*users.User, bool) {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*users.User)
	return u, ok
}
