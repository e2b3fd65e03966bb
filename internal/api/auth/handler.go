package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"watch-storefront/internal/app/http/middleware"
	"watch-storefront/internal/domain/access"
	"watch-storefront/internal/domain/users"
	"watch-storefront/internal/session"
	"watch-storefront/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost for newly set passwords.
const PasswordCost = 12

type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*users.User, error)
	UpdatePasswordHash(ctx context.Context, userID uint, hash string) error
}

type Handler struct {
	users        UserStore
	sessions     *session.Manager
	cookieSecure bool
	log          *slog.Logger
}

func NewHandler(us UserStore, sm *session.Manager, cookieSecure bool, log *slog.Logger) *Handler {
	return &Handler{users: us, sessions: sm, cookieSecure: cookieSecure, log: log}
}

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// HashPassword returns the bcrypt hash stored in users.password_hash.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.log.ErrorContext(c.Request.Context(), "login lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not sign in"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, expires, err := h.sessions.Issue(*user)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "could not create token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	h.setCookie(c, token, int(time.Until(expires).Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expires.UTC(),
		"user":      toUserDTO(*user),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session describes the signed-in user and what the admin UI may offer them.
func (h *Handler) Session(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	policy := access.ComputePolicy(user.Role)
	c.JSON(http.StatusOK, SessionResponse{
		User: toUserDTO(*user),
		Access: AccessDTO{
			EditorMode:   string(policy.EditorMode),
			Capabilities: policy.Capabilities,
		},
	})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if !isPasswordStrong(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 8 characters with letters and numbers"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.OldPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
		return
	}

	hashed, err := HashPassword(body.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := h.users.UpdatePasswordHash(c.Request.Context(), user.ID, hashed); err != nil {
		h.log.ErrorContext(c.Request.Context(), "password update failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, value, maxAge, "/", "", h.cookieSecure, true)
}
