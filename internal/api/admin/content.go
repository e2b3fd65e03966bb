package admin

import (
	"errors"
	"net/http"

	"watch-storefront/internal/app/http/middleware"
	"watch-storefront/internal/store"

	"github.com/gin-gonic/gin"
)

type SaveContentRequest struct {
	ContentKey   string `json:"contentKey" binding:"required"`
	Type         string `json:"type"`
	Page         string `json:"page"`
	Section      string `json:"section"`
	Value        string `json:"value"`
	DefaultValue string `json:"defaultValue"`
}

// GET /api/content?contentKey=
func (h *Handler) GetContent(c *gin.Context) {
	key := c.Query("contentKey")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content key is required"})
		return
	}

	item, err := h.store.Content(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching content"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// POST /api/content
func (h *Handler) SaveContent(c *gin.Context) {
	var req SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	editor := c.GetString(middleware.KeyEmail)
	item, err := h.store.SaveContent(c.Request.Context(), store.ContentInput{
		ContentKey:   req.ContentKey,
		Type:         req.Type,
		Page:         req.Page,
		Section:      req.Section,
		Value:        req.Value,
		DefaultValue: req.DefaultValue,
	}, editor)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "error saving content", "content_key", req.ContentKey, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving content"})
		return
	}
	c.JSON(http.StatusOK, item)
}
