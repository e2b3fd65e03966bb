package products

import (
	"errors"
	"log/slog"
	"net/http"

	"watch-storefront/internal/app/http/middleware"
	"watch-storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.CatalogService
	log *slog.Logger
}

func NewHandler(svc *service.CatalogService, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// ------------------------------
// GET /api/products
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "error loading products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load products"})
		return
	}
	c.JSON(http.StatusOK, ToProductDTOs(products))
}

// ------------------------------
// GET /api/products/:id
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Unable to load product")
		return
	}
	c.JSON(http.StatusOK, ToProductDTO(*p))
}

// ------------------------------
// POST /api/products
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), user.ID, req.input())
	if err != nil {
		h.fail(c, err, "Unable to create product")
		return
	}
	c.JSON(http.StatusCreated, ToProductDTO(*p))
}

// ------------------------------
// PUT /api/products  {id, ...fields}
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), req.ID, req.input())
	if err != nil {
		h.fail(c, err, "Unable to update product")
		return
	}
	c.JSON(http.StatusOK, ToProductDTO(*p))
}

// ------------------------------
// DELETE /api/products?id=
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Unable to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	default:
		h.log.ErrorContext(c.Request.Context(), msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
