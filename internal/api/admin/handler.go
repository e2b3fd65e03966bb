package admin

import (
	"log/slog"
	"net/http"

	"watch-storefront/internal/domain/catalog"
	"watch-storefront/internal/service"
	"watch-storefront/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc   *service.CatalogService
	store *store.Store
	log   *slog.Logger
}

func NewHandler(svc *service.CatalogService, st *store.Store, log *slog.Logger) *Handler {
	return &Handler{svc: svc, store: st, log: log}
}

type AdminProduct struct {
	ID      string `json:"id"`
	TitleEn string `json:"titleEn"`
	Status  string `json:"status"`
}

type AdminUser struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Role     string         `json:"role"`
	Products []AdminProduct `json:"products"`
}

type AdminStats struct {
	TotalProducts    int64            `json:"totalProducts"`
	ProductsByStatus map[string]int64 `json:"productsByStatus"`
	TotalUsers       int              `json:"totalUsers"`
}

func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := h.svc.CountByStatus(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to count products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	us, err := h.store.ListUsers(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to load users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	stats := AdminStats{
		ProductsByStatus: make(map[string]int64, len(catalog.Statuses)),
		TotalUsers:       len(us),
	}
	for _, s := range catalog.Statuses {
		stats.ProductsByStatus[string(s)] = counts[s]
		stats.TotalProducts += counts[s]
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListUsers(c *gin.Context) {
	us, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(us))
	for _, u := range us {
		au := AdminUser{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Role:     u.Role,
			Products: make([]AdminProduct, 0, len(u.Products)),
		}
		for _, p := range u.Products {
			au.Products = append(au.Products, AdminProduct{ID: p.ID, TitleEn: p.TitleEn, Status: string(p.Status)})
		}
		out = append(out, au)
	}

	c.JSON(http.StatusOK, out)
}
