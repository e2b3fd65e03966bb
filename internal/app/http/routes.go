package routes

import (
	"log/slog"
	"net/http"

	adminapi "watch-storefront/internal/api/admin"
	authapi "watch-storefront/internal/api/auth"
	contactapi "watch-storefront/internal/api/contact"
	productsapi "watch-storefront/internal/api/products"
	siteapi "watch-storefront/internal/api/site"
	"watch-storefront/internal/app/http/middleware"
	"watch-storefront/internal/domain/users"
	"watch-storefront/internal/metrics"
	"watch-storefront/internal/service"
	"watch-storefront/internal/session"
	"watch-storefront/internal/store"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Store        *store.Store
	Catalog      *service.CatalogService
	Sessions     *session.Manager
	Mailer       contactapi.Sender
	Metrics      *metrics.Metrics
	CookieSecure bool
	Log          *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	products := productsapi.NewHandler(d.Catalog, d.Log)
	auth := authapi.NewHandler(d.Store, d.Sessions, d.CookieSecure, d.Log)
	admin := adminapi.NewHandler(d.Catalog, d.Store, d.Log)
	contact := contactapi.NewHandler(d.Mailer, d.Log)

	siteapi.NewHandler(d.Catalog, d.Log).Register(r)

	api := r.Group("/api")

	// Public
	api.GET("/products", products.List)
	api.GET("/products/:id", products.Get)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/logout", auth.Logout)
	api.POST("/contact", middleware.SanitizeAndCleanInputMiddleware(), contact.Submit)

	// Authenticated
	authed := api.Group("/")
	authed.Use(middleware.AuthMiddleware(d.Sessions), middleware.RequireCurrentUser(d.Store))
	authed.POST("/products", products.Create)
	authed.PUT("/products", products.Update)
	authed.DELETE("/products", products.Delete)
	authed.GET("/auth/session", auth.Session)
	authed.POST("/auth/change-password", auth.ChangePassword)

	// Admin routes
	adminOnly := api.Group("/")
	adminOnly.Use(middleware.AuthMiddleware(d.Sessions), middleware.RequireRole(users.RoleAdmin))
	adminOnly.PUT("/admin/products/:id", admin.UpdateProduct)
	adminOnly.GET("/admin/dashboard", admin.Dashboard)
	adminOnly.GET("/users", admin.ListUsers)
	adminOnly.GET("/content", admin.GetContent)
	adminOnly.POST("/content", admin.SaveContent)
}
