package siteapi

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"sort"

	"watch-storefront/internal/domain/catalog"
	"watch-storefront/internal/i18n"
	"watch-storefront/internal/service"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var archiveTmpl = template.Must(template.ParseFS(templateFS, "templates/archive.html"))

type Handler struct {
	svc *service.CatalogService
	log *slog.Logger
}

func NewHandler(svc *service.CatalogService, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the archive route and the root redirect. A locale prefix
// other than a supported one answers 404.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/:locale/archive", h.Archive)
	r.GET("/", h.Root)
}

func archivePath(l i18n.Locale) string {
	return "/" + string(l) + "/archive"
}

// GET /  -> /<negotiated locale>/archive
func (h *Handler) Root(c *gin.Context) {
	l := i18n.Negotiate(c.GetHeader("Accept-Language"))
	c.Redirect(http.StatusFound, archivePath(l))
}

// GET /:locale/archive
func (h *Handler) Archive(c *gin.Context) {
	l, ok := i18n.ParseLocale(c.Param("locale"))
	if !ok {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}

	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "archive: failed to load products", "error", err)
		c.String(http.StatusInternalServerError, "Unable to load products")
		return
	}

	page := archivePage{
		Locale:      l,
		Title:       l.T(i18n.MsgArchiveTitle),
		Description: l.T(i18n.MsgArchiveDescription),
		EmptyText:   l.T(i18n.MsgEmptyArchive),
		Items:       make([]archiveItem, 0, len(products)),
	}
	for _, other := range i18n.Locales {
		page.Alternates = append(page.Alternates, alternateLink{Locale: other, Href: archivePath(other)})
	}
	for _, p := range archiveOrder(products) {
		page.Items = append(page.Items, toArchiveItem(l, p))
	}

	var buf bytes.Buffer
	if err := archiveTmpl.Execute(&buf, page); err != nil {
		h.log.ErrorContext(c.Request.Context(), "archive: render failed", "error", err)
		c.String(http.StatusInternalServerError, "Unable to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// archiveOrder lists pieces still on offer before sold ones, keeping the
// newest-first order within each group.
func archiveOrder(in []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Status != catalog.StatusSold && out[j].Status == catalog.StatusSold
	})
	return out
}
