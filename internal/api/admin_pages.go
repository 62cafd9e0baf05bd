package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/middleware"
	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/service"
)

// PageHandler covers the admin page surface, including the hub/spoke
// hierarchy and sitemap read-models.
type PageHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

func NewPageHandler(svc *service.Service, logger *zap.Logger) *PageHandler {
	return &PageHandler{svc: svc, logger: logger}
}

// List handles GET /admin/pages/:tenant
func (h *PageHandler) List(c *gin.Context) {
	pages, err := h.svc.ListPages(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pages)
}

// Get handles GET /admin/pages/:tenant/:slug — drafts included.
func (h *PageHandler) Get(c *gin.Context) {
	page, err := h.svc.GetPage(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create handles POST /admin/pages/:tenant
func (h *PageHandler) Create(c *gin.Context) {
	var page models.Page
	if err := c.ShouldBindJSON(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.SavePage(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"), &page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /admin/pages/:tenant/:slug. The body slug must
// match the path slug; the service surfaces a mismatch as a 400.
func (h *PageHandler) Update(c *gin.Context) {
	var page models.Page
	if err := c.ShouldBindJSON(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.UpdatePage(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"), c.Param("slug"), &page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /admin/pages/:tenant/:slug
func (h *PageHandler) Delete(c *gin.Context) {
	if err := h.svc.DeletePage(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"), c.Param("slug")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Hierarchy handles GET /admin/hierarchy/:tenant
func (h *PageHandler) Hierarchy(c *gin.Context) {
	hierarchy, err := h.svc.GetHierarchy(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, hierarchy)
}

// Sitemap handles GET /admin/sitemap/:tenant
func (h *PageHandler) Sitemap(c *gin.Context) {
	entries, err := h.svc.ListSitemapEntries(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
