package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/middleware"
	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/service"
)

type ThemeHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

func NewThemeHandler(svc *service.Service, logger *zap.Logger) *ThemeHandler {
	return &ThemeHandler{svc: svc, logger: logger}
}

// List handles GET /admin/themes/:tenant
func (h *ThemeHandler) List(c *gin.Context) {
	themes, err := h.svc.ListThemes(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, themes)
}

// Get handles GET /admin/themes/:tenant/:themeId
func (h *ThemeHandler) Get(c *gin.Context) {
	theme, err := h.svc.GetThemeAdmin(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"), c.Param("themeId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

// Create handles POST /admin/themes/:tenant
func (h *ThemeHandler) Create(c *gin.Context) {
	var theme models.Theme
	if err := c.ShouldBindJSON(&theme); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.CreateTheme(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"), &theme)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /admin/themes/:tenant/:themeId
func (h *ThemeHandler) Update(c *gin.Context) {
	var theme models.Theme
	if err := c.ShouldBindJSON(&theme); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	theme.ID = c.Param("themeId")

	updated, err := h.svc.UpdateTheme(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"), &theme)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /admin/themes/:tenant/:themeId
func (h *ThemeHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteTheme(c.Request.Context(), middleware.GetIdentity(c), c.Param("tenant"), c.Param("themeId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
