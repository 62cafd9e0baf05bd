package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/middleware"
	"github.com/lalith-99/pressgate/internal/service"
)

// ContentHandler serves the read-only, API-key-authenticated content
// surface. The key is validated inside the service on every call — this
// layer only pulls it off the header and maps results to responses.
type ContentHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

func NewContentHandler(svc *service.Service, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{svc: svc, logger: logger}
}

func apiKey(c *gin.Context) string {
	key, _ := middleware.BearerToken(c)
	return key
}

// GetPage handles GET /pages/:tenant/:slug
func (h *ContentHandler) GetPage(c *gin.Context) {
	page, err := h.svc.GetPublishedPage(c.Request.Context(), apiKey(c), c.Param("tenant"), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetActiveTheme handles GET /themes/:tenant
func (h *ContentHandler) GetActiveTheme(c *gin.Context) {
	theme, err := h.svc.GetActiveTheme(c.Request.Context(), apiKey(c), c.Param("tenant"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

// GetTheme handles GET /themes/:tenant/:themeId
func (h *ContentHandler) GetTheme(c *gin.Context) {
	theme, err := h.svc.GetTheme(c.Request.Context(), apiKey(c), c.Param("tenant"), c.Param("themeId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}
