package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/cache"
	"github.com/lalith-99/pressgate/internal/middleware"
	"github.com/lalith-99/pressgate/internal/service"
)

// Handlers bundles every HTTP handler and the cross-cutting pieces the
// router needs to mount them.
type Handlers struct {
	Auth    *AuthHandler
	Content *ContentHandler
	Tenants *TenantHandler
	Pages   *PageHandler
	Themes  *ThemeHandler
}

func NewHandlers(svc *service.Service, cors *cache.CORSPolicy, logger *zap.Logger) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(svc, logger),
		Content: NewContentHandler(svc, logger),
		Tenants: NewTenantHandler(svc, cors, logger),
		Pages:   NewPageHandler(svc, logger),
		Themes:  NewThemeHandler(svc, logger),
	}
}

// RegisterRoutes mounts the public content surface and the
// session-protected admin surface on the given engine.
//
// Content routes carry per-tenant CORS resolved from the tenant's
// allowed origins. Admin routes require a valid session token; the
// per-tenant authorization decisions happen below the transport, so a
// valid token alone does not grant access to another tenant's data.
func RegisterRoutes(srv *gin.Engine, h *Handlers, cors *cache.CORSPolicy, jwtSecret string, logger *zap.Logger) {
	srv.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	srv.POST("/auth/login", h.Auth.Login)

	content := srv.Group("/")
	content.Use(middleware.TenantCORS(cors, logger))
	{
		content.GET("/pages/:tenant/:slug", h.Content.GetPage)
		content.GET("/themes/:tenant", h.Content.GetActiveTheme)
		content.GET("/themes/:tenant/:themeId", h.Content.GetTheme)

		// Browsers preflight every content read because of the
		// Authorization header. OPTIONS must hit the same group so the
		// CORS middleware answers; an unmatched method would short-cut
		// through the engine's no-route path without it.
		preflight := func(c *gin.Context) { c.Status(http.StatusNoContent) }
		content.OPTIONS("/pages/:tenant/:slug", preflight)
		content.OPTIONS("/themes/:tenant", preflight)
		content.OPTIONS("/themes/:tenant/:themeId", preflight)
	}

	admin := srv.Group("/admin")
	admin.Use(middleware.SessionAuth(jwtSecret))
	{
		admin.GET("/tenants", h.Tenants.List)
		admin.POST("/tenants", h.Tenants.Create)
		admin.GET("/tenants/:id", h.Tenants.Get)
		admin.PUT("/tenants/:id", h.Tenants.Update)
		admin.DELETE("/tenants/:id", h.Tenants.Delete)
		admin.POST("/tenants/:id/regenerate-api-key", h.Tenants.RegenerateAPIKey)
		admin.POST("/tenants/:id/users", h.Tenants.CreateUser)

		admin.GET("/pages/:tenant", h.Pages.List)
		admin.POST("/pages/:tenant", h.Pages.Create)
		admin.GET("/pages/:tenant/:slug", h.Pages.Get)
		admin.PUT("/pages/:tenant/:slug", h.Pages.Update)
		admin.DELETE("/pages/:tenant/:slug", h.Pages.Delete)

		admin.GET("/themes/:tenant", h.Themes.List)
		admin.POST("/themes/:tenant", h.Themes.Create)
		admin.GET("/themes/:tenant/:themeId", h.Themes.Get)
		admin.PUT("/themes/:tenant/:themeId", h.Themes.Update)
		admin.DELETE("/themes/:tenant/:themeId", h.Themes.Delete)

		admin.GET("/hierarchy/:tenant", h.Pages.Hierarchy)
		admin.GET("/sitemap/:tenant", h.Pages.Sitemap)
	}
}
