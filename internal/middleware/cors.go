package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/cache"
)

// TenantCORS applies the per-tenant CORS policy on the content surface.
// There is no global allow-list: each tenant configures its own origins,
// resolved per request through the policy cache. Routes using this
// middleware must carry a :tenant path parameter.
//
// Requests without an Origin header (server-to-server callers) pass
// through untouched. An origin outside the tenant's list simply gets no
// CORS headers — the browser enforces the block; the API itself still
// requires a valid key either way.
func TenantCORS(policy *cache.CORSPolicy, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		tenantID := c.Param("tenant")
		allowed, err := policy.AllowedOrigins(c.Request.Context(), tenantID)
		if err != nil {
			// Unknown tenant or storage trouble: no CORS headers. The
			// request proceeds and fails credential validation on its
			// own terms.
			logger.Debug("cors policy lookup failed",
				zap.String("tenant_id", tenantID), zap.Error(err))
			c.Next()
			return
		}

		for _, candidate := range allowed {
			if candidate == origin || candidate == "*" {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Vary", "Origin")
				break
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
