package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/apperr"
)

// respondError translates a service error into an HTTP response. Only
// the taxonomy's client-safe message goes out; unexpected errors render
// as a generic 500 and the detail stays in the log.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Unexpected {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(kind.HTTPStatus(), gin.H{"error": apperr.Message(err)})
}
