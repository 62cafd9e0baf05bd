package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lalith-99/pressgate/internal/auth"
)

// ContextKeyIdentity is where the session middleware stashes the parsed
// identity. Handlers read it back through GetIdentity — never through
// c.Get directly, so the type assertion lives in one place.
const ContextKeyIdentity = "identity"

// SessionAuth validates the admin surface's bearer session token. A
// missing header, a malformed header, or a bad token all abort with 401
// before any handler runs. The token is verified statelessly — no
// database call here.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or malformed authorization header",
			})
			return
		}

		claims, err := auth.ParseToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyIdentity, claims.Identity())
		c.Next()
	}
}

// BearerToken extracts the credential from "Authorization: Bearer <x>".
// Shared by the session middleware and the API-key handlers — the two
// schemes use the same header shape with different credential types.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// GetIdentity returns the identity set by SessionAuth, or nil when the
// request never went through it. The service layer treats nil as
// unauthenticated, so a mis-wired route fails closed instead of open.
func GetIdentity(c *gin.Context) *auth.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}
	identity, ok := val.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}
