package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lalith-99/pressgate/internal/models"
)

// Identity is the claim set extracted from a session credential. It is
// what the authorization guard reasons about. An Identity never comes
// from anywhere except a verified token (admin scheme) or a verified
// API key (content scheme, via APIKeyIdentity).
type Identity struct {
	UserID   string
	Email    string
	Name     string
	Role     models.Role
	TenantID string
}

// APIKeyIdentity is the identity a validated API key stands for. A key
// does not identify a human, so it carries the lowest role and only the
// tenant it is scoped to.
func APIKeyIdentity(tenantID string) *Identity {
	return &Identity{Role: models.RoleViewer, TenantID: tenantID}
}

// Claims is the payload inside every session token. Validation is
// stateless: the middleware checks signature and expiry without a
// database round trip, so a role change only takes effect when the
// token is reissued.
type Claims struct {
	UserID   string      `json:"user_id"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
	TenantID string      `json:"tenant_id"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() *Identity {
	return &Identity{
		UserID:   c.UserID,
		Email:    c.Email,
		Name:     c.Name,
		Role:     c.Role,
		TenantID: c.TenantID,
	}
}

// GenerateToken creates a signed HS256 session token for a user.
func GenerateToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.DisplayName,
		Role:     user.Role,
		TenantID: user.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "pressgate",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session token string and extracts the claims.
// It verifies the signature, the expiry, and that the signing method is
// HMAC — a token signed with "none" or an asymmetric algorithm is
// rejected before signature verification.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
