package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lalith-99/pressgate/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:          "u-42",
		Email:       "editor@acme.example.com",
		DisplayName: "Acme Editor",
		Role:        models.RoleEditor,
		TenantID:    "acme",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	signed, err := GenerateToken(testUser(), "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(signed, "secret")
	require.NoError(t, err)
	require.Equal(t, "u-42", claims.UserID)
	require.Equal(t, "editor@acme.example.com", claims.Email)
	require.Equal(t, models.RoleEditor, claims.Role)
	require.Equal(t, "acme", claims.TenantID)
	require.Equal(t, "pressgate", claims.Issuer)

	identity := claims.Identity()
	require.Equal(t, "u-42", identity.UserID)
	require.Equal(t, "acme", identity.TenantID)
}

func TestTokenWrongSecret(t *testing.T) {
	signed, err := GenerateToken(testUser(), "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(signed, "other-secret")
	require.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	signed, err := GenerateToken(testUser(), "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(signed, "secret")
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "secret")
	require.Error(t, err)
}
