package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository/memory"
)

func TestAllowedOriginsWithoutRedis(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.Tenants().Create(ctx, &models.Tenant{
		ID:     "acme",
		Name:   "Acme",
		Status: models.TenantActive,
		Settings: models.TenantSettings{
			AllowedOrigins: []string{"https://acme.example.com", "https://www.acme.example.com"},
		},
	})
	require.NoError(t, err)

	policy := NewCORSPolicy(nil, store.Tenants(), zaptest.NewLogger(t))

	origins, err := policy.AllowedOrigins(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, []string{"https://acme.example.com", "https://www.acme.example.com"}, origins)

	_, err = policy.AllowedOrigins(ctx, "ghost")
	require.Error(t, err)

	// Invalidate with no cache behind it is a no-op, not a panic.
	policy.Invalidate(ctx, "acme")
}
