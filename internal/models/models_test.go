package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	cases := map[string]string{
		"Pricing":     "pricing",
		"  Pricing  ": "pricing",
		"ABOUT-US":    "about-us",
		"pricing":     "pricing",
		"":            "",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeSlug(in))
	}
}

func TestNormalizeSlugIdempotent(t *testing.T) {
	for _, s := range []string{"Pricing", "  Mixed Case ", "already-normal", "ÜBER"} {
		once := NormalizeSlug(s)
		require.Equal(t, once, NormalizeSlug(once))
	}
}

func TestRoleAtLeast(t *testing.T) {
	require.True(t, RoleSuperAdmin.AtLeast(RoleTenantAdmin))
	require.True(t, RoleTenantAdmin.AtLeast(RoleEditor))
	require.True(t, RoleEditor.AtLeast(RoleViewer))
	require.True(t, RoleViewer.AtLeast(RoleViewer))

	require.False(t, RoleViewer.AtLeast(RoleEditor))
	require.False(t, RoleEditor.AtLeast(RoleTenantAdmin))
	require.False(t, Role("unknown").AtLeast(RoleViewer))
}

func TestUserPasswordHashNeverSerialized(t *testing.T) {
	u := User{ID: "u-1", Email: "a@b.c", PasswordHash: "$2a$10$secret"}
	data, err := json.Marshal(u)
	require.NoError(t, err)
	require.NotContains(t, string(data), "secret")
	require.NotContains(t, string(data), "passwordHash")
}
