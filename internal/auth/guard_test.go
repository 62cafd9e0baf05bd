package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lalith-99/pressgate/internal/apperr"
	"github.com/lalith-99/pressgate/internal/models"
)

func ident(role models.Role, tenantID string) *Identity {
	return &Identity{UserID: "u-1", Email: "u@example.com", Role: role, TenantID: tenantID}
}

func TestDecideNilIdentity(t *testing.T) {
	err := Decide(nil, "acme", CapReadContent)
	require.Error(t, err)
	require.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestDecideMissingTenantClaim(t *testing.T) {
	err := Decide(ident(models.RoleTenantAdmin, ""), "acme", CapReadContent)
	require.Error(t, err)
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestDecideSuperAdminCrossesTenants(t *testing.T) {
	sa := ident(models.RoleSuperAdmin, "platform")
	for _, capability := range allCapabilities() {
		require.NoError(t, Decide(sa, "acme", capability), "capability %s", capability)
	}
}

func TestDecideCrossTenantDenied(t *testing.T) {
	admin := ident(models.RoleTenantAdmin, "acme")
	err := Decide(admin, "globex", CapReadContent)
	require.Error(t, err)
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestDecidePrivilegedCapabilitiesNeedSuperAdmin(t *testing.T) {
	// Even a tenant admin inside its own tenant cannot create or delete
	// tenants.
	admin := ident(models.RoleTenantAdmin, "acme")
	for _, capability := range []Capability{CapCreateTenant, CapDeleteTenant} {
		err := Decide(admin, "acme", capability)
		require.Error(t, err, "capability %s", capability)
		require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	}
}

// TestDecideTotality walks every (role, tenant-match, capability)
// combination and requires a definite allow or a typed deny from each.
func TestDecideTotality(t *testing.T) {
	roles := []models.Role{models.RoleSuperAdmin, models.RoleTenantAdmin, models.RoleEditor, models.RoleViewer}
	tenants := []string{"acme", "globex"}

	for _, role := range roles {
		for _, requested := range tenants {
			for _, capability := range allCapabilities() {
				err := Decide(ident(role, "acme"), requested, capability)
				if err == nil {
					continue
				}
				kind := apperr.KindOf(err)
				require.True(t, kind == apperr.Forbidden || kind == apperr.Unauthenticated,
					"role=%s requested=%s capability=%s returned kind %s", role, requested, capability, kind)
			}
		}
	}
}

func TestDecideRoleFloors(t *testing.T) {
	cases := []struct {
		role       models.Role
		capability Capability
		allowed    bool
	}{
		{models.RoleViewer, CapReadContent, true},
		{models.RoleViewer, CapReadTenant, true},
		{models.RoleViewer, CapReadHierarchy, true},
		{models.RoleViewer, CapWritePage, false},
		{models.RoleViewer, CapManageTheme, false},
		{models.RoleEditor, CapWritePage, true},
		{models.RoleEditor, CapDeletePage, true},
		{models.RoleEditor, CapManageTheme, false},
		{models.RoleEditor, CapRotateAPIKey, false},
		{models.RoleTenantAdmin, CapManageTheme, true},
		{models.RoleTenantAdmin, CapRotateAPIKey, true},
		{models.RoleTenantAdmin, CapUpdateTenant, true},
	}

	for _, tc := range cases {
		err := Decide(ident(tc.role, "acme"), "acme", tc.capability)
		if tc.allowed {
			require.NoError(t, err, "role=%s capability=%s", tc.role, tc.capability)
		} else {
			require.Error(t, err, "role=%s capability=%s", tc.role, tc.capability)
			require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
		}
	}
}

func TestDecideTenantDelete(t *testing.T) {
	sa := ident(models.RoleSuperAdmin, "platform")
	require.NoError(t, DecideTenantDelete(sa, "acme"))

	// Self-delete is refused even for a super admin.
	err := DecideTenantDelete(sa, "platform")
	require.Error(t, err)
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// Non-super-admins never reach the self-delete check.
	err = DecideTenantDelete(ident(models.RoleTenantAdmin, "acme"), "acme")
	require.Error(t, err)
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func allCapabilities() []Capability {
	return []Capability{
		CapReadContent, CapReadTenant, CapWritePage, CapDeletePage,
		CapManageTheme, CapRotateAPIKey, CapUpdateTenant,
		CapCreateTenant, CapDeleteTenant, CapReadHierarchy,
	}
}
