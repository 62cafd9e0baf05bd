package auth

import (
	"github.com/lalith-99/pressgate/internal/apperr"
	"github.com/lalith-99/pressgate/internal/models"
)

// Capability names one guarded operation class. Every service method
// declares exactly one capability and calls Decide before touching
// storage — there is no code path around the guard.
type Capability string

const (
	CapReadContent   Capability = "content:read"
	CapReadTenant    Capability = "tenant:read"
	CapWritePage     Capability = "page:write"
	CapDeletePage    Capability = "page:delete"
	CapManageTheme   Capability = "theme:manage"
	CapRotateAPIKey  Capability = "tenant:rotate-key"
	CapUpdateTenant  Capability = "tenant:update"
	CapCreateTenant  Capability = "tenant:create"
	CapDeleteTenant  Capability = "tenant:delete"
	CapReadHierarchy Capability = "hierarchy:read"
)

// capRule describes how a capability behaves for a non-SuperAdmin whose
// tenant claim matches the requested tenant. Privileged capabilities are
// never granted by tenant match; the rest require the listed minimum
// role within the caller's own tenant.
type capRule struct {
	privileged bool
	minRole    models.Role
}

var capRules = map[Capability]capRule{
	CapReadContent:   {minRole: models.RoleViewer},
	CapReadTenant:    {minRole: models.RoleViewer},
	CapReadHierarchy: {minRole: models.RoleViewer},
	CapWritePage:     {minRole: models.RoleEditor},
	CapDeletePage:    {minRole: models.RoleEditor},
	CapManageTheme:   {minRole: models.RoleTenantAdmin},
	CapRotateAPIKey:  {minRole: models.RoleTenantAdmin},
	CapUpdateTenant:  {minRole: models.RoleTenantAdmin},
	CapCreateTenant:  {privileged: true},
	CapDeleteTenant:  {privileged: true},
}

// Decide is the authorization guard. Pure function of its inputs; rules
// evaluate in order:
//
//  1. absent identity            -> unauthenticated
//  2. empty tenant claim         -> forbidden (malformed identity)
//  3. SuperAdmin                 -> allow, any tenant
//  4. caller tenant == requested -> allow when the capability is not
//     privileged and the caller's role meets its minimum
//  5. everything else            -> forbidden
//
// A nil return means ALLOW.
func Decide(identity *Identity, requestedTenant string, capability Capability) error {
	if identity == nil {
		return apperr.New(apperr.Unauthenticated, "not authenticated")
	}
	if identity.TenantID == "" {
		return apperr.New(apperr.Forbidden, "malformed identity: missing tenant claim")
	}
	if identity.Role == models.RoleSuperAdmin {
		return nil
	}
	if identity.TenantID == requestedTenant {
		rule, ok := capRules[capability]
		if !ok || rule.privileged {
			return apperr.Newf(apperr.Forbidden, "capability %q requires super admin", capability)
		}
		if !identity.Role.AtLeast(rule.minRole) {
			return apperr.Newf(apperr.Forbidden, "role %q cannot perform %q", identity.Role, capability)
		}
		return nil
	}
	return apperr.New(apperr.Forbidden, "cross-tenant access denied")
}

// DecideTenantDelete guards tenant deletion. On top of the normal rules,
// a tenant can never delete itself — the check runs even for a
// SuperAdmin whose own tenant claim matches the target.
func DecideTenantDelete(identity *Identity, targetTenant string) error {
	if err := Decide(identity, targetTenant, CapDeleteTenant); err != nil {
		return err
	}
	if identity.TenantID == targetTenant {
		return apperr.New(apperr.Forbidden, "a tenant cannot delete itself")
	}
	return nil
}
