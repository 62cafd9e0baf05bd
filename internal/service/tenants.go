package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/apperr"
	"github.com/lalith-99/pressgate/internal/auth"
	"github.com/lalith-99/pressgate/internal/models"
)

// TenantWithKey is the one response shape that ever carries a plaintext
// API key. It comes back from CreateTenant and RegenerateAPIKey and
// from nowhere else.
type TenantWithKey struct {
	Tenant *models.Tenant `json:"tenant"`
	APIKey string         `json:"apiKey"`
}

// scrubTenant strips stored key material before a tenant leaves the
// service. The hash stays in the database only.
func scrubTenant(t *models.Tenant) *models.Tenant {
	out := *t
	out.APIKeyHash = ""
	return &out
}

// ListTenants returns the tenants visible to the caller: all of them
// for SuperAdmin, the caller's own otherwise.
func (s *Service) ListTenants(ctx context.Context, identity *auth.Identity) ([]models.Tenant, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, identity.TenantID, auth.CapReadTenant); err != nil {
		return nil, err
	}

	if identity.Role == models.RoleSuperAdmin {
		tenants, err := s.store.Tenants().List(ctx)
		if err != nil {
			return nil, translate(err, "tenants")
		}
		for i := range tenants {
			tenants[i].APIKeyHash = ""
		}
		return tenants, nil
	}

	own, err := s.store.Tenants().Get(ctx, identity.TenantID)
	if err != nil {
		return nil, translate(err, "tenant")
	}
	return []models.Tenant{*scrubTenant(own)}, nil
}

func (s *Service) GetTenant(ctx context.Context, identity *auth.Identity, tenantID string) (*models.Tenant, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapReadTenant); err != nil {
		return nil, err
	}

	tenant, err := s.store.Tenants().Get(ctx, tenantID)
	if err != nil {
		return nil, translate(err, "tenant")
	}
	return scrubTenant(tenant), nil
}

// CreateTenant provisions a tenant and mints its API key server-side.
// The plaintext key appears in this response and is never recoverable
// afterwards.
func (s *Service) CreateTenant(ctx context.Context, identity *auth.Identity, tenant *models.Tenant) (*TenantWithKey, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenant.ID, auth.CapCreateTenant); err != nil {
		return nil, err
	}

	if tenant.ID == "" || tenant.Name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "tenant id and name are required")
	}
	if tenant.Status == "" {
		tenant.Status = models.TenantActive
	}

	plaintext, hash, err := auth.MintAPIKey()
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "mint api key", err)
	}

	created := *tenant
	created.APIKeyHash = hash
	created.APIKeyActive = true
	created.APIKeyCreatedAt = time.Now().UTC()

	out, err := s.store.Tenants().Create(ctx, &created)
	if err != nil {
		return nil, translate(err, "tenant")
	}

	s.logger.Info("tenant created",
		zap.String("tenant_id", out.ID),
		zap.String("plan", out.Plan),
	)
	return &TenantWithKey{Tenant: scrubTenant(out), APIKey: plaintext}, nil
}

// UpdateTenant replaces a tenant's mutable fields. Key material is not
// mutable here — the stored hash and key metadata are carried forward
// so the only way to change a key is rotation.
func (s *Service) UpdateTenant(ctx context.Context, identity *auth.Identity, tenant *models.Tenant) (*models.Tenant, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenant.ID, auth.CapUpdateTenant); err != nil {
		return nil, err
	}

	stored, err := s.store.Tenants().Get(ctx, tenant.ID)
	if err != nil {
		return nil, translate(err, "tenant")
	}

	next := *tenant
	next.APIKeyHash = stored.APIKeyHash
	next.APIKeyActive = stored.APIKeyActive
	next.APIKeyCreatedAt = stored.APIKeyCreatedAt

	out, err := s.store.Tenants().Update(ctx, &next)
	if err != nil {
		return nil, translate(err, "tenant")
	}
	return scrubTenant(out), nil
}

// DeleteTenant removes a tenant. Self-delete is forbidden even for
// SuperAdmin.
func (s *Service) DeleteTenant(ctx context.Context, identity *auth.Identity, tenantID string) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}
	if err := auth.DecideTenantDelete(identity, tenantID); err != nil {
		return err
	}

	if err := s.store.Tenants().Delete(ctx, tenantID); err != nil {
		return translate(err, "tenant")
	}
	s.logger.Info("tenant deleted", zap.String("tenant_id", tenantID))
	return nil
}

// RegenerateAPIKey rotates a tenant's API key. The old key is invalid
// the moment the new hash is written; requests already past credential
// validation are unaffected.
func (s *Service) RegenerateAPIKey(ctx context.Context, identity *auth.Identity, tenantID string) (*TenantWithKey, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapRotateAPIKey); err != nil {
		return nil, err
	}

	stored, err := s.store.Tenants().Get(ctx, tenantID)
	if err != nil {
		return nil, translate(err, "tenant")
	}

	plaintext, hash, err := auth.MintAPIKey()
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "mint api key", err)
	}

	stored.APIKeyHash = hash
	stored.APIKeyActive = true
	stored.APIKeyCreatedAt = time.Now().UTC()

	out, err := s.store.Tenants().Update(ctx, stored)
	if err != nil {
		return nil, translate(err, "tenant")
	}

	s.logger.Info("tenant api key rotated", zap.String("tenant_id", tenantID))
	return &TenantWithKey{Tenant: scrubTenant(out), APIKey: plaintext}, nil
}
