package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/lalith-99/pressgate/internal/models"
)

type tenantStore struct {
	s *Store
}

func (t *tenantStore) Get(ctx context.Context, tenantID string) (*models.Tenant, error) {
	pk := azcosmos.NewPartitionKeyString(tenantID)
	resp, err := t.s.tenants.ReadItem(ctx, pk, tenantID, nil)
	if err != nil {
		return nil, mapErr(err, "read tenant")
	}

	var tenant models.Tenant
	if err := json.Unmarshal(resp.Value, &tenant); err != nil {
		return nil, fmt.Errorf("decode tenant: %w", err)
	}
	return &tenant, nil
}

func (t *tenantStore) List(ctx context.Context) ([]models.Tenant, error) {
	pager := t.s.tenants.NewQueryItemsPager("SELECT * FROM c ORDER BY c.id", crossPartition, nil)

	tenants := make([]models.Tenant, 0)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapErr(err, "list tenants")
		}
		for _, raw := range resp.Items {
			var tenant models.Tenant
			if err := json.Unmarshal(raw, &tenant); err != nil {
				return nil, fmt.Errorf("decode tenant: %w", err)
			}
			tenants = append(tenants, tenant)
		}
	}
	return tenants, nil
}

func (t *tenantStore) Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	stored := *tenant
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("encode tenant: %w", err)
	}

	pk := azcosmos.NewPartitionKeyString(stored.ID)
	if _, err := t.s.tenants.CreateItem(ctx, pk, data, nil); err != nil {
		return nil, mapErr(err, "create tenant")
	}
	return &stored, nil
}

func (t *tenantStore) Update(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	stored, err := t.Get(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	next := *tenant
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(&next)
	if err != nil {
		return nil, fmt.Errorf("encode tenant: %w", err)
	}

	pk := azcosmos.NewPartitionKeyString(next.ID)
	if _, err := t.s.tenants.ReplaceItem(ctx, pk, next.ID, data, nil); err != nil {
		return nil, mapErr(err, "replace tenant")
	}
	return &next, nil
}

func (t *tenantStore) Delete(ctx context.Context, tenantID string) error {
	pk := azcosmos.NewPartitionKeyString(tenantID)
	if _, err := t.s.tenants.DeleteItem(ctx, pk, tenantID, nil); err != nil {
		return mapErr(err, "delete tenant")
	}
	return nil
}
