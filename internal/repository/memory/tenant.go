package memory

import (
	"context"
	"sort"
	"time"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

type tenantStore struct {
	s *Store
}

func (t *tenantStore) Get(ctx context.Context, tenantID string) (*models.Tenant, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	tenant, ok := t.s.tenants[tenantID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(tenant), nil
}

func (t *tenantStore) List(ctx context.Context) ([]models.Tenant, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	out := make([]models.Tenant, 0, len(t.s.tenants))
	for _, tenant := range t.s.tenants {
		out = append(out, *clone(tenant))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *tenantStore) Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	stored := clone(tenant)
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, exists := t.s.tenants[stored.ID]; exists {
		return nil, repository.ErrConflict
	}
	t.s.tenants[stored.ID] = stored
	return clone(stored), nil
}

func (t *tenantStore) Update(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	stored, ok := t.s.tenants[tenant.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	next := clone(tenant)
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = time.Now().UTC()
	t.s.tenants[next.ID] = next
	return clone(next), nil
}

func (t *tenantStore) Delete(ctx context.Context, tenantID string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.tenants[tenantID]; !ok {
		return repository.ErrNotFound
	}
	delete(t.s.tenants, tenantID)
	return nil
}
