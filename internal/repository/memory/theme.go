package memory

import (
	"context"
	"sort"
	"time"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

type themeStore struct {
	s *Store
}

func (t *themeStore) Get(ctx context.Context, tenantID, themeID string) (*models.Theme, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	theme, ok := t.s.themes[tenantID][themeID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(theme), nil
}

func (t *themeStore) ListByTenant(ctx context.Context, tenantID string) ([]models.Theme, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	out := make([]models.Theme, 0, len(t.s.themes[tenantID]))
	for _, theme := range t.s.themes[tenantID] {
		out = append(out, *clone(theme))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (t *themeStore) GetActive(ctx context.Context, tenantID string) (*models.Theme, error) {
	themes, err := t.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	// ListByTenant sorts by creation time, so when two themes are
	// flagged active the older one wins — same tiebreak as the physical
	// backends.
	for i := range themes {
		if themes[i].IsActive {
			return &themes[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (t *themeStore) Create(ctx context.Context, tenantID string, theme *models.Theme) (*models.Theme, error) {
	stored := clone(theme)
	stored.TenantID = tenantID
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, exists := t.s.themes[tenantID][stored.ID]; exists {
		return nil, repository.ErrConflict
	}
	if t.s.themes[tenantID] == nil {
		t.s.themes[tenantID] = make(map[string]*models.Theme)
	}
	t.s.themes[tenantID][stored.ID] = stored
	return clone(stored), nil
}

func (t *themeStore) Update(ctx context.Context, tenantID string, theme *models.Theme) (*models.Theme, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	stored, ok := t.s.themes[tenantID][theme.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	next := clone(theme)
	next.TenantID = tenantID
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = time.Now().UTC()
	t.s.themes[tenantID][next.ID] = next
	return clone(next), nil
}

func (t *themeStore) Delete(ctx context.Context, tenantID, themeID string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.themes[tenantID][themeID]; !ok {
		return repository.ErrNotFound
	}
	delete(t.s.themes[tenantID], themeID)
	return nil
}
