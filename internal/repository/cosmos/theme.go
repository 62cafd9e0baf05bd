package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

type themeStore struct {
	s *Store
}

func (t *themeStore) Get(ctx context.Context, tenantID, themeID string) (*models.Theme, error) {
	pk := azcosmos.NewPartitionKeyString(tenantID)
	resp, err := t.s.themes.ReadItem(ctx, pk, themeID, nil)
	if err != nil {
		return nil, mapErr(err, "read theme")
	}

	var theme models.Theme
	if err := json.Unmarshal(resp.Value, &theme); err != nil {
		return nil, fmt.Errorf("decode theme: %w", err)
	}
	return &theme, nil
}

func (t *themeStore) ListByTenant(ctx context.Context, tenantID string) ([]models.Theme, error) {
	pk := azcosmos.NewPartitionKeyString(tenantID)
	pager := t.s.themes.NewQueryItemsPager("SELECT * FROM c", pk, nil)

	themes := make([]models.Theme, 0)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapErr(err, "list themes")
		}
		for _, raw := range resp.Items {
			var theme models.Theme
			if err := json.Unmarshal(raw, &theme); err != nil {
				return nil, fmt.Errorf("decode theme: %w", err)
			}
			themes = append(themes, theme)
		}
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].CreatedAt.Before(themes[j].CreatedAt) })
	return themes, nil
}

func (t *themeStore) GetActive(ctx context.Context, tenantID string) (*models.Theme, error) {
	themes, err := t.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	// Oldest active wins, matching the other backends' tiebreak.
	for i := range themes {
		if themes[i].IsActive {
			return &themes[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (t *themeStore) Create(ctx context.Context, tenantID string, theme *models.Theme) (*models.Theme, error) {
	stored := *theme
	stored.TenantID = tenantID
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("encode theme: %w", err)
	}

	pk := azcosmos.NewPartitionKeyString(tenantID)
	if _, err := t.s.themes.CreateItem(ctx, pk, data, nil); err != nil {
		return nil, mapErr(err, "create theme")
	}
	return &stored, nil
}

func (t *themeStore) Update(ctx context.Context, tenantID string, theme *models.Theme) (*models.Theme, error) {
	stored, err := t.Get(ctx, tenantID, theme.ID)
	if err != nil {
		return nil, err
	}

	next := *theme
	next.TenantID = tenantID
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(&next)
	if err != nil {
		return nil, fmt.Errorf("encode theme: %w", err)
	}

	pk := azcosmos.NewPartitionKeyString(tenantID)
	if _, err := t.s.themes.ReplaceItem(ctx, pk, next.ID, data, nil); err != nil {
		return nil, mapErr(err, "replace theme")
	}
	return &next, nil
}

func (t *themeStore) Delete(ctx context.Context, tenantID, themeID string) error {
	pk := azcosmos.NewPartitionKeyString(tenantID)
	if _, err := t.s.themes.DeleteItem(ctx, pk, themeID, nil); err != nil {
		return mapErr(err, "delete theme")
	}
	return nil
}
