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

type pageStore struct {
	s *Store
}

// queryOnePage runs a single-partition query expected to match at most
// one document.
func (p *pageStore) queryOnePage(ctx context.Context, tenantID, query string, params []azcosmos.QueryParameter) (*models.Page, error) {
	pk := azcosmos.NewPartitionKeyString(tenantID)
	pager := p.s.pages.NewQueryItemsPager(query, pk, &azcosmos.QueryOptions{QueryParameters: params})

	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapErr(err, "query page")
		}
		for _, raw := range resp.Items {
			var page models.Page
			if err := json.Unmarshal(raw, &page); err != nil {
				return nil, fmt.Errorf("decode page: %w", err)
			}
			return &page, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (p *pageStore) GetPublished(ctx context.Context, tenantID, slug string) (*models.Page, error) {
	return p.queryOnePage(ctx, tenantID,
		"SELECT * FROM c WHERE c.slug = @slug AND c.isPublished = true",
		[]azcosmos.QueryParameter{{Name: "@slug", Value: models.NormalizeSlug(slug)}},
	)
}

func (p *pageStore) Get(ctx context.Context, tenantID, slug string) (*models.Page, error) {
	return p.queryOnePage(ctx, tenantID,
		"SELECT * FROM c WHERE c.slug = @slug",
		[]azcosmos.QueryParameter{{Name: "@slug", Value: models.NormalizeSlug(slug)}},
	)
}

func (p *pageStore) ListByTenant(ctx context.Context, tenantID string) ([]models.Page, error) {
	pk := azcosmos.NewPartitionKeyString(tenantID)
	pager := p.s.pages.NewQueryItemsPager("SELECT * FROM c ORDER BY c.slug", pk, nil)

	pages := make([]models.Page, 0)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapErr(err, "list pages")
		}
		for _, raw := range resp.Items {
			var page models.Page
			if err := json.Unmarshal(raw, &page); err != nil {
				return nil, fmt.Errorf("decode page: %w", err)
			}
			pages = append(pages, page)
		}
	}
	return pages, nil
}

func (p *pageStore) Create(ctx context.Context, tenantID string, page *models.Page) (*models.Page, error) {
	stored := *page
	stored.TenantID = tenantID
	stored.Slug = models.NormalizeSlug(stored.Slug)
	if stored.Version == 0 {
		stored.Version = 1
	}
	now := time.Now().UTC()
	if stored.Meta.CreatedAt.IsZero() {
		stored.Meta.CreatedAt = now
	}
	stored.Meta.UpdatedAt = now

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("encode page: %w", err)
	}

	// No pre-check: the service's 409 on id collision is the conflict
	// signal, so a racing duplicate create still comes back ErrConflict.
	pk := azcosmos.NewPartitionKeyString(tenantID)
	if _, err := p.s.pages.CreateItem(ctx, pk, data, nil); err != nil {
		return nil, mapErr(err, "create page")
	}
	return &stored, nil
}

func (p *pageStore) Update(ctx context.Context, tenantID, slug string, page *models.Page) (*models.Page, error) {
	slug = models.NormalizeSlug(slug)

	stored, err := p.Get(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}
	if models.NormalizeSlug(page.Slug) != slug {
		return nil, repository.ErrInvalidArgument
	}

	// Full replace, identical to the Mongo adapter: the identifier is
	// carried forward, the version bumps from the copy just read, and
	// racing writers last-write-win with no merge.
	next := *page
	next.ID = stored.ID
	next.TenantID = tenantID
	next.Slug = slug
	next.Version = stored.Version + 1
	next.Meta.CreatedAt = stored.Meta.CreatedAt
	next.Meta.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(&next)
	if err != nil {
		return nil, fmt.Errorf("encode page: %w", err)
	}

	pk := azcosmos.NewPartitionKeyString(tenantID)
	if _, err := p.s.pages.ReplaceItem(ctx, pk, next.ID, data, nil); err != nil {
		return nil, mapErr(err, "replace page")
	}
	return &next, nil
}

func (p *pageStore) Delete(ctx context.Context, tenantID, slug string) error {
	stored, err := p.Get(ctx, tenantID, slug)
	if err != nil {
		return err
	}

	pk := azcosmos.NewPartitionKeyString(tenantID)
	if _, err := p.s.pages.DeleteItem(ctx, pk, stored.ID, nil); err != nil {
		return mapErr(err, "delete page")
	}
	return nil
}

func (p *pageStore) ListSitemapEntries(ctx context.Context, tenantID string) ([]models.SitemapEntry, error) {
	pk := azcosmos.NewPartitionKeyString(tenantID)
	pager := p.s.pages.NewQueryItemsPager(
		"SELECT * FROM c WHERE c.isPublished = true AND c.includeInSitemap = true", pk, nil)

	entries := make([]models.SitemapEntry, 0)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapErr(err, "list sitemap pages")
		}
		for _, raw := range resp.Items {
			var page models.Page
			if err := json.Unmarshal(raw, &page); err != nil {
				return nil, fmt.Errorf("decode page: %w", err)
			}
			last := page.Meta.UpdatedAt
			if page.PublishedAt != nil {
				last = *page.PublishedAt
			}
			entries = append(entries, models.SitemapEntry{Slug: page.Slug, LastModified: last})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })
	return entries, nil
}
