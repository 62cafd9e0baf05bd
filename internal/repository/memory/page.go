package memory

import (
	"context"
	"sort"
	"time"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

type pageStore struct {
	s *Store
}

func (p *pageStore) GetPublished(ctx context.Context, tenantID, slug string) (*models.Page, error) {
	slug = models.NormalizeSlug(slug)

	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	for _, page := range p.s.pages[tenantID] {
		if page.Slug == slug && page.IsPublished {
			return clone(page), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (p *pageStore) Get(ctx context.Context, tenantID, slug string) (*models.Page, error) {
	slug = models.NormalizeSlug(slug)

	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	page := p.findBySlug(tenantID, slug)
	if page == nil {
		return nil, repository.ErrNotFound
	}
	return clone(page), nil
}

func (p *pageStore) ListByTenant(ctx context.Context, tenantID string) ([]models.Page, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	out := make([]models.Page, 0, len(p.s.pages[tenantID]))
	for _, page := range p.s.pages[tenantID] {
		out = append(out, *clone(page))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (p *pageStore) Create(ctx context.Context, tenantID string, page *models.Page) (*models.Page, error) {
	stored := clone(page)
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

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, exists := p.s.pages[tenantID][stored.ID]; exists {
		return nil, repository.ErrConflict
	}
	if p.s.pages[tenantID] == nil {
		p.s.pages[tenantID] = make(map[string]*models.Page)
	}
	p.s.pages[tenantID][stored.ID] = stored
	return clone(stored), nil
}

func (p *pageStore) Update(ctx context.Context, tenantID, slug string, page *models.Page) (*models.Page, error) {
	slug = models.NormalizeSlug(slug)

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	stored := p.findBySlug(tenantID, slug)
	if stored == nil {
		return nil, repository.ErrNotFound
	}
	if models.NormalizeSlug(page.Slug) != slug {
		return nil, repository.ErrInvalidArgument
	}

	// Full replace: the incoming document wins everywhere except the
	// identifier, which is immutable, and the version, which bumps from
	// the stored copy.
	next := clone(page)
	next.ID = stored.ID
	next.TenantID = tenantID
	next.Slug = slug
	next.Version = stored.Version + 1
	next.Meta.CreatedAt = stored.Meta.CreatedAt
	next.Meta.UpdatedAt = time.Now().UTC()

	p.s.pages[tenantID][next.ID] = next
	return clone(next), nil
}

func (p *pageStore) Delete(ctx context.Context, tenantID, slug string) error {
	slug = models.NormalizeSlug(slug)

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	stored := p.findBySlug(tenantID, slug)
	if stored == nil {
		return repository.ErrNotFound
	}
	delete(p.s.pages[tenantID], stored.ID)
	return nil
}

func (p *pageStore) ListSitemapEntries(ctx context.Context, tenantID string) ([]models.SitemapEntry, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	entries := make([]models.SitemapEntry, 0)
	for _, page := range p.s.pages[tenantID] {
		if !page.IsPublished || !page.IncludeInSitemap {
			continue
		}
		last := page.Meta.UpdatedAt
		if page.PublishedAt != nil {
			last = *page.PublishedAt
		}
		entries = append(entries, models.SitemapEntry{Slug: page.Slug, LastModified: last})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })
	return entries, nil
}

// findBySlug must be called with the lock held.
func (p *pageStore) findBySlug(tenantID, slug string) *models.Page {
	for _, page := range p.s.pages[tenantID] {
		if page.Slug == slug {
			return page
		}
	}
	return nil
}
