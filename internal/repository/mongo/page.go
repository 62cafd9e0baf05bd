package mongo

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

type pageStore struct {
	s *Store
}

func (p *pageStore) GetPublished(ctx context.Context, tenantID, slug string) (*models.Page, error) {
	filter := bson.M{
		"tenantId":    tenantID,
		"slug":        models.NormalizeSlug(slug),
		"isPublished": true,
	}

	var page models.Page
	if err := p.s.pages().FindOne(ctx, filter).Decode(&page); err != nil {
		return nil, mapErr(err, "find published page")
	}
	return &page, nil
}

func (p *pageStore) Get(ctx context.Context, tenantID, slug string) (*models.Page, error) {
	filter := bson.M{"tenantId": tenantID, "slug": models.NormalizeSlug(slug)}

	var page models.Page
	if err := p.s.pages().FindOne(ctx, filter).Decode(&page); err != nil {
		return nil, mapErr(err, "find page")
	}
	return &page, nil
}

func (p *pageStore) ListByTenant(ctx context.Context, tenantID string) ([]models.Page, error) {
	opts := options.Find().SetSort(bson.D{{Key: "slug", Value: 1}})
	cur, err := p.s.pages().Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, mapErr(err, "list pages")
	}

	pages := make([]models.Page, 0)
	if err := cur.All(ctx, &pages); err != nil {
		return nil, mapErr(err, "decode pages")
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

	// No pre-check for existence: the unique (tenantId, id) index is the
	// conflict signal, so a racing duplicate create still comes back as
	// ErrConflict while the same id stays free for other tenants.
	if _, err := p.s.pages().InsertOne(ctx, &stored); err != nil {
		return nil, mapErr(err, "insert page")
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

	// Full replace. The incoming document wins everywhere except the
	// identifier, which is immutable, and the version, which bumps from
	// the copy we just read. Two racing writers last-write-win at the
	// storage layer; no merge is attempted.
	next := *page
	next.ID = stored.ID
	next.TenantID = tenantID
	next.Slug = slug
	next.Version = stored.Version + 1
	next.Meta.CreatedAt = stored.Meta.CreatedAt
	next.Meta.UpdatedAt = time.Now().UTC()

	filter := bson.M{"id": stored.ID, "tenantId": tenantID}
	if _, err := p.s.pages().ReplaceOne(ctx, filter, &next); err != nil {
		return nil, mapErr(err, "replace page")
	}
	return &next, nil
}

func (p *pageStore) Delete(ctx context.Context, tenantID, slug string) error {
	// Resolve slug to identifier first; delete by identifier.
	stored, err := p.Get(ctx, tenantID, slug)
	if err != nil {
		return err
	}

	res, err := p.s.pages().DeleteOne(ctx, bson.M{"id": stored.ID, "tenantId": tenantID})
	if err != nil {
		return mapErr(err, "delete page")
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (p *pageStore) ListSitemapEntries(ctx context.Context, tenantID string) ([]models.SitemapEntry, error) {
	filter := bson.M{
		"tenantId":         tenantID,
		"isPublished":      true,
		"includeInSitemap": true,
	}
	cur, err := p.s.pages().Find(ctx, filter)
	if err != nil {
		return nil, mapErr(err, "list sitemap pages")
	}

	var pages []models.Page
	if err := cur.All(ctx, &pages); err != nil {
		return nil, mapErr(err, "decode sitemap pages")
	}

	entries := make([]models.SitemapEntry, 0, len(pages))
	for _, page := range pages {
		last := page.Meta.UpdatedAt
		if page.PublishedAt != nil {
			last = *page.PublishedAt
		}
		entries = append(entries, models.SitemapEntry{Slug: page.Slug, LastModified: last})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })
	return entries, nil
}
