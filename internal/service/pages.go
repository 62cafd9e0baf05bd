package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/apperr"
	"github.com/lalith-99/pressgate/internal/auth"
	"github.com/lalith-99/pressgate/internal/models"
)

// Admin page operations. These authenticate with a session token; the
// API-key read path lives in content.go.

func (s *Service) ListPages(ctx context.Context, identity *auth.Identity, tenantID string) ([]models.Page, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapReadContent); err != nil {
		return nil, err
	}

	pages, err := s.store.Pages().ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, translate(err, "pages")
	}
	return pages, nil
}

// GetPage is the admin read: drafts are visible here.
func (s *Service) GetPage(ctx context.Context, identity *auth.Identity, tenantID, slug string) (*models.Page, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapReadContent); err != nil {
		return nil, err
	}

	page, err := s.store.Pages().Get(ctx, tenantID, slug)
	if err != nil {
		return nil, translate(err, "page")
	}
	return page, nil
}

// SavePage creates a page. When the caller omits the identifier it is
// derived from tenant and slug, which is also the shape existing
// documents use.
func (s *Service) SavePage(ctx context.Context, identity *auth.Identity, tenantID string, page *models.Page) (*models.Page, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapWritePage); err != nil {
		return nil, err
	}

	if models.NormalizeSlug(page.Slug) == "" {
		return nil, apperr.New(apperr.InvalidArgument, "page slug is required")
	}
	if page.ID == "" {
		page.ID = tenantID + "-" + models.NormalizeSlug(page.Slug)
	}
	stampPublish(page)

	created, err := s.store.Pages().Create(ctx, tenantID, page)
	if err != nil {
		return nil, translate(err, "page")
	}

	s.logger.Info("page created",
		zap.String("tenant_id", tenantID),
		zap.String("slug", created.Slug),
	)
	return created, nil
}

// UpdatePage replaces a page. The adapter enforces the slug-match and
// identifier/version rules; this layer only guards and translates.
func (s *Service) UpdatePage(ctx context.Context, identity *auth.Identity, tenantID, slug string, page *models.Page) (*models.Page, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapWritePage); err != nil {
		return nil, err
	}

	stampPublish(page)

	updated, err := s.store.Pages().Update(ctx, tenantID, slug, page)
	if err != nil {
		return nil, translate(err, "page")
	}
	return updated, nil
}

func (s *Service) DeletePage(ctx context.Context, identity *auth.Identity, tenantID, slug string) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}
	if err := auth.Decide(identity, tenantID, auth.CapDeletePage); err != nil {
		return err
	}

	if err := s.store.Pages().Delete(ctx, tenantID, slug); err != nil {
		return translate(err, "page")
	}

	s.logger.Info("page deleted",
		zap.String("tenant_id", tenantID),
		zap.String("slug", models.NormalizeSlug(slug)),
	)
	return nil
}

func (s *Service) ListSitemapEntries(ctx context.Context, identity *auth.Identity, tenantID string) ([]models.SitemapEntry, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapReadContent); err != nil {
		return nil, err
	}

	entries, err := s.store.Pages().ListSitemapEntries(ctx, tenantID)
	if err != nil {
		return nil, translate(err, "sitemap")
	}
	return entries, nil
}

// stampPublish sets the publish timestamp the first time a page goes
// out, and clears it when the page is pulled back to draft.
func stampPublish(page *models.Page) {
	if page.IsPublished && page.PublishedAt == nil {
		now := time.Now().UTC()
		page.PublishedAt = &now
	}
	if !page.IsPublished {
		page.PublishedAt = nil
	}
}
