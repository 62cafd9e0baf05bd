// Package storetest is the conformance suite for document store
// adapters. Every backend — Mongo, Cosmos, memory — runs the exact same
// assertions, so any behavioral drift between adapters (error kinds,
// normalization, version handling) fails the drifting backend's tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

// Factory returns a store backed by clean state. It is called once per
// subtest; implementations may share a server but must isolate data
// (fresh database, fresh maps).
type Factory func(t *testing.T) repository.Store

func makePage(tenantID, id, slug string) *models.Page {
	return &models.Page{
		ID:       id,
		TenantID: tenantID,
		Slug:     slug,
		Layout:   "default",
		Meta: models.PageMeta{
			Title:  "Title for " + slug,
			Author: "conformance",
			Locale: "en-US",
		},
		Content: []models.Block{
			{Type: "hero", Content: &models.HeroContent{Heading: "Hello"}},
			{Type: "faq", Content: &models.FAQContent{Items: []models.FAQItem{{Question: "Q", Answer: "A"}}}},
		},
		IsPublished:      true,
		IncludeInSitemap: true,
	}
}

func makeTenant(id string) *models.Tenant {
	return &models.Tenant{
		ID:           id,
		Name:         "Tenant " + id,
		Plan:         "standard",
		Status:       models.TenantActive,
		APIKeyHash:   "$2a$12$notarealhashnotarealhashnotarealhashnotarealhash",
		APIKeyActive: true,
		Settings: models.TenantSettings{
			Theme:          "default",
			Locale:         "en-US",
			SeatLimit:      5,
			AllowedOrigins: []string{"https://" + id + ".example.com"},
		},
		BillingCycle: "monthly",
	}
}

// Run executes the full conformance matrix against the adapter produced
// by factory.
func Run(t *testing.T, factory Factory) {
	ctx := context.Background()

	t.Run("PageSlugNormalizedOnWrite", func(t *testing.T) {
		store := factory(t)
		_, err := store.Pages().Create(ctx, "acme", makePage("acme", "acme-pricing", "Pricing"))
		require.NoError(t, err)

		got, err := store.Pages().GetPublished(ctx, "acme", "pricing")
		require.NoError(t, err)
		require.Equal(t, "pricing", got.Slug, "stored slug must be lowercase")

		// Mixed-case lookup resolves to the same document.
		upper, err := store.Pages().GetPublished(ctx, "acme", "PRICING")
		require.NoError(t, err)
		require.Equal(t, got.ID, upper.ID)
	})

	t.Run("GetPublishedHidesUnpublished", func(t *testing.T) {
		store := factory(t)
		draft := makePage("acme", "acme-draft", "draft")
		draft.IsPublished = false
		_, err := store.Pages().Create(ctx, "acme", draft)
		require.NoError(t, err)

		_, err = store.Pages().GetPublished(ctx, "acme", "draft")
		require.ErrorIs(t, err, repository.ErrNotFound)

		// The admin read still sees it.
		got, err := store.Pages().Get(ctx, "acme", "draft")
		require.NoError(t, err)
		require.False(t, got.IsPublished)
	})

	t.Run("PageNotFoundBeforeCreate", func(t *testing.T) {
		store := factory(t)
		_, err := store.Pages().GetPublished(ctx, "acme", "pricing")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("PageCreateConflictOnDuplicateID", func(t *testing.T) {
		store := factory(t)
		_, err := store.Pages().Create(ctx, "acme", makePage("acme", "acme-pricing", "pricing"))
		require.NoError(t, err)

		_, err = store.Pages().Create(ctx, "acme", makePage("acme", "acme-pricing", "pricing-two"))
		require.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("PageIDScopedPerTenant", func(t *testing.T) {
		store := factory(t)
		_, err := store.Pages().Create(ctx, "acme", makePage("acme", "home", "home"))
		require.NoError(t, err)

		// The same identifier under another tenant is a distinct page,
		// not a conflict.
		_, err = store.Pages().Create(ctx, "globex", makePage("globex", "home", "home"))
		require.NoError(t, err)

		got, err := store.Pages().Get(ctx, "globex", "home")
		require.NoError(t, err)
		require.Equal(t, "globex", got.TenantID)

		// Duplicating it inside the first tenant still conflicts.
		_, err = store.Pages().Create(ctx, "acme", makePage("acme", "home", "other"))
		require.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("ThemeIDScopedPerTenant", func(t *testing.T) {
		store := factory(t)
		_, err := store.Themes().Create(ctx, "acme", &models.Theme{ID: "default", Name: "Acme Default"})
		require.NoError(t, err)

		_, err = store.Themes().Create(ctx, "globex", &models.Theme{ID: "default", Name: "Globex Default"})
		require.NoError(t, err)

		got, err := store.Themes().Get(ctx, "globex", "default")
		require.NoError(t, err)
		require.Equal(t, "Globex Default", got.Name)

		_, err = store.Themes().Create(ctx, "acme", &models.Theme{ID: "default", Name: "Again"})
		require.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("PageUpdateIsFullReplace", func(t *testing.T) {
		store := factory(t)
		created, err := store.Pages().Create(ctx, "acme", makePage("acme", "acme-pricing", "pricing"))
		require.NoError(t, err)
		require.Equal(t, 1, created.Version)

		incoming := makePage("acme", "ignored-id", "pricing")
		incoming.Layout = "wide"
		incoming.Meta.Title = "New title"
		incoming.Content = []models.Block{
			{Type: "hero", Content: &models.HeroContent{Heading: "Replaced"}},
		}

		updated, err := store.Pages().Update(ctx, "acme", "pricing", incoming)
		require.NoError(t, err)
		require.Equal(t, created.ID, updated.ID, "identifier is immutable")
		require.Equal(t, 2, updated.Version)
		require.Equal(t, "wide", updated.Layout)
		require.Len(t, updated.Content, 1, "update replaces the whole document")

		got, err := store.Pages().Get(ctx, "acme", "pricing")
		require.NoError(t, err)
		require.Equal(t, "New title", got.Meta.Title)
	})

	t.Run("PageVersionMonotonic", func(t *testing.T) {
		store := factory(t)
		page, err := store.Pages().Create(ctx, "acme", makePage("acme", "acme-pricing", "pricing"))
		require.NoError(t, err)

		prev := page.Version
		for i := 0; i < 3; i++ {
			next, err := store.Pages().Update(ctx, "acme", "pricing", makePage("acme", "x", "pricing"))
			require.NoError(t, err)
			require.Equal(t, prev+1, next.Version)
			prev = next.Version
		}
	})

	t.Run("PageUpdateSlugMismatch", func(t *testing.T) {
		store := factory(t)
		_, err := store.Pages().Create(ctx, "acme", makePage("acme", "acme-pricing", "pricing"))
		require.NoError(t, err)

		_, err = store.Pages().Update(ctx, "acme", "pricing", makePage("acme", "x", "other"))
		require.ErrorIs(t, err, repository.ErrInvalidArgument)
	})

	t.Run("PageUpdateMissing", func(t *testing.T) {
		store := factory(t)
		_, err := store.Pages().Update(ctx, "acme", "nope", makePage("acme", "x", "nope"))
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("PageDeleteBySlug", func(t *testing.T) {
		store := factory(t)
		_, err := store.Pages().Create(ctx, "acme", makePage("acme", "acme-pricing", "pricing"))
		require.NoError(t, err)

		require.NoError(t, store.Pages().Delete(ctx, "acme", "PRICING"))
		_, err = store.Pages().Get(ctx, "acme", "pricing")
		require.ErrorIs(t, err, repository.ErrNotFound)

		require.ErrorIs(t, store.Pages().Delete(ctx, "acme", "pricing"), repository.ErrNotFound)
	})

	t.Run("PagesAreTenantScoped", func(t *testing.T) {
		store := factory(t)
		_, err := store.Pages().Create(ctx, "acme", makePage("acme", "acme-pricing", "pricing"))
		require.NoError(t, err)

		_, err = store.Pages().GetPublished(ctx, "globex", "pricing")
		require.ErrorIs(t, err, repository.ErrNotFound)

		pages, err := store.Pages().ListByTenant(ctx, "globex")
		require.NoError(t, err)
		require.NotNil(t, pages)
		require.Empty(t, pages)
	})

	t.Run("SitemapEntries", func(t *testing.T) {
		store := factory(t)
		published := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		a := makePage("acme", "acme-a", "alpha")
		a.PublishedAt = &published
		b := makePage("acme", "acme-b", "beta")
		excluded := makePage("acme", "acme-c", "gamma")
		excluded.IncludeInSitemap = false
		draft := makePage("acme", "acme-d", "delta")
		draft.IsPublished = false

		for _, p := range []*models.Page{b, excluded, a, draft} {
			_, err := store.Pages().Create(ctx, "acme", p)
			require.NoError(t, err)
		}

		entries, err := store.Pages().ListSitemapEntries(ctx, "acme")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.Equal(t, "alpha", entries[0].Slug)
		require.Equal(t, "beta", entries[1].Slug)

		// Publish timestamp wins when present; update timestamp otherwise.
		require.True(t, entries[0].LastModified.Equal(published))
		require.False(t, entries[1].LastModified.IsZero())
	})

	t.Run("TenantCRUD", func(t *testing.T) {
		store := factory(t)

		_, err := store.Tenants().Get(ctx, "acme")
		require.ErrorIs(t, err, repository.ErrNotFound)

		created, err := store.Tenants().Create(ctx, makeTenant("acme"))
		require.NoError(t, err)
		require.False(t, created.CreatedAt.IsZero())

		_, err = store.Tenants().Create(ctx, makeTenant("acme"))
		require.ErrorIs(t, err, repository.ErrConflict)

		created.Plan = "premium"
		updated, err := store.Tenants().Update(ctx, created)
		require.NoError(t, err)
		require.Equal(t, "premium", updated.Plan)
		require.True(t, updated.CreatedAt.Equal(created.CreatedAt), "create time survives updates")

		all, err := store.Tenants().List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)

		require.NoError(t, store.Tenants().Delete(ctx, "acme"))
		require.ErrorIs(t, store.Tenants().Delete(ctx, "acme"), repository.ErrNotFound)
	})

	t.Run("ThemeCRUDAndActive", func(t *testing.T) {
		store := factory(t)

		_, err := store.Themes().GetActive(ctx, "acme")
		require.ErrorIs(t, err, repository.ErrNotFound)

		first := &models.Theme{ID: "theme-1", Name: "First", IsActive: true,
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		second := &models.Theme{ID: "theme-2", Name: "Second", IsActive: true,
			CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}

		_, err = store.Themes().Create(ctx, "acme", first)
		require.NoError(t, err)
		_, err = store.Themes().Create(ctx, "acme", second)
		require.NoError(t, err)

		// Two active themes is a state the application tries to prevent
		// but storage allows; every backend resolves it the same way.
		active, err := store.Themes().GetActive(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, "theme-1", active.ID, "oldest active theme wins")

		themes, err := store.Themes().ListByTenant(ctx, "acme")
		require.NoError(t, err)
		require.Len(t, themes, 2)

		second.IsActive = false
		_, err = store.Themes().Update(ctx, "acme", second)
		require.NoError(t, err)

		_, err = store.Themes().Get(ctx, "globex", "theme-1")
		require.ErrorIs(t, err, repository.ErrNotFound, "themes are tenant-scoped")

		require.NoError(t, store.Themes().Delete(ctx, "acme", "theme-1"))
		require.ErrorIs(t, store.Themes().Delete(ctx, "acme", "theme-1"), repository.ErrNotFound)
	})

	t.Run("UserLookupAndTouch", func(t *testing.T) {
		store := factory(t)

		user := &models.User{
			ID:           "user-1",
			TenantID:     "acme",
			Email:        "Editor@Acme.com",
			DisplayName:  "Acme Editor",
			Role:         models.RoleEditor,
			PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotareal",
			IsActive:     true,
		}
		_, err := store.Users().Create(ctx, user)
		require.NoError(t, err)

		got, err := store.Users().GetByEmail(ctx, "editor@acme.com")
		require.NoError(t, err)
		require.Equal(t, "user-1", got.ID)
		require.NotEmpty(t, got.PasswordHash, "hash must round-trip through storage")
		require.Nil(t, got.LastLoginAt)

		dup := *user
		dup.ID = "user-2"
		_, err = store.Users().Create(ctx, &dup)
		require.ErrorIs(t, err, repository.ErrConflict)

		at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
		require.NoError(t, store.Users().TouchLastLogin(ctx, "user-1", at))

		got, err = store.Users().GetByEmail(ctx, "editor@acme.com")
		require.NoError(t, err)
		require.NotNil(t, got.LastLoginAt)
		require.True(t, got.LastLoginAt.Equal(at))

		require.ErrorIs(t, store.Users().TouchLastLogin(ctx, "ghost", at), repository.ErrNotFound)
	})
}
