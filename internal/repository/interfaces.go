package repository

import (
	"context"
	"time"

	"github.com/lalith-99/pressgate/internal/models"
)

// Every method takes a context (all of this is network I/O) and a tenant
// ID. Tenant scoping is not optional: even a caller holding a valid
// document ID cannot reach it through another tenant's scope. Handlers
// never talk to these interfaces directly — the content access service
// runs credential and authorization checks first.
//
// Error contract, identical across backends:
//   - a missing document is ErrNotFound
//   - a duplicate identifier on create is ErrConflict
//   - a slug mismatch on update is ErrInvalidArgument
//   - anything else is a wrapped driver error (treated as unexpected)

// PageRepository persists content pages.
type PageRepository interface {
	// GetPublished returns the published page for a slug. The slug is
	// normalized (lowercased) before lookup; unpublished pages are
	// invisible through this method.
	GetPublished(ctx context.Context, tenantID, slug string) (*models.Page, error)

	// Get returns a page regardless of publish state (admin reads).
	Get(ctx context.Context, tenantID, slug string) (*models.Page, error)

	// ListByTenant returns all of a tenant's pages, any publish state.
	// Returns an empty slice, not nil, when the tenant has no pages.
	ListByTenant(ctx context.Context, tenantID string) ([]models.Page, error)

	// Create inserts a new page. ErrConflict if the identifier is taken.
	Create(ctx context.Context, tenantID string, page *models.Page) (*models.Page, error)

	// Update replaces the whole document: resolve (tenant, slug), verify
	// the body slug matches the path slug, carry the stored identifier
	// forward, bump the version, touch the update timestamp, write.
	Update(ctx context.Context, tenantID, slug string, page *models.Page) (*models.Page, error)

	// Delete resolves slug to identifier, then deletes by identifier.
	Delete(ctx context.Context, tenantID, slug string) error

	// ListSitemapEntries returns (slug, lastModified) for published,
	// sitemap-included pages ordered by slug. LastModified is the
	// publish timestamp when set, the update timestamp otherwise.
	ListSitemapEntries(ctx context.Context, tenantID string) ([]models.SitemapEntry, error)
}

// TenantRepository persists tenant records.
type TenantRepository interface {
	Get(ctx context.Context, tenantID string) (*models.Tenant, error)
	List(ctx context.Context) ([]models.Tenant, error)
	Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error)
	Delete(ctx context.Context, tenantID string) error
}

// ThemeRepository persists themes, scoped to a tenant.
type ThemeRepository interface {
	Get(ctx context.Context, tenantID, themeID string) (*models.Theme, error)
	ListByTenant(ctx context.Context, tenantID string) ([]models.Theme, error)

	// GetActive returns the tenant's active theme. When application-level
	// enforcement has slipped and more than one theme is flagged active,
	// the first by creation time wins.
	GetActive(ctx context.Context, tenantID string) (*models.Theme, error)

	Create(ctx context.Context, tenantID string, theme *models.Theme) (*models.Theme, error)
	Update(ctx context.Context, tenantID string, theme *models.Theme) (*models.Theme, error)
	Delete(ctx context.Context, tenantID, themeID string) error
}

// UserRepository persists admin accounts.
type UserRepository interface {
	// GetByEmail is a global lookup (login starts with an email, not a
	// tenant).
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	Create(ctx context.Context, user *models.User) (*models.User, error)

	// TouchLastLogin records a successful login time.
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

// Store bundles the repositories behind a single seam so the backend is
// swappable as a unit. Two physical implementations exist (Mongo, Cosmos
// DB) plus an in-memory one for tests and local development; all three
// run the same conformance suite.
type Store interface {
	Pages() PageRepository
	Tenants() TenantRepository
	Themes() ThemeRepository
	Users() UserRepository

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
