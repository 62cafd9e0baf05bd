package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/lalith-99/pressgate/internal/apperr"
	"github.com/lalith-99/pressgate/internal/auth"
	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	store := memory.New()
	svc := New(store, "test-secret", time.Hour, zaptest.NewLogger(t))
	return svc, store
}

func identityFor(role models.Role, tenantID string) *auth.Identity {
	return &auth.Identity{
		UserID:   "u-" + string(role),
		Email:    string(role) + "@" + tenantID + ".test",
		Role:     role,
		TenantID: tenantID,
	}
}

var superAdmin = identityFor(models.RoleSuperAdmin, "platform")

// seedTenant provisions a tenant through the service and returns its
// plaintext API key.
func seedTenant(t *testing.T, svc *Service, id string) string {
	t.Helper()
	out, err := svc.CreateTenant(context.Background(), superAdmin, &models.Tenant{
		ID:   id,
		Name: "Tenant " + id,
		Plan: "standard",
		Settings: models.TenantSettings{
			AllowedOrigins: []string{"https://" + id + ".example.com"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.APIKey, 44)
	return out.APIKey
}

func seedUser(t *testing.T, store *memory.Store, email, password string, role models.Role, tenantID string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := store.Users().Create(context.Background(), &models.User{
		ID:           "u-" + email,
		TenantID:     tenantID,
		Email:        email,
		DisplayName:  "Test " + email,
		Role:         role,
		PasswordHash: string(hash),
		IsActive:     active,
	})
	require.NoError(t, err)
	return user
}

func TestLoginFlow(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedUser(t, store, "admin@acme.test", "hunter22", models.RoleTenantAdmin, "acme", true)
	seedUser(t, store, "gone@acme.test", "hunter22", models.RoleEditor, "acme", false)

	result, err := svc.Login(ctx, "admin@acme.test", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "acme", result.TenantID)
	require.Equal(t, models.RoleTenantAdmin, result.Role)

	claims, err := auth.ParseToken(result.Token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "acme", claims.TenantID)
	require.Equal(t, models.RoleTenantAdmin, claims.Role)

	// Unknown email, wrong password, and a deactivated account are
	// indistinguishable from the outside.
	for _, attempt := range [][2]string{
		{"nobody@acme.test", "hunter22"},
		{"admin@acme.test", "wrong"},
		{"gone@acme.test", "hunter22"},
	} {
		_, err := svc.Login(ctx, attempt[0], attempt[1])
		require.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
		require.Equal(t, "invalid email or password", apperr.Message(err))
	}
}

func TestLoginRecordsLastLogin(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedUser(t, store, "admin@acme.test", "hunter22", models.RoleTenantAdmin, "acme", true)

	_, err := svc.Login(ctx, "admin@acme.test", "hunter22")
	require.NoError(t, err)

	user, err := store.Users().GetByEmail(ctx, "admin@acme.test")
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)
}

func TestPublishedContentFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	key := seedTenant(t, svc, "acme")
	editor := identityFor(models.RoleEditor, "acme")

	_, err := svc.SavePage(ctx, editor, "acme", &models.Page{
		TenantID:    "acme",
		Slug:        "Pricing",
		Layout:      "default",
		Meta:        models.PageMeta{Title: "Pricing"},
		IsPublished: true,
		Content: []models.Block{
			{Type: "hero", Content: &models.HeroContent{Heading: "Plans"}},
		},
	})
	require.NoError(t, err)

	// The slug was normalized on write; lookups in any case resolve it.
	page, err := svc.GetPublishedPage(ctx, key, "acme", "PRICING")
	require.NoError(t, err)
	require.Equal(t, "pricing", page.Slug)
	require.NotNil(t, page.PublishedAt)

	_, err = svc.GetPublishedPage(ctx, "bad-key", "acme", "pricing")
	require.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	_, err = svc.GetPublishedPage(ctx, key, "acme", "missing")
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestAPIKeyIsTenantScoped(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	seedTenant(t, svc, "acme")
	globexKey := seedTenant(t, svc, "globex")

	editor := identityFor(models.RoleEditor, "acme")
	_, err := svc.SavePage(ctx, editor, "acme", &models.Page{
		Slug: "pricing", Meta: models.PageMeta{Title: "Pricing"}, IsPublished: true,
	})
	require.NoError(t, err)

	// A valid key for one tenant never opens another tenant's content.
	_, err = svc.GetPublishedPage(ctx, globexKey, "acme", "pricing")
	require.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestDraftsHiddenFromContentSurface(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	key := seedTenant(t, svc, "acme")
	editor := identityFor(models.RoleEditor, "acme")

	_, err := svc.SavePage(ctx, editor, "acme", &models.Page{
		Slug: "draft-post", Meta: models.PageMeta{Title: "Draft"}, IsPublished: false,
	})
	require.NoError(t, err)

	_, err = svc.GetPublishedPage(ctx, key, "acme", "draft-post")
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// The admin read sees the draft.
	page, err := svc.GetPage(ctx, editor, "acme", "draft-post")
	require.NoError(t, err)
	require.False(t, page.IsPublished)
	require.Nil(t, page.PublishedAt)
}

func TestKeyRotation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	oldKey := seedTenant(t, svc, "acme")
	admin := identityFor(models.RoleTenantAdmin, "acme")
	editor := identityFor(models.RoleEditor, "acme")

	_, err := svc.SavePage(ctx, editor, "acme", &models.Page{
		Slug: "home", Meta: models.PageMeta{Title: "Home"}, IsPublished: true,
	})
	require.NoError(t, err)

	_, err = svc.GetPublishedPage(ctx, oldKey, "acme", "home")
	require.NoError(t, err)

	rotated, err := svc.RegenerateAPIKey(ctx, admin, "acme")
	require.NoError(t, err)
	require.Len(t, rotated.APIKey, 44)
	require.NotEqual(t, oldKey, rotated.APIKey)

	// The old key dies the moment the new hash lands.
	_, err = svc.GetPublishedPage(ctx, oldKey, "acme", "home")
	require.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	_, err = svc.GetPublishedPage(ctx, rotated.APIKey, "acme", "home")
	require.NoError(t, err)
}

func TestKeyPlaintextNeverReadable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	key := seedTenant(t, svc, "acme")

	tenant, err := svc.GetTenant(ctx, superAdmin, "acme")
	require.NoError(t, err)
	require.Empty(t, tenant.APIKeyHash)

	tenants, err := svc.ListTenants(ctx, superAdmin)
	require.NoError(t, err)
	for _, tn := range tenants {
		require.Empty(t, tn.APIKeyHash)
	}

	// Nothing a read path serializes contains the plaintext.
	data, err := json.Marshal(tenant)
	require.NoError(t, err)
	require.NotContains(t, string(data), key)
}

func TestUpdateTenantKeepsKeyMaterial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	key := seedTenant(t, svc, "acme")

	_, err := svc.UpdateTenant(ctx, superAdmin, &models.Tenant{
		ID:     "acme",
		Name:   "Acme Renamed",
		Plan:   "enterprise",
		Status: models.TenantActive,
		// A hostile update cannot smuggle in new key material.
		APIKeyHash:   "attacker-controlled",
		APIKeyActive: false,
	})
	require.NoError(t, err)

	editor := identityFor(models.RoleEditor, "acme")
	_, err = svc.SavePage(ctx, editor, "acme", &models.Page{
		Slug: "home", Meta: models.PageMeta{Title: "Home"}, IsPublished: true,
	})
	require.NoError(t, err)

	// The original key still authenticates after the update.
	_, err = svc.GetPublishedPage(ctx, key, "acme", "home")
	require.NoError(t, err)
}

func TestPageVersionMonotonicAcrossUpdates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	seedTenant(t, svc, "acme")
	editor := identityFor(models.RoleEditor, "acme")

	created, err := svc.SavePage(ctx, editor, "acme", &models.Page{
		Slug: "pricing", Meta: models.PageMeta{Title: "v1"}, IsPublished: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, created.Version)

	prev := created
	for i := 2; i <= 4; i++ {
		next, err := svc.UpdatePage(ctx, editor, "acme", "pricing", &models.Page{
			Slug: "pricing", Meta: models.PageMeta{Title: "revision"}, IsPublished: true,
		})
		require.NoError(t, err)
		require.Equal(t, prev.Version+1, next.Version)
		require.Equal(t, created.ID, next.ID, "identifier survives updates")
		prev = next
	}
}

func TestUpdatePageSlugMismatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	seedTenant(t, svc, "acme")
	editor := identityFor(models.RoleEditor, "acme")

	_, err := svc.SavePage(ctx, editor, "acme", &models.Page{
		Slug: "pricing", Meta: models.PageMeta{Title: "Pricing"},
	})
	require.NoError(t, err)

	_, err = svc.UpdatePage(ctx, editor, "acme", "pricing", &models.Page{
		Slug: "plans", Meta: models.PageMeta{Title: "Plans"},
	})
	require.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestUnpublishClearsPublishTimestamp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	seedTenant(t, svc, "acme")
	editor := identityFor(models.RoleEditor, "acme")

	created, err := svc.SavePage(ctx, editor, "acme", &models.Page{
		Slug: "news", Meta: models.PageMeta{Title: "News"}, IsPublished: true,
	})
	require.NoError(t, err)
	require.NotNil(t, created.PublishedAt)

	pulled, err := svc.UpdatePage(ctx, editor, "acme", "news", &models.Page{
		Slug: "news", Meta: models.PageMeta{Title: "News"}, IsPublished: false,
	})
	require.NoError(t, err)
	require.Nil(t, pulled.PublishedAt)
}

func TestSitemapListsPublishedIncludedPages(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	seedTenant(t, svc, "acme")
	editor := identityFor(models.RoleEditor, "acme")

	for _, p := range []models.Page{
		{Slug: "zebra", Meta: models.PageMeta{Title: "Z"}, IsPublished: true, IncludeInSitemap: true},
		{Slug: "alpha", Meta: models.PageMeta{Title: "A"}, IsPublished: true, IncludeInSitemap: true},
		{Slug: "draft", Meta: models.PageMeta{Title: "D"}, IsPublished: false, IncludeInSitemap: true},
		{Slug: "hidden", Meta: models.PageMeta{Title: "H"}, IsPublished: true, IncludeInSitemap: false},
	} {
		page := p
		_, err := svc.SavePage(ctx, editor, "acme", &page)
		require.NoError(t, err)
	}

	entries, err := svc.ListSitemapEntries(ctx, editor, "acme")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "alpha", entries[0].Slug)
	require.Equal(t, "zebra", entries[1].Slug)
	for _, e := range entries {
		require.False(t, e.LastModified.IsZero())
	}
}

func TestSingleActiveTheme(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	key := seedTenant(t, svc, "acme")
	admin := identityFor(models.RoleTenantAdmin, "acme")

	first, err := svc.CreateTheme(ctx, admin, "acme", &models.Theme{Name: "Classic", IsActive: true})
	require.NoError(t, err)

	second, err := svc.CreateTheme(ctx, admin, "acme", &models.Theme{Name: "Modern", IsActive: true})
	require.NoError(t, err)

	// Activating the second theme retired the first.
	stored, err := svc.GetThemeAdmin(ctx, admin, "acme", first.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)

	active, err := svc.GetActiveTheme(ctx, key, "acme")
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)
}

func TestServiceAuthorizationTotality(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	seedTenant(t, svc, "acme")

	viewer := identityFor(models.RoleViewer, "acme")
	outsider := identityFor(models.RoleTenantAdmin, "globex")

	// A viewer cannot write.
	_, err := svc.SavePage(ctx, viewer, "acme", &models.Page{Slug: "x", Meta: models.PageMeta{Title: "X"}})
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// A tenant admin cannot reach across tenants, even for reads.
	_, err = svc.ListPages(ctx, outsider, "acme")
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// No identity at all is unauthenticated, not forbidden.
	_, err = svc.ListPages(ctx, nil, "acme")
	require.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	_, err = svc.GetHierarchy(ctx, nil, "acme")
	require.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	err = svc.DeletePage(ctx, nil, "acme", "x")
	require.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestTenantSelfDeleteForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	seedTenant(t, svc, "acme")
	seedTenant(t, svc, "platform")

	// The super admin's own tenant claim is "platform".
	err := svc.DeleteTenant(ctx, superAdmin, "platform")
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	require.NoError(t, svc.DeleteTenant(ctx, superAdmin, "acme"))
}

func TestCreateUserHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	admin := identityFor(models.RoleTenantAdmin, "acme")

	created, err := svc.CreateUser(ctx, admin, &models.User{
		TenantID: "acme",
		Email:    "new@acme.test",
		Role:     models.RoleEditor,
	}, "s3cret-pw")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.True(t, created.IsActive)

	stored, err := store.Users().GetByEmail(ctx, "new@acme.test")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pw", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pw")))

	// And the new account can log in.
	_, err = svc.Login(ctx, "new@acme.test", "s3cret-pw")
	require.NoError(t, err)
}

func TestCreateUserCrossTenantForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	admin := identityFor(models.RoleTenantAdmin, "acme")

	_, err := svc.CreateUser(ctx, admin, &models.User{
		TenantID: "globex",
		Email:    "mole@globex.test",
		Role:     models.RoleEditor,
	}, "pw")
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}
