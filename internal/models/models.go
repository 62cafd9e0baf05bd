package models

import (
	"strings"
	"time"
)

// TenantStatus is the lifecycle state of a tenant. Only active tenants
// can serve content; inactive and suspended tenants fail API-key
// validation before any lookup happens.
type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantInactive  TenantStatus = "inactive"
	TenantSuspended TenantStatus = "suspended"
)

// Role is a user's role within their tenant. SuperAdmin crosses tenant
// boundaries; everyone else is confined to their own tenant.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleTenantAdmin Role = "tenant_admin"
	RoleEditor      Role = "editor"
	RoleViewer      Role = "viewer"
)

// roleLevels orders roles for minimum-role comparisons. Higher wins.
var roleLevels = map[Role]int{
	RoleViewer:      1,
	RoleEditor:      2,
	RoleTenantAdmin: 3,
	RoleSuperAdmin:  4,
}

// AtLeast reports whether r is equal to or above min in the role
// hierarchy. Unknown roles rank below everything.
func (r Role) AtLeast(min Role) bool {
	return roleLevels[r] >= roleLevels[min]
}

// Tenant is the isolation and billing boundary. Every page, theme, and
// user belongs to exactly one tenant.
//
// ID is immutable after creation and doubles as the storage primary key
// (Mongo _id, Cosmos id + partition key). APIKeyHash is the only
// persisted form of the tenant's API key — the plaintext is returned
// once at creation/rotation time and never stored.
type Tenant struct {
	ID     string       `json:"id" bson:"_id"`
	Name   string       `json:"name" bson:"name"`
	Plan   string       `json:"plan" bson:"plan"`
	Status TenantStatus `json:"status" bson:"status"`

	APIKeyHash      string    `json:"apiKeyHash" bson:"apiKeyHash"`
	APIKeyActive    bool      `json:"apiKeyActive" bson:"apiKeyActive"`
	APIKeyCreatedAt time.Time `json:"apiKeyCreatedAt" bson:"apiKeyCreatedAt"`

	Settings     TenantSettings `json:"settings" bson:"settings"`
	Contact      TenantContact  `json:"contact" bson:"contact"`
	BillingCycle string         `json:"billingCycle" bson:"billingCycle"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TenantSettings is per-tenant configuration. AllowedOrigins drives the
// dynamic CORS policy on the content-serving surface.
type TenantSettings struct {
	Theme          string          `json:"theme" bson:"theme"`
	Locale         string          `json:"locale" bson:"locale"`
	SeatLimit      int             `json:"seatLimit" bson:"seatLimit"`
	Features       map[string]bool `json:"features,omitempty" bson:"features,omitempty"`
	AllowedOrigins []string        `json:"allowedOrigins,omitempty" bson:"allowedOrigins,omitempty"`
}

type TenantContact struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// Page is one content document. The slug is stored lowercase — lookups
// rely on that, so normalization happens at every write.
//
// Version increments on every successful update. Updates are full
// replaces: the stored ID is carried forward and everything else comes
// from the incoming document.
type Page struct {
	// ID is unique per tenant, not globally: storage backends key pages
	// on (tenantId, id), so it maps to its own field rather than any
	// backend-global primary key.
	ID       string `json:"id" bson:"id"`
	TenantID string `json:"tenantId" bson:"tenantId"`
	Slug     string `json:"slug" bson:"slug"`
	Version  int    `json:"version" bson:"version"`
	Layout   string `json:"layout" bson:"layout"`

	Meta    PageMeta `json:"meta" bson:"meta"`
	Content []Block  `json:"content" bson:"content"`

	SearchKeywords []string  `json:"searchKeywords,omitempty" bson:"searchKeywords,omitempty"`
	SEO            SEOFields `json:"seo" bson:"seo"`

	IsPublished      bool       `json:"isPublished" bson:"isPublished"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	IncludeInSitemap bool       `json:"includeInSitemap" bson:"includeInSitemap"`

	// Hub/spoke content relationships. A hub aggregates spokes; a spoke
	// points at its parent hub's slug and carries a priority used to
	// order spokes under the hub.
	IsHub           bool     `json:"isHub" bson:"isHub"`
	ParentHubSlug   string   `json:"parentHubSlug,omitempty" bson:"parentHubSlug,omitempty"`
	TopicCluster    string   `json:"topicCluster,omitempty" bson:"topicCluster,omitempty"`
	RelatedHubSlugs []string `json:"relatedHubSlugs,omitempty" bson:"relatedHubSlugs,omitempty"`
	SpokePriority   int      `json:"spokePriority" bson:"spokePriority"`
}

type PageMeta struct {
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Author      string    `json:"author" bson:"author"`
	Locale      string    `json:"locale" bson:"locale"`
	Market      string    `json:"market,omitempty" bson:"market,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type SEOFields struct {
	MetaTitle       string `json:"metaTitle" bson:"metaTitle"`
	MetaDescription string `json:"metaDescription" bson:"metaDescription"`
	CanonicalURL    string `json:"canonicalUrl,omitempty" bson:"canonicalUrl,omitempty"`
	NoIndex         bool   `json:"noIndex" bson:"noIndex"`
}

// SitemapEntry is one row of the sitemap read-model. LastModified is the
// publish timestamp when present, the update timestamp otherwise.
type SitemapEntry struct {
	Slug         string    `json:"slug"`
	LastModified time.Time `json:"lastModified"`
}

// Theme is a tenant-scoped styling and navigation bundle. At most one
// theme per tenant should be active; that is enforced by the service
// layer when activating, not by a storage constraint.
type Theme struct {
	// ID is unique per tenant, same keying as Page.ID.
	ID       string `json:"id" bson:"id"`
	TenantID string `json:"tenantId" bson:"tenantId"`
	Name     string `json:"name" bson:"name"`
	IsActive bool   `json:"isActive" bson:"isActive"`

	Header HeaderSettings `json:"header" bson:"header"`
	Footer FooterSettings `json:"footer" bson:"footer"`

	// Block type -> style slot -> CSS class override.
	StyleOverrides map[string]map[string]string `json:"styleOverrides,omitempty" bson:"styleOverrides,omitempty"`

	Navigation []NavItem `json:"navigation,omitempty" bson:"navigation,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type HeaderSettings struct {
	LogoURL    string            `json:"logoUrl" bson:"logoUrl"`
	Sticky     bool              `json:"sticky" bson:"sticky"`
	CTALabel   string            `json:"ctaLabel,omitempty" bson:"ctaLabel,omitempty"`
	CTAURL     string            `json:"ctaUrl,omitempty" bson:"ctaUrl,omitempty"`
	StyleSlots map[string]string `json:"styleSlots,omitempty" bson:"styleSlots,omitempty"`
}

type FooterSettings struct {
	Copyright   string            `json:"copyright" bson:"copyright"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	StyleSlots  map[string]string `json:"styleSlots,omitempty" bson:"styleSlots,omitempty"`
}

// NavItem is one entry in a theme's navigation tree. Nesting is one
// level deep in practice; renderers ignore anything deeper.
type NavItem struct {
	Label    string    `json:"label" bson:"label"`
	URL      string    `json:"url" bson:"url"`
	Target   string    `json:"target,omitempty" bson:"target,omitempty"`
	Icon     string    `json:"icon,omitempty" bson:"icon,omitempty"`
	Order    int       `json:"order" bson:"order"`
	Visible  bool      `json:"visible" bson:"visible"`
	Children []NavItem `json:"children,omitempty" bson:"children,omitempty"`
}

// User is an admin account bound to exactly one tenant.
type User struct {
	ID           string     `json:"id" bson:"_id"`
	TenantID     string     `json:"tenantId" bson:"tenantId"`
	Email        string     `json:"email" bson:"email"`
	DisplayName  string     `json:"displayName" bson:"displayName"`
	Role         Role       `json:"role" bson:"role"`
	PasswordHash string     `json:"-" bson:"passwordHash"`
	IsActive     bool       `json:"isActive" bson:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
	Permissions  []string   `json:"permissions,omitempty" bson:"permissions,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
}

// NormalizeSlug lowercases and trims a URL slug. Stored slugs are always
// in this form, so the function must be idempotent:
// NormalizeSlug(NormalizeSlug(s)) == NormalizeSlug(s).
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
