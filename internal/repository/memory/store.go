// Package memory is the in-process document store. It backs unit tests
// and local development (DB_PROVIDER=memory) and implements the exact
// same contract as the Mongo and Cosmos adapters — it runs the same
// conformance suite, so it is a real third backend, not a mock.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

// Store keeps everything in maps guarded by one mutex. Copy-in/copy-out
// semantics: callers never see the stored instance, matching the
// serialize-over-the-wire behavior of the physical backends.
type Store struct {
	mu sync.RWMutex

	// pages[tenantID][pageID]
	pages map[string]map[string]*models.Page
	// tenants[tenantID]
	tenants map[string]*models.Tenant
	// themes[tenantID][themeID]
	themes map[string]map[string]*models.Theme
	// users[userID]
	users map[string]*models.User
}

func New() *Store {
	return &Store{
		pages:   make(map[string]map[string]*models.Page),
		tenants: make(map[string]*models.Tenant),
		themes:  make(map[string]map[string]*models.Theme),
		users:   make(map[string]*models.User),
	}
}

func (s *Store) Pages() repository.PageRepository     { return &pageStore{s} }
func (s *Store) Tenants() repository.TenantRepository { return &tenantStore{s} }
func (s *Store) Themes() repository.ThemeRepository   { return &themeStore{s} }
func (s *Store) Users() repository.UserRepository     { return &userStore{s} }

func (s *Store) Ping(ctx context.Context) error  { return nil }
func (s *Store) Close(ctx context.Context) error { return nil }

// clone deep-copies a document through its JSON form — the same
// round-trip a physical backend would perform, custom block codecs
// included.
func clone[T any](v *T) *T {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("memory store: clone marshal: %v", err))
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("memory store: clone unmarshal: %v", err))
	}
	return out
}
