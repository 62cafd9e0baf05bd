package memory

import (
	"context"
	"strings"
	"time"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

type userStore struct {
	s *Store
}

// cloneUser copies by value instead of going through clone(): the JSON
// round-trip would strip PasswordHash (tagged json:"-"), and login needs
// it back out of the store.
func cloneUser(u *models.User) *models.User {
	out := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		out.LastLoginAt = &t
	}
	if u.Permissions != nil {
		out.Permissions = append([]string(nil), u.Permissions...)
	}
	return &out
}

func (u *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(email)

	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if strings.ToLower(user.Email) == email {
			return cloneUser(user), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *userStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	stored := cloneUser(user)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, exists := u.s.users[stored.ID]; exists {
		return nil, repository.ErrConflict
	}
	for _, existing := range u.s.users {
		if strings.EqualFold(existing.Email, stored.Email) {
			return nil, repository.ErrConflict
		}
	}
	u.s.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (u *userStore) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	t := at.UTC()
	user.LastLoginAt = &t
	return nil
}
