package cosmos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

type userStore struct {
	s *Store
}

// userDoc is the storage form of a user. models.User hides PasswordHash
// from JSON (`json:"-"`) so API responses can never leak it; the Cosmos
// wire format IS JSON, so storage needs its own shape that includes it.
type userDoc struct {
	ID           string      `json:"id"`
	TenantID     string      `json:"tenantId"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"displayName"`
	Role         models.Role `json:"role"`
	PasswordHash string      `json:"passwordHash"`
	IsActive     bool        `json:"isActive"`
	LastLoginAt  *time.Time  `json:"lastLoginAt,omitempty"`
	Permissions  []string    `json:"permissions,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func toUserDoc(u *models.User) *userDoc {
	return &userDoc{
		ID:           u.ID,
		TenantID:     u.TenantID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		LastLoginAt:  u.LastLoginAt,
		Permissions:  u.Permissions,
		CreatedAt:    u.CreatedAt,
	}
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:           d.ID,
		TenantID:     d.TenantID,
		Email:        d.Email,
		DisplayName:  d.DisplayName,
		Role:         d.Role,
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		LastLoginAt:  d.LastLoginAt,
		Permissions:  d.Permissions,
		CreatedAt:    d.CreatedAt,
	}
}

func (u *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	// Login starts from an email with no tenant in hand, so this is the
	// one cross-partition query on the users container.
	pager := u.s.users.NewQueryItemsPager(
		"SELECT * FROM c WHERE c.email = @email", crossPartition,
		&azcosmos.QueryOptions{QueryParameters: []azcosmos.QueryParameter{
			{Name: "@email", Value: strings.ToLower(email)},
		}})

	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapErr(err, "query user by email")
		}
		for _, raw := range resp.Items {
			var doc userDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("decode user: %w", err)
			}
			return doc.toModel(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *userStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	stored := *user
	stored.Email = strings.ToLower(stored.Email)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	// Cosmos has no cross-partition unique index, so duplicate emails
	// are pre-checked. An id collision within the tenant partition still
	// surfaces as a 409 from CreateItem.
	if _, err := u.GetByEmail(ctx, stored.Email); err == nil {
		return nil, repository.ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	data, err := json.Marshal(toUserDoc(&stored))
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}

	pk := azcosmos.NewPartitionKeyString(stored.TenantID)
	if _, err := u.s.users.CreateItem(ctx, pk, data, nil); err != nil {
		return nil, mapErr(err, "create user")
	}
	return &stored, nil
}

func (u *userStore) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	// No partition key in hand for a bare user id; resolve the document
	// first, then replace it with the timestamp set.
	pager := u.s.users.NewQueryItemsPager(
		"SELECT * FROM c WHERE c.id = @id", crossPartition,
		&azcosmos.QueryOptions{QueryParameters: []azcosmos.QueryParameter{
			{Name: "@id", Value: userID},
		}})

	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return mapErr(err, "query user")
		}
		for _, raw := range resp.Items {
			var doc userDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("decode user: %w", err)
			}
			t := at.UTC()
			doc.LastLoginAt = &t

			data, err := json.Marshal(&doc)
			if err != nil {
				return fmt.Errorf("encode user: %w", err)
			}
			pk := azcosmos.NewPartitionKeyString(doc.TenantID)
			if _, err := u.s.users.ReplaceItem(ctx, pk, doc.ID, data, nil); err != nil {
				return mapErr(err, "replace user")
			}
			return nil
		}
	}
	return repository.ErrNotFound
}
