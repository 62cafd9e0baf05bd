package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lalith-99/pressgate/internal/apperr"
	"github.com/lalith-99/pressgate/internal/models"
)

const (
	// apiKeyBytes is the entropy of a tenant API key. 32 random bytes
	// base64-encode to a 44-character string.
	apiKeyBytes = 32

	// apiKeyHashCost is the bcrypt cost for key hashes. Keys are checked
	// on every content-serving request, so this is a deliberate
	// throughput/brute-force tradeoff.
	apiKeyHashCost = 12
)

// MintAPIKey generates a fresh tenant API key. It returns the plaintext
// and its bcrypt hash; only the hash may be persisted. The plaintext is
// shown to the caller exactly once and cannot be recovered afterwards.
func MintAPIKey() (plaintext, hash string, err error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate key material: %w", err)
	}
	plaintext = base64.StdEncoding.EncodeToString(buf)

	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), apiKeyHashCost)
	if err != nil {
		return "", "", fmt.Errorf("hash key: %w", err)
	}
	return plaintext, string(h), nil
}

// VerifyAPIKey checks a presented key against a stored hash. The bcrypt
// comparison is constant-time per attempt.
func VerifyAPIKey(hash, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(presented)) == nil
}

// TenantGetter is the slice of the document store the validator needs.
type TenantGetter interface {
	Get(ctx context.Context, tenantID string) (*models.Tenant, error)
}

// ValidateAPIKey is the content-serving credential check. It fails
// closed: an unknown tenant, a non-active tenant, a deactivated key, or
// a hash mismatch all yield the same unauthenticated error with no
// further processing.
func ValidateAPIKey(ctx context.Context, tenants TenantGetter, tenantID, presented string) (*Identity, error) {
	deny := apperr.New(apperr.Unauthenticated, "invalid api key")

	if presented == "" {
		return nil, deny
	}
	tenant, err := tenants.Get(ctx, tenantID)
	if err != nil {
		// A missing tenant is a credential failure, not a 404 — the
		// caller has not authenticated, so it learns nothing about
		// which tenants exist.
		return nil, deny
	}
	if tenant.Status != models.TenantActive || !tenant.APIKeyActive {
		return nil, deny
	}
	if !VerifyAPIKey(tenant.APIKeyHash, presented) {
		return nil, deny
	}
	return APIKeyIdentity(tenant.ID), nil
}
