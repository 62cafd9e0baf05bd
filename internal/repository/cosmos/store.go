// Package cosmos is the Azure Cosmos DB implementation of the document
// store. Pages, themes, and users are partitioned by /tenantId; the
// tenants container is partitioned by /id (the tenant identifier IS the
// partition). The service-level HTTP status codes (404, 409) are the
// conflict/not-found signals the port contract maps onto its sentinels.
package cosmos

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/repository"
)

type Store struct {
	client  *azcosmos.Client
	pages   *azcosmos.ContainerClient
	tenants *azcosmos.ContainerClient
	themes  *azcosmos.ContainerClient
	users   *azcosmos.ContainerClient
	logger  *zap.Logger
}

// New creates the Cosmos client and container handles. Containers are
// expected to exist (provisioned out of band); a read against the
// tenants container verifies connectivity and credentials up front.
func New(ctx context.Context, endpoint, key, database string, logger *zap.Logger) (*Store, error) {
	cred, err := azcosmos.NewKeyCredential(key)
	if err != nil {
		return nil, fmt.Errorf("cosmos credential: %w", err)
	}
	client, err := azcosmos.NewClientWithKey(endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("cosmos client: %w", err)
	}

	s := &Store{client: client, logger: logger}
	for _, c := range []struct {
		name   string
		target **azcosmos.ContainerClient
	}{
		{"pages", &s.pages},
		{"tenants", &s.tenants},
		{"themes", &s.themes},
		{"users", &s.users},
	} {
		container, err := client.NewContainer(database, c.name)
		if err != nil {
			return nil, fmt.Errorf("cosmos container %q: %w", c.name, err)
		}
		*c.target = container
	}

	if err := s.Ping(ctx); err != nil {
		return nil, fmt.Errorf("cosmos ping: %w", err)
	}

	logger.Info("cosmos connection established",
		zap.String("endpoint", endpoint),
		zap.String("database", database),
	)
	return s, nil
}

func (s *Store) Pages() repository.PageRepository     { return &pageStore{s} }
func (s *Store) Tenants() repository.TenantRepository { return &tenantStore{s} }
func (s *Store) Themes() repository.ThemeRepository   { return &themeStore{s} }
func (s *Store) Users() repository.UserRepository     { return &userStore{s} }

func (s *Store) Ping(ctx context.Context) error {
	// Read container properties as a cheap liveness/credential check.
	if _, err := s.tenants.Read(ctx, nil); err != nil {
		return err
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	// The Cosmos client holds no resources needing explicit teardown.
	s.logger.Info("closing cosmos client")
	return nil
}

// crossPartition queries every partition. Used only for global lookups
// (tenant listing, user-by-email); everything else stays partition-local.
var crossPartition = azcosmos.PartitionKey{}

// mapErr translates Cosmos service errors into the port's sentinels.
// This is the only place azcore response errors are inspected.
func mapErr(err error, op string) error {
	if err == nil {
		return nil
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusNotFound:
			return repository.ErrNotFound
		case http.StatusConflict:
			return repository.ErrConflict
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
