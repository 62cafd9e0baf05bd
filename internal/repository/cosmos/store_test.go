package cosmos_test

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"go.uber.org/zap/zaptest"

	"github.com/lalith-99/pressgate/internal/repository"
	"github.com/lalith-99/pressgate/internal/repository/cosmos"
	"github.com/lalith-99/pressgate/internal/repository/storetest"
)

// TestCosmosStoreConformance runs the shared suite against a Cosmos
// account (typically the emulator). Gated on COSMOS_ENDPOINT and
// COSMOS_KEY; each subtest gets a throwaway database with the four
// containers provisioned.
func TestCosmosStoreConformance(t *testing.T) {
	endpoint := os.Getenv("COSMOS_ENDPOINT")
	key := os.Getenv("COSMOS_KEY")
	if endpoint == "" || key == "" {
		t.Skip("COSMOS_ENDPOINT / COSMOS_KEY not set")
	}

	ctx := context.Background()
	cred, err := azcosmos.NewKeyCredential(key)
	if err != nil {
		t.Fatalf("credential: %v", err)
	}
	client, err := azcosmos.NewClientWithKey(endpoint, cred, nil)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	var dbSeq atomic.Int64
	storetest.Run(t, func(t *testing.T) repository.Store {
		database := fmt.Sprintf("pressgate_test_%d", dbSeq.Add(1))
		if _, err := client.CreateDatabase(ctx, azcosmos.DatabaseProperties{ID: database}, nil); err != nil {
			t.Fatalf("create database: %v", err)
		}
		db, err := client.NewDatabase(database)
		if err != nil {
			t.Fatalf("database client: %v", err)
		}
		t.Cleanup(func() {
			_, _ = db.Delete(ctx, nil)
		})

		for _, c := range []struct {
			name string
			pk   string
		}{
			{"pages", "/tenantId"},
			{"tenants", "/id"},
			{"themes", "/tenantId"},
			{"users", "/tenantId"},
		} {
			props := azcosmos.ContainerProperties{
				ID: c.name,
				PartitionKeyDefinition: azcosmos.PartitionKeyDefinition{
					Paths: []string{c.pk},
				},
			}
			if _, err := db.CreateContainer(ctx, props, nil); err != nil {
				t.Fatalf("create container %q: %v", c.name, err)
			}
		}

		store, err := cosmos.New(ctx, endpoint, key, database, zaptest.NewLogger(t))
		if err != nil {
			t.Fatalf("connect store: %v", err)
		}
		return store
	})
}
