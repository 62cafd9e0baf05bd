package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

type tenantStore struct {
	s *Store
}

func (t *tenantStore) Get(ctx context.Context, tenantID string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := t.s.tenants().FindOne(ctx, bson.M{"_id": tenantID}).Decode(&tenant); err != nil {
		return nil, mapErr(err, "find tenant")
	}
	return &tenant, nil
}

func (t *tenantStore) List(ctx context.Context) ([]models.Tenant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := t.s.tenants().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapErr(err, "list tenants")
	}

	tenants := make([]models.Tenant, 0)
	if err := cur.All(ctx, &tenants); err != nil {
		return nil, mapErr(err, "decode tenants")
	}
	return tenants, nil
}

func (t *tenantStore) Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	stored := *tenant
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	if _, err := t.s.tenants().InsertOne(ctx, &stored); err != nil {
		return nil, mapErr(err, "insert tenant")
	}
	return &stored, nil
}

func (t *tenantStore) Update(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	stored, err := t.Get(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	next := *tenant
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	if _, err := t.s.tenants().ReplaceOne(ctx, bson.M{"_id": next.ID}, &next); err != nil {
		return nil, mapErr(err, "replace tenant")
	}
	return &next, nil
}

func (t *tenantStore) Delete(ctx context.Context, tenantID string) error {
	res, err := t.s.tenants().DeleteOne(ctx, bson.M{"_id": tenantID})
	if err != nil {
		return mapErr(err, "delete tenant")
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
