package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

type themeStore struct {
	s *Store
}

func (t *themeStore) Get(ctx context.Context, tenantID, themeID string) (*models.Theme, error) {
	filter := bson.M{"id": themeID, "tenantId": tenantID}

	var theme models.Theme
	if err := t.s.themes().FindOne(ctx, filter).Decode(&theme); err != nil {
		return nil, mapErr(err, "find theme")
	}
	return &theme, nil
}

func (t *themeStore) ListByTenant(ctx context.Context, tenantID string) ([]models.Theme, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := t.s.themes().Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, mapErr(err, "list themes")
	}

	themes := make([]models.Theme, 0)
	if err := cur.All(ctx, &themes); err != nil {
		return nil, mapErr(err, "decode themes")
	}
	return themes, nil
}

func (t *themeStore) GetActive(ctx context.Context, tenantID string) (*models.Theme, error) {
	filter := bson.M{"tenantId": tenantID, "isActive": true}
	// Oldest first: when application-level enforcement has let two
	// themes go active, every backend resolves to the same winner.
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	var theme models.Theme
	if err := t.s.themes().FindOne(ctx, filter, opts).Decode(&theme); err != nil {
		return nil, mapErr(err, "find active theme")
	}
	return &theme, nil
}

func (t *themeStore) Create(ctx context.Context, tenantID string, theme *models.Theme) (*models.Theme, error) {
	stored := *theme
	stored.TenantID = tenantID
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	if _, err := t.s.themes().InsertOne(ctx, &stored); err != nil {
		return nil, mapErr(err, "insert theme")
	}
	return &stored, nil
}

func (t *themeStore) Update(ctx context.Context, tenantID string, theme *models.Theme) (*models.Theme, error) {
	stored, err := t.Get(ctx, tenantID, theme.ID)
	if err != nil {
		return nil, err
	}

	next := *theme
	next.TenantID = tenantID
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	filter := bson.M{"id": next.ID, "tenantId": tenantID}
	if _, err := t.s.themes().ReplaceOne(ctx, filter, &next); err != nil {
		return nil, mapErr(err, "replace theme")
	}
	return &next, nil
}

func (t *themeStore) Delete(ctx context.Context, tenantID, themeID string) error {
	res, err := t.s.themes().DeleteOne(ctx, bson.M{"id": themeID, "tenantId": tenantID})
	if err != nil {
		return mapErr(err, "delete theme")
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
