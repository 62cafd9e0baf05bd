// Package mongo is the MongoDB implementation of the document store.
// Collections are partitioned by the tenantId field. Pages and themes
// keep their logical identifier in an id field under a unique
// (tenantId, id) index, so the same id may exist under two different
// tenants; that compound index plus the email index on users give the
// duplicate-key signals the port contract turns into ErrConflict.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/repository"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// New connects to MongoDB and prepares the database handle.
//
// Pool bounds mirror what the rest of the stack assumes: the pool is the
// only resource limiter in the system, shared across all tenants.
func New(ctx context.Context, uri, database string, logger *zap.Logger) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	// Verify the connection actually works before handing the store out;
	// close immediately on failure so we never leak a half-open client.
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("mongo connection established",
		zap.String("database", database),
	)
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	pageIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "slug", Value: 1}}},
	}
	if _, err := s.pages().Indexes().CreateMany(ctx, pageIdx); err != nil {
		return fmt.Errorf("create page indexes: %w", err)
	}

	userIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.users().Indexes().CreateMany(ctx, userIdx); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	themeIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.themes().Indexes().CreateMany(ctx, themeIdx); err != nil {
		return fmt.Errorf("create theme indexes: %w", err)
	}
	return nil
}

func (s *Store) pages() *mongo.Collection   { return s.db.Collection("pages") }
func (s *Store) tenants() *mongo.Collection { return s.db.Collection("tenants") }
func (s *Store) themes() *mongo.Collection  { return s.db.Collection("themes") }
func (s *Store) users() *mongo.Collection   { return s.db.Collection("users") }

func (s *Store) Pages() repository.PageRepository     { return &pageStore{s} }
func (s *Store) Tenants() repository.TenantRepository { return &tenantStore{s} }
func (s *Store) Themes() repository.ThemeRepository   { return &themeStore{s} }
func (s *Store) Users() repository.UserRepository     { return &userStore{s} }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	s.logger.Info("closing mongo client")
	return s.client.Disconnect(ctx)
}

// mapErr translates driver errors into the port's sentinels. This is the
// only place Mongo error types are inspected.
func mapErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
