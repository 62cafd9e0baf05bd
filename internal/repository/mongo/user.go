package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/repository"
)

type userStore struct {
	s *Store
}

func (u *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	filter := bson.M{"email": strings.ToLower(email)}

	var user models.User
	if err := u.s.users().FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapErr(err, "find user by email")
	}
	return &user, nil
}

func (u *userStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	stored := *user
	stored.Email = strings.ToLower(stored.Email)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	// The unique email index turns a duplicate registration into the
	// same ErrConflict a duplicate _id would.
	if _, err := u.s.users().InsertOne(ctx, &stored); err != nil {
		return nil, mapErr(err, "insert user")
	}
	return &stored, nil
}

func (u *userStore) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	update := bson.M{"$set": bson.M{"lastLoginAt": at.UTC()}}
	res, err := u.s.users().UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return mapErr(err, "touch last login")
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
