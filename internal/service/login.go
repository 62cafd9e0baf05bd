package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lalith-99/pressgate/internal/apperr"
	"github.com/lalith-99/pressgate/internal/auth"
	"github.com/lalith-99/pressgate/internal/models"
)

// LoginResult is the session token plus an identity summary for the
// dashboard. It never carries the password hash.
type LoginResult struct {
	Token       string      `json:"token"`
	UserID      string      `json:"userId"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	Role        models.Role `json:"role"`
	TenantID    string      `json:"tenantId"`
}

// Login exchanges email+password for a signed session token. Unknown
// email, inactive account, and wrong password all produce the same
// unauthenticated error — the response must not reveal which emails are
// registered.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	deny := apperr.New(apperr.Unauthenticated, "invalid email or password")

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, deny
	}
	if !user.IsActive {
		return nil, deny
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, deny
	}

	// Best effort: a failed touch should not block a valid login.
	if err := s.store.Users().TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn("failed to record last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	token, err := auth.GenerateToken(user, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "issue session token", err)
	}

	return &LoginResult{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		TenantID:    user.TenantID,
	}, nil
}

// CreateUser provisions an admin account inside a tenant. Tenant admins
// can add users to their own tenant; SuperAdmin can add anywhere.
func (s *Service) CreateUser(ctx context.Context, identity *auth.Identity, user *models.User, password string) (*models.User, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, user.TenantID, auth.CapUpdateTenant); err != nil {
		return nil, err
	}

	if user.Email == "" || password == "" {
		return nil, apperr.New(apperr.InvalidArgument, "email and password are required")
	}
	if !user.Role.AtLeast(models.RoleViewer) {
		return nil, apperr.Newf(apperr.InvalidArgument, "unknown role %q", user.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "hash password", err)
	}

	created := *user
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.PasswordHash = string(hash)
	created.IsActive = true

	out, err := s.store.Users().Create(ctx, &created)
	if err != nil {
		return nil, translate(err, "user")
	}
	return out, nil
}
