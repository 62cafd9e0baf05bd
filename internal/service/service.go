// Package service is the content access façade. Every method follows
// the same shape, in order: (1) credential check, (2) authorization
// guard with the method's declared capability, (3) document store call,
// (4) translation of storage error kinds into the service taxonomy.
// No method skips a step — "obviously safe" reads included.
package service

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/apperr"
	"github.com/lalith-99/pressgate/internal/auth"
	"github.com/lalith-99/pressgate/internal/repository"
)

type Service struct {
	store      repository.Store
	jwtSecret  string
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(store repository.Store, jwtSecret string, sessionTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		store:      store,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// requireIdentity is the session-scheme credential check. The transport
// middleware already verified the token signature; this is the fail-
// closed backstop for any caller that reaches the service without one.
func requireIdentity(identity *auth.Identity) error {
	if identity == nil || identity.UserID == "" {
		return apperr.New(apperr.Unauthenticated, "not authenticated")
	}
	return nil
}

// translate maps repository sentinels onto the service taxonomy. The
// resource name keeps NotFound messages useful without leaking storage
// detail.
func translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperr.Newf(apperr.NotFound, "%s not found", resource)
	case errors.Is(err, repository.ErrConflict):
		return apperr.Newf(apperr.Conflict, "%s already exists", resource)
	case errors.Is(err, repository.ErrInvalidArgument):
		return apperr.Newf(apperr.InvalidArgument, "invalid %s", resource)
	default:
		return apperr.Wrap(apperr.Unexpected, "storage failure", err)
	}
}
