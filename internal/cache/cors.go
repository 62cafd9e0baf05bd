// Package cache holds the per-tenant CORS policy cache. The content
// surface resolves its allow-list from the tenant record on every
// request; this cache keeps that from being a database round trip per
// request.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/repository"
)

// PolicyTTL bounds how stale a cached allow-list can get. Changing a
// tenant's origins takes effect within this window at worst; updates
// through this process invalidate immediately.
const PolicyTTL = 30 * time.Minute

type CORSPolicy struct {
	rdb     *redis.Client
	tenants repository.TenantRepository
	logger  *zap.Logger
}

func NewCORSPolicy(rdb *redis.Client, tenants repository.TenantRepository, logger *zap.Logger) *CORSPolicy {
	return &CORSPolicy{rdb: rdb, tenants: tenants, logger: logger}
}

func policyKey(tenantID string) string { return "cors:" + tenantID }

// AllowedOrigins resolves a tenant's origin allow-list, serving from
// redis when possible. Cache failures degrade to the tenant lookup —
// a dead redis never breaks content serving.
func (c *CORSPolicy) AllowedOrigins(ctx context.Context, tenantID string) ([]string, error) {
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, policyKey(tenantID)).Result()
		switch {
		case err == nil:
			var origins []string
			if jsonErr := json.Unmarshal([]byte(raw), &origins); jsonErr == nil {
				return origins, nil
			}
			// Unreadable entry: fall through and rewrite it.
		case err != redis.Nil:
			c.logger.Warn("cors cache read failed",
				zap.String("tenant_id", tenantID), zap.Error(err))
		}
	}

	tenant, err := c.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	origins := tenant.Settings.AllowedOrigins

	if c.rdb != nil {
		data, _ := json.Marshal(origins)
		if err := c.rdb.Set(ctx, policyKey(tenantID), data, PolicyTTL).Err(); err != nil {
			c.logger.Warn("cors cache write failed",
				zap.String("tenant_id", tenantID), zap.Error(err))
		}
	}
	return origins, nil
}

// Invalidate drops a tenant's cached policy. Called after tenant
// updates so origin changes do not wait out the TTL.
func (c *CORSPolicy) Invalidate(ctx context.Context, tenantID string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, policyKey(tenantID)).Err(); err != nil {
		c.logger.Warn("cors cache invalidate failed",
			zap.String("tenant_id", tenantID), zap.Error(err))
	}
}
