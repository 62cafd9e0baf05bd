package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/api"
	"github.com/lalith-99/pressgate/internal/cache"
	"github.com/lalith-99/pressgate/internal/config"
	"github.com/lalith-99/pressgate/internal/observ"
	"github.com/lalith-99/pressgate/internal/repository"
	"github.com/lalith-99/pressgate/internal/repository/cosmos"
	"github.com/lalith-99/pressgate/internal/repository/memory"
	"github.com/lalith-99/pressgate/internal/repository/mongo"
	"github.com/lalith-99/pressgate/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ---------------------------------------------------------------
	// 1. Load config
	// ---------------------------------------------------------------
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// ---------------------------------------------------------------
	// 2. Create logger
	// ---------------------------------------------------------------
	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// ---------------------------------------------------------------
	// 3. Connect the document store
	//
	// Startup gets the root context: no request deadline yet, take as
	// long as the backend needs to come up.
	// ---------------------------------------------------------------
	store, err := newStore(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("connect to store: %w", err)
	}
	defer store.Close(context.Background())

	// ---------------------------------------------------------------
	// 4. Connect Redis (origin cache)
	//
	// Redis being down must not take the service down; the CORS layer
	// falls back to reading the tenant record directly.
	// ---------------------------------------------------------------
	var rdb *redis.Client
	if opts, err := redis.ParseURL(cfg.RedisURL); err != nil {
		logger.Warn("invalid redis url, origin caching disabled", zap.Error(err))
	} else {
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, origin caching degraded", zap.Error(err))
		}
	}

	// ---------------------------------------------------------------
	// 5. Wire the service and handlers
	// ---------------------------------------------------------------
	svc := service.New(store, cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour, logger)
	cors := cache.NewCORSPolicy(rdb, store.Tenants(), logger)
	handlers := api.NewHandlers(svc, cors, logger)

	// ---------------------------------------------------------------
	// 6. Set up HTTP server
	// ---------------------------------------------------------------
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := gin.New()
	srv.Use(gin.Logger(), gin.Recovery())

	api.RegisterRoutes(srv, handlers, cors, cfg.JWTSecret, logger)

	logger.Info("starting pressgate",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("provider", cfg.DBProvider),
	)

	return srv.Run(":" + cfg.Port)
}

// newStore picks the document store backend from config. The memory
// provider is for local development and tests only.
func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, error) {
	switch cfg.DBProvider {
	case "mongo":
		return mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	case "cosmos":
		return cosmos.New(ctx, cfg.CosmosEndpoint, cfg.CosmosKey, cfg.CosmosDatabase, logger)
	case "memory":
		logger.Warn("using in-memory store, data will not survive a restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.DBProvider)
	}
}
