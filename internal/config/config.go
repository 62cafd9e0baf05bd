package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	LogLevel string
	Env      string

	// DBProvider selects the document store backend: "mongo",
	// "cosmos", or "memory".
	DBProvider string

	MongoURI      string
	MongoDatabase string

	CosmosEndpoint string
	CosmosKey      string
	CosmosDatabase string

	RedisURL string

	JWTSecret       string
	SessionTTLHours int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            GetEnv("PORT", "8080"),
		Env:             GetEnv("ENV", "development"),
		LogLevel:        GetEnv("LOG_LEVEL", "info"),
		DBProvider:      GetEnv("DB_PROVIDER", "mongo"),
		MongoURI:        GetEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   GetEnv("MONGO_DATABASE", "pressgate"),
		CosmosEndpoint:  GetEnv("COSMOS_ENDPOINT", ""),
		CosmosKey:       GetEnv("COSMOS_KEY", ""),
		CosmosDatabase:  GetEnv("COSMOS_DATABASE", "pressgate"),
		RedisURL:        GetEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:       GetEnv("JWT_SECRET", ""),
		SessionTTLHours: GetEnvInt("SESSION_TTL_HOURS", 24),
	}

	switch cfg.DBProvider {
	case "mongo", "cosmos", "memory":
	default:
		return nil, fmt.Errorf("unknown DB_PROVIDER %q", cfg.DBProvider)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DBProvider == "cosmos" && (cfg.CosmosEndpoint == "" || cfg.CosmosKey == "") {
		return nil, fmt.Errorf("COSMOS_ENDPOINT and COSMOS_KEY are required when DB_PROVIDER=cosmos")
	}

	return cfg, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
