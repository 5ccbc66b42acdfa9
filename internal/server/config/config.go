// Package config handles configuration for the TukTask server: defaults,
// then a JSON file, then environment variables, then command-line flags.
// Later sources take precedence.
package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - HTTPAddr: bind address for the JSON API.
//   - GRPCAddr: bind address for the gRPC health endpoint.
//   - StorageDSN: mongodb:// or postgres:// connection string; the scheme picks the backend.
//   - DatabaseName: Mongo database; empty means the one named in StorageDSN.
//   - RedisAddr / RedisPassword / RedisDB: session store.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - SessionValidityDuration: lifetime of a session token and its Redis record.
//   - BcryptCost: work factor for password hashes.
//   - HealthCheckInterval: how often the store is probed for the health endpoint.
type Config struct {
	HTTPAddr                string        `env:"HTTP_ADDR"`
	GRPCAddr                string        `env:"GRPC_ADDR"`
	StorageDSN              string        `env:"STORAGE_DSN"`
	DatabaseName            string        `env:"DATABASE_NAME"`
	RedisAddr               string        `env:"REDIS_ADDR"`
	RedisPassword           string        `env:"REDIS_PASSWORD"`
	RedisDB                 int           `env:"REDIS_DB"`
	SecretKey               string        `env:"SECRET_KEY"`
	SessionValidityDuration time.Duration `env:"SESSION_VALIDITY"`
	BcryptCost              int           `env:"BCRYPT_COST"`
	HealthCheckInterval     time.Duration `env:"HEALTH_CHECK_INTERVAL"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.StorageDSN = "mongodb://localhost:27017/tuktask"
	c.DatabaseName = ""
	c.RedisAddr = "localhost:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 24 * time.Hour
	c.BcryptCost = 10
	c.HealthCheckInterval = 10 * time.Second
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.StorageDSN == "" {
		return fmt.Errorf("storage dsn is required")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is required")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.SessionValidityDuration <= 0 {
		return fmt.Errorf("session validity must be positive")
	}
	if c.HealthCheckInterval <= 0 {
		return fmt.Errorf("health check interval must be positive")
	}
	return nil
}

// LoadConfig builds a Config from defaults, the optional JSON file named by
// -c/-config, the environment and finally command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
