package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tuktask/internal/flagx"
	"github.com/dmitrijs2005/tuktask/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations accept "10s" or
// integer nanoseconds. Absent keys keep the current values.
type JsonConfig struct {
	HTTPAddr                *string         `json:"http_addr"`
	GRPCAddr                *string         `json:"grpc_addr"`
	StorageDSN              *string         `json:"storage_dsn"`
	DatabaseName            *string         `json:"database_name"`
	RedisAddr               *string         `json:"redis_addr"`
	RedisPassword           *string         `json:"redis_password"`
	RedisDB                 *int            `json:"redis_db"`
	SecretKey               *string         `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	BcryptCost              *int            `json:"bcrypt_cost"`
	HealthCheckInterval     *timex.Duration `json:"health_check_interval"`
}

// parseJson loads the file named by -c or -config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setIf(&config.HTTPAddr, c.HTTPAddr)
	setIf(&config.GRPCAddr, c.GRPCAddr)
	setIf(&config.StorageDSN, c.StorageDSN)
	setIf(&config.DatabaseName, c.DatabaseName)
	setIf(&config.RedisAddr, c.RedisAddr)
	setIf(&config.RedisPassword, c.RedisPassword)
	setIf(&config.RedisDB, c.RedisDB)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.BcryptCost, c.BcryptCost)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
