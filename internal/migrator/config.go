// Package migrator implements the one-shot job that rewrites string-typed
// userId fields on task documents to ObjectIDs.
package migrator

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is read from the environment only.
type Config struct {
	MongoURI       string        `env:"MONGO_URI" env-required:"true"`
	Database       string        `env:"MONGO_DATABASE"`
	Collection     string        `env:"TASKS_COLLECTION" env-default:"tasks"`
	BatchSize      int32         `env:"MIGRATION_BATCH_SIZE" env-default:"500"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`

	Report ReportConfig
}

// ReportConfig points at an S3-compatible bucket for the run summary.
// Archiving is off while Bucket is empty.
type ReportConfig struct {
	Bucket    string `env:"REPORT_S3_BUCKET"`
	Region    string `env:"REPORT_S3_REGION" env-default:"us-east-1"`
	Endpoint  string `env:"REPORT_S3_ENDPOINT"`
	AccessKey string `env:"REPORT_S3_ACCESS_KEY"`
	SecretKey string `env:"REPORT_S3_SECRET_KEY"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("MIGRATION_BATCH_SIZE must be positive, got %d", cfg.BatchSize)
	}
	if cfg.ConnectTimeout <= 0 {
		return nil, fmt.Errorf("MONGO_CONNECT_TIMEOUT must be positive, got %s", cfg.ConnectTimeout)
	}
	return &cfg, nil
}
