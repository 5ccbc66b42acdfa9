package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds runtime settings for the TukTask CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API.
//   - RequestTimeout: per-request timeout.
//   - SessionDir: directory under the working directory holding the session token.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	SessionDir     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.SessionDir = ".tuktask"
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.SessionDir == "" {
		return fmt.Errorf("session dir is required")
	}
	return nil
}

// LoadConfig constructs a Config from defaults, the optional JSON file and
// command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
