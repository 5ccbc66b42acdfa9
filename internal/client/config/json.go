package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tuktask/internal/flagx"
	"github.com/dmitrijs2005/tuktask/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// keep the current values.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SessionDir     *string         `json:"session_dir"`
}

// parseJson overlays Config with values from the file named by -c or
// -config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDir != nil {
		cfg.SessionDir = *jc.SessionDir
	}
	return nil
}
