package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays variables that are set in the environment. Unset
// variables leave the current values untouched.
func parseEnv(config *Config) error {
	return cleanenv.ReadEnv(config)
}
