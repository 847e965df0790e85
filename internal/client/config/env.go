package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays cfg with CLUBPORTAL_* variables from environ. Unset
// variables leave the current value alone. GEMINI_API_KEY is honoured when
// no chat key was configured otherwise.
func parseEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{
		Prefix:      envPrefix,
		Environment: environ,
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if cfg.Chat.APIKey == "" {
		cfg.Chat.APIKey = environ["GEMINI_API_KEY"]
	}
	return nil
}
