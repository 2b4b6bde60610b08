package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/doeshing/shai-term/internal/domain"
)

// EnvPrefix namespaces the environment overrides, e.g. SHAI_TERM_API_KEY.
const EnvPrefix = "SHAI_TERM"

// envOverrides lists the settings that may come from the environment.
// Empty values leave the file setting untouched.
type envOverrides struct {
	Provider string `envconfig:"PROVIDER"`
	Model    string `envconfig:"MODEL"`
	APIKey   string `envconfig:"API_KEY"`
	Endpoint string `envconfig:"ENDPOINT"`
}

func applyEnv(cfg domain.AppConfig) (domain.AppConfig, error) {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return domain.AppConfig{}, fmt.Errorf("read environment overrides: %w", err)
	}

	if v := strings.TrimSpace(env.Provider); v != "" {
		cfg.Provider = strings.ToLower(v)
	}
	if v := strings.TrimSpace(env.Model); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(env.APIKey); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(env.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	return cfg, nil
}
