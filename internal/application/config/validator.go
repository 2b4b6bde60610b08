package config

import (
	"fmt"

	"github.com/doeshing/shai-term/internal/domain"
)

// Validate ensures config values are usable.
func Validate(cfg domain.AppConfig) error {
	if !domain.KnownProvider(cfg.Provider) {
		return fmt.Errorf("provider must be openai|anthropic|groq|ollama, got %q", cfg.Provider)
	}
	if cfg.Model == "" {
		return fmt.Errorf("model must be set")
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %v", cfg.Temperature)
	}
	if cfg.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must be >= 0")
	}
	if cfg.MaxSuggestions <= 0 {
		return fmt.Errorf("max_suggestions must be > 0")
	}
	if cfg.MaxHistoryCommands <= 0 || cfg.MaxHistoryCommands > domain.MaxCommandHistory {
		return fmt.Errorf("max_history_commands must be within [1, %d]", domain.MaxCommandHistory)
	}
	return nil
}
