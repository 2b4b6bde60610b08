package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ProviderKind resolves the configured provider string.
func (c AppConfig) ProviderKind() ProviderKind {
	return ParseProviderKind(c.Provider)
}

// ResolvedEndpoint returns the configured endpoint or the provider default.
func (c AppConfig) ResolvedEndpoint() string {
	if strings.TrimSpace(c.Endpoint) != "" {
		return c.Endpoint
	}
	return c.ProviderKind().DefaultEndpoint()
}

// HasCredential reports whether the provider can be called with the current settings.
func (c AppConfig) HasCredential() bool {
	if !c.ProviderKind().RequiresAPIKey() {
		return true
	}
	return strings.TrimSpace(c.APIKey) != ""
}

// MaskedAPIKey hides all but the last four characters of the key.
func (c AppConfig) MaskedAPIKey() string {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// Set assigns a single field addressed by its YAML key.
func (c *AppConfig) Set(key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "provider":
		c.Provider = strings.ToLower(value)
	case "model":
		c.Model = value
	case "api_key":
		c.APIKey = value
	case "endpoint":
		c.Endpoint = value
	case "debounce_ms":
		return setInt(&c.DebounceMS, key, value)
	case "ghost_text_enabled":
		return setBool(&c.GhostTextEnabled, key, value)
	case "temperature":
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Temperature = float32(f)
	case "max_suggestions":
		return setInt(&c.MaxSuggestions, key, value)
	case "max_history_commands":
		return setInt(&c.MaxHistoryCommands, key, value)
	case "safeguards_enabled":
		return setBool(&c.SafeguardsEnabled, key, value)
	case "harm_detection_enabled":
		return setBool(&c.HarmDetectionEnabled, key, value)
	case "show_explanations":
		return setBool(&c.ShowExplanations, key, value)
	case "safeguard.rules_file":
		c.Safeguard.RulesFile = value
	case "history.path":
		c.History.Path = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
