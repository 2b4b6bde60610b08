package domain_test

import (
	"testing"

	"github.com/doeshing/shai-term/internal/domain"
)

// TestAppConfig_ResolvedEndpoint tests endpoint fallback per provider
func TestAppConfig_ResolvedEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		config domain.AppConfig
		want   string
	}{
		{
			name:   "explicit endpoint wins",
			config: domain.AppConfig{Provider: "openai", Endpoint: "http://proxy.local/v1/chat/completions"},
			want:   "http://proxy.local/v1/chat/completions",
		},
		{
			name:   "anthropic default",
			config: domain.AppConfig{Provider: "anthropic"},
			want:   "https://api.anthropic.com/v1/messages",
		},
		{
			name:   "groq default",
			config: domain.AppConfig{Provider: "GROQ"},
			want:   "https://api.groq.com/openai/v1/chat/completions",
		},
		{
			name:   "unknown provider falls back to openai",
			config: domain.AppConfig{Provider: "mystery"},
			want:   "https://api.openai.com/v1/chat/completions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.ResolvedEndpoint(); got != tt.want {
				t.Errorf("got endpoint %s, want %s", got, tt.want)
			}
		})
	}
}

// TestAppConfig_HasCredential tests the credential requirement per provider
func TestAppConfig_HasCredential(t *testing.T) {
	tests := []struct {
		name   string
		config domain.AppConfig
		want   bool
	}{
		{name: "openai without key", config: domain.AppConfig{Provider: "openai"}, want: false},
		{name: "openai with blank key", config: domain.AppConfig{Provider: "openai", APIKey: "   "}, want: false},
		{name: "anthropic with key", config: domain.AppConfig{Provider: "anthropic", APIKey: "sk-ant"}, want: true},
		{name: "ollama needs no key", config: domain.AppConfig{Provider: "ollama"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.HasCredential(); got != tt.want {
				t.Errorf("HasCredential() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestAppConfig_Set tests assigning fields by key
func TestAppConfig_Set(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantError bool
		check     func(domain.AppConfig) bool
	}{
		{
			name:  "sets provider lower-cased",
			key:   "provider",
			value: "Anthropic",
			check: func(c domain.AppConfig) bool { return c.Provider == "anthropic" },
		},
		{
			name:  "sets temperature",
			key:   "temperature",
			value: "0.7",
			check: func(c domain.AppConfig) bool { return c.Temperature > 0.69 && c.Temperature < 0.71 },
		},
		{
			name:  "toggles harm detection",
			key:   "harm_detection_enabled",
			value: "false",
			check: func(c domain.AppConfig) bool { return !c.HarmDetectionEnabled },
		},
		{
			name:  "sets nested rules file",
			key:   "safeguard.rules_file",
			value: "/tmp/rules.yaml",
			check: func(c domain.AppConfig) bool { return c.Safeguard.RulesFile == "/tmp/rules.yaml" },
		},
		{name: "rejects bad bool", key: "safeguards_enabled", value: "maybe", wantError: true},
		{name: "rejects bad int", key: "debounce_ms", value: "soon", wantError: true},
		{name: "rejects unknown key", key: "colour", value: "blue", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultAppConfig()
			err := cfg.Set(tt.key, tt.value)

			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("field not applied: %+v", cfg)
			}
		})
	}
}

func TestAppConfig_MaskedAPIKey(t *testing.T) {
	cfg := domain.AppConfig{APIKey: "sk-abcdefgh1234"}
	if got := cfg.MaskedAPIKey(); got != "***********1234" {
		t.Errorf("MaskedAPIKey() = %q", got)
	}
	if got := (domain.AppConfig{}).MaskedAPIKey(); got != "" {
		t.Errorf("MaskedAPIKey() on empty key = %q", got)
	}
}
