package domain

// AppConfig mirrors ~/.shai-term/config.yaml.
type AppConfig struct {
	Provider             string            `yaml:"provider" json:"provider"`
	Model                string            `yaml:"model" json:"model"`
	APIKey               string            `yaml:"api_key" json:"api_key"`
	Endpoint             string            `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	DebounceMS           int               `yaml:"debounce_ms" json:"debounce_ms"`
	GhostTextEnabled     bool              `yaml:"ghost_text_enabled" json:"ghost_text_enabled"`
	Temperature          float32           `yaml:"temperature" json:"temperature"`
	MaxSuggestions       int               `yaml:"max_suggestions" json:"max_suggestions"`
	MaxHistoryCommands   int               `yaml:"max_history_commands" json:"max_history_commands"`
	SafeguardsEnabled    bool              `yaml:"safeguards_enabled" json:"safeguards_enabled"`
	HarmDetectionEnabled bool              `yaml:"harm_detection_enabled" json:"harm_detection_enabled"`
	ShowExplanations     bool              `yaml:"show_explanations" json:"show_explanations"`
	Safeguard            SafeguardSettings `yaml:"safeguard" json:"safeguard"`
	History              HistorySettings   `yaml:"history" json:"history"`
}

// SafeguardSettings points at optional user-defined pattern rules.
type SafeguardSettings struct {
	RulesFile string `yaml:"rules_file,omitempty" json:"rules_file,omitempty"`
}

// HistorySettings controls the persistent command log.
type HistorySettings struct {
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// DefaultAppConfig returns the configuration written on first launch.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Provider:             string(ProviderOpenAI),
		Model:                "gpt-4o-mini",
		DebounceMS:           300,
		GhostTextEnabled:     true,
		Temperature:          0,
		MaxSuggestions:       1,
		MaxHistoryCommands:   DefaultPromptHistory,
		SafeguardsEnabled:    true,
		HarmDetectionEnabled: true,
		ShowExplanations:     true,
	}
}
