package domain

import "strings"

// ProviderKind enumerates the supported language-model backends.
type ProviderKind string

const (
	ProviderOpenAI    ProviderKind = "openai"
	ProviderAnthropic ProviderKind = "anthropic"
	ProviderGroq      ProviderKind = "groq"
	ProviderOllama    ProviderKind = "ollama"
)

// ParseProviderKind maps a config value to a provider, defaulting to OpenAI.
func ParseProviderKind(value string) ProviderKind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "anthropic":
		return ProviderAnthropic
	case "groq":
		return ProviderGroq
	case "ollama":
		return ProviderOllama
	default:
		return ProviderOpenAI
	}
}

// KnownProvider reports whether value names a supported provider.
func KnownProvider(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "openai", "anthropic", "groq", "ollama":
		return true
	}
	return false
}

// DefaultEndpoint returns the chat endpoint used when none is configured.
func (k ProviderKind) DefaultEndpoint() string {
	switch k {
	case ProviderAnthropic:
		return "https://api.anthropic.com/v1/messages"
	case ProviderGroq:
		return "https://api.groq.com/openai/v1/chat/completions"
	case ProviderOllama:
		return "http://localhost:11434/api/chat"
	default:
		return "https://api.openai.com/v1/chat/completions"
	}
}

// RequiresAPIKey is false only for local backends.
func (k ProviderKind) RequiresAPIKey() bool {
	return k != ProviderOllama
}
