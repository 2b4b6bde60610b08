// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the assistant core and the
// adapters that talk to language models, the filesystem, and the shell.
// Following the Ports and Adapters pattern, the application layer depends on
// these interfaces only, never on a concrete HTTP client or storage engine.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., AIClient, CommandLog)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/shai-term/internal/domain"
)

// AIClient sends a system/user prompt pair to the configured provider and
// returns the raw text of the reply. Each operation carries its own token
// budget and timeout.
type AIClient interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
	ClassifyHarm(ctx context.Context, system, user string) (string, error)
	SuggestFix(ctx context.Context, system, user string) (string, error)
}

// AIClientFactory builds a client for the current configuration.
// It returns domain.ErrMissingAPIKey when a keyed provider has no credential.
type AIClientFactory interface {
	ForConfig(domain.AppConfig) (AIClient, error)
}

// UsageRecorder tracks token consumption and cache effectiveness.
type UsageRecorder interface {
	RecordRequest(provider, model string, promptTokens, completionTokens uint64)
	RecordCacheHit()
	RecordCacheMiss()
}

// ConfigStore loads and persists the application configuration.
// Implementations typically read from ~/.shai-term/config.yaml.
type ConfigStore interface {
	Load(context.Context) (domain.AppConfig, error)
	Save(context.Context, domain.AppConfig) error
}

// ContextCollector gathers situational data (cwd, shell, git branch) for prompts.
type ContextCollector interface {
	Collect(ctx context.Context, input string, history []string) (domain.TerminalContext, error)
}

// SafeguardMatcher checks commands against the static dangerous-pattern rules.
type SafeguardMatcher interface {
	Check(command string, enabled bool) domain.MatchResult
	Rules() []domain.PatternRule
}

// CommandLog persists executed commands across sessions.
type CommandLog interface {
	Save(domain.CommandRecord) error
	// Records returns the newest records first; limit <= 0 returns all.
	Records(limit int) ([]domain.CommandRecord, error)
	Search(query string, limit int) ([]domain.CommandRecord, error)
	Clear() error
	Path() string
}

// CommandExecutor runs shell commands outside the interactive session.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (domain.ExecutionResult, error)
}

// CwdSource reports the best-known working directory of the shell.
type CwdSource interface {
	Cwd() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
