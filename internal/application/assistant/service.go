// Package assistant composes the caches, the safeguard matcher and the AI
// client into the completion, harm and fix operations of the terminal.
//
// Shared state (config, caches, command history, last command) is guarded by
// independent locks. No lock is held across an AI call or disk I/O, and no
// code path holds two locks at once.
package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	appconfig "github.com/doeshing/shai-term/internal/application/config"
	"github.com/doeshing/shai-term/internal/application/prompt"
	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/pkg/cache"
	"github.com/doeshing/shai-term/internal/ports"
)

// Dependencies wires the service to its adapters. CommandLog, Usage and Cwd
// are optional.
type Dependencies struct {
	ConfigStore ports.ConfigStore
	Clients     ports.AIClientFactory
	Safeguard   ports.SafeguardMatcher
	Context     ports.ContextCollector
	CommandLog  ports.CommandLog
	Usage       ports.UsageRecorder
	Cwd         ports.CwdSource
	Logger      ports.Logger
	// Clock overrides time.Now for the caches.
	Clock func() time.Time
}

// Service is the orchestrator shared by every front end.
type Service struct {
	deps Dependencies

	cfgMu sync.RWMutex
	cfg   domain.AppConfig

	suggestions *cache.Bounded[string, domain.Suggestion]
	harm        *cache.Bounded[string, domain.HarmResult]

	histMu  sync.Mutex
	history []string

	lastMu sync.Mutex
	last   *domain.ErrorContext
}

// New validates dependencies and returns a ready service.
func New(cfg domain.AppConfig, deps Dependencies) (*Service, error) {
	if deps.ConfigStore == nil || deps.Clients == nil || deps.Safeguard == nil ||
		deps.Context == nil || deps.Logger == nil {
		return nil, errors.New("assistant.Service dependencies not satisfied")
	}

	var opts []cache.Option
	if deps.Clock != nil {
		opts = append(opts, cache.WithClock(deps.Clock))
	}

	return &Service{
		deps:        deps,
		cfg:         cfg,
		suggestions: cache.NewBounded[string, domain.Suggestion](domain.DefaultMaxCacheEntries, domain.SuggestionCacheTTL, opts...),
		harm:        cache.NewBounded[string, domain.HarmResult](domain.DefaultMaxCacheEntries, domain.HarmCacheTTL, opts...),
	}, nil
}

// Suggest returns an inline completion for input.
//
// A missing API key for a keyed provider is returned as domain.ErrMissingAPIKey.
// Any other AI failure yields an empty suggestion and a nil error; such
// results are not cached. Concurrent misses for the same input each call the
// AI client and the last write wins.
func (s *Service) Suggest(ctx context.Context, input string) (domain.Suggestion, error) {
	if cached, ok := s.suggestions.Get(input); ok {
		s.recordCacheHit()
		return cached, nil
	}

	cfg := s.Config()
	if !cfg.HasCredential() {
		return domain.Suggestion{}, fmt.Errorf("%s: %w", cfg.ProviderKind(), domain.ErrMissingAPIKey)
	}
	if nonSpaceRunes(input) < domain.MinCompletionInput {
		return domain.Suggestion{}, nil
	}
	s.recordCacheMiss()

	client, err := s.deps.Clients.ForConfig(cfg)
	if err != nil {
		if errors.Is(err, domain.ErrMissingAPIKey) {
			return domain.Suggestion{}, err
		}
		s.deps.Logger.Warn("ai client unavailable", map[string]interface{}{"error": err.Error()})
		return domain.Suggestion{}, nil
	}

	history := s.recentHistory(cfg.MaxHistoryCommands)
	tctx, err := s.deps.Context.Collect(ctx, input, history)
	if err != nil {
		s.deps.Logger.Warn("context collection failed", map[string]interface{}{"error": err.Error()})
		tctx = domain.TerminalContext{CurrentInput: input, CommandHistory: history, Cwd: s.cwd()}
	}

	user, err := prompt.Completion(tctx, cfg.ShowExplanations)
	if err != nil {
		return domain.Suggestion{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, domain.CompletionTimeout)
	defer cancel()

	raw, err := client.Complete(callCtx, prompt.CompletionSystem(), user, cfg.Temperature)
	if err != nil {
		s.deps.Logger.Warn("completion failed", map[string]interface{}{"error": err.Error()})
		return domain.Suggestion{}, nil
	}

	suggestion := parseSuggestion(raw, cfg.ShowExplanations)
	s.suggestions.Set(input, suggestion)
	return suggestion, nil
}

// ClassifyHarm asks the AI whether command is harmful. It never fails:
// every error path returns domain.NotHarmful().
func (s *Service) ClassifyHarm(ctx context.Context, command string) domain.HarmResult {
	if strings.TrimSpace(command) == "" {
		return domain.NotHarmful()
	}

	key := harmKey(command)
	if cached, ok := s.harm.Get(key); ok {
		s.recordCacheHit()
		return cached
	}

	cfg := s.Config()
	if !cfg.HarmDetectionEnabled {
		return domain.NotHarmful()
	}
	s.recordCacheMiss()

	client, err := s.deps.Clients.ForConfig(cfg)
	if err != nil {
		s.deps.Logger.Debug("harm check skipped", map[string]interface{}{"error": err.Error()})
		return domain.NotHarmful()
	}

	callCtx, cancel := context.WithTimeout(ctx, domain.HarmCheckTimeout)
	defer cancel()

	raw, err := client.ClassifyHarm(callCtx, prompt.HarmSystem(), prompt.Harm(command))
	if err != nil {
		s.deps.Logger.Warn("harm check failed, allowing command", map[string]interface{}{"error": err.Error()})
		return domain.NotHarmful()
	}

	result, ok := parseHarm(raw)
	if !ok {
		s.deps.Logger.Warn("harm check reply not understood", map[string]interface{}{"reply": raw})
		return domain.NotHarmful()
	}
	s.harm.Set(key, result)
	return result
}

// SuggestFix asks the AI to correct a failed command. Failures yield
// domain.NoConfidentFix(). Results are never cached.
func (s *Service) SuggestFix(ctx context.Context, ec domain.ErrorContext) domain.FixSuggestion {
	cfg := s.Config()
	client, err := s.deps.Clients.ForConfig(cfg)
	if err != nil {
		s.deps.Logger.Debug("fix suggestion skipped", map[string]interface{}{"error": err.Error()})
		return domain.NoConfidentFix()
	}

	if ec.Cwd == "" {
		ec.Cwd = s.cwd()
	}
	if ec.History == nil {
		ec.History = s.recentHistory(cfg.MaxHistoryCommands)
	}

	user, err := prompt.Fix(ec)
	if err != nil {
		s.deps.Logger.Error("render fix prompt", err, nil)
		return domain.NoConfidentFix()
	}

	callCtx, cancel := context.WithTimeout(ctx, domain.FixTimeout)
	defer cancel()

	raw, err := client.SuggestFix(callCtx, prompt.FixSystem(), user)
	if err != nil {
		s.deps.Logger.Warn("fix suggestion failed", map[string]interface{}{"error": err.Error()})
		return domain.NoConfidentFix()
	}

	fix, ok := parseFix(raw)
	if !ok {
		s.deps.Logger.Warn("fix reply not understood", map[string]interface{}{"reply": raw})
		return domain.NoConfidentFix()
	}
	return fix
}

// CheckSafeguard runs the static matcher with the configured switch.
func (s *Service) CheckSafeguard(command string) domain.MatchResult {
	return s.deps.Safeguard.Check(command, s.Config().SafeguardsEnabled)
}

// Rules lists the safeguard rules.
func (s *Service) Rules() []domain.PatternRule {
	return s.deps.Safeguard.Rules()
}

// SetSafeguardsEnabled toggles the static matcher and persists the change.
func (s *Service) SetSafeguardsEnabled(ctx context.Context, enabled bool) error {
	cfg := s.Config()
	cfg.SafeguardsEnabled = enabled
	return s.UpdateConfig(ctx, cfg)
}

// SetHarmDetectionEnabled toggles the AI harm check and persists the change.
func (s *Service) SetHarmDetectionEnabled(ctx context.Context, enabled bool) error {
	cfg := s.Config()
	cfg.HarmDetectionEnabled = enabled
	return s.UpdateConfig(ctx, cfg)
}

// Config returns a copy of the active configuration.
func (s *Service) Config() domain.AppConfig {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig validates and saves cfg, then makes it active.
func (s *Service) UpdateConfig(ctx context.Context, cfg domain.AppConfig) error {
	if err := appconfig.Validate(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if err := s.deps.ConfigStore.Save(ctx, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	s.ApplyConfig(cfg)
	return nil
}

// ApplyConfig makes cfg active without saving it.
func (s *Service) ApplyConfig(cfg domain.AppConfig) {
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

// ClearCaches drops every cached suggestion and harm verdict.
func (s *Service) ClearCaches() {
	s.suggestions.Clear()
	s.harm.Clear()
}

func (s *Service) cwd() string {
	if s.deps.Cwd == nil {
		return ""
	}
	return s.deps.Cwd.Cwd()
}

func (s *Service) recordCacheHit() {
	if s.deps.Usage != nil {
		s.deps.Usage.RecordCacheHit()
	}
}

func (s *Service) recordCacheMiss() {
	if s.deps.Usage != nil {
		s.deps.Usage.RecordCacheMiss()
	}
}

// harmKey derives the harm cache key from the command text.
func harmKey(command string) string {
	sum := sha256.Sum256([]byte(command))
	return hex.EncodeToString(sum[:])
}

func nonSpaceRunes(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
