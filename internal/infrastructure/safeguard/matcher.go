package safeguard

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/pkg/filesystem"
	"github.com/doeshing/shai-term/internal/ports"
)

// Matcher implements the SafeguardMatcher port with ordered substring rules.
// The rule set is fixed at construction and read-only afterwards.
type Matcher struct {
	rules   []domain.PatternRule
	lowered []string
}

// RulesFile is the YAML schema of a user rules file.
type RulesFile struct {
	Rules []domain.PatternRule `yaml:"rules"`
}

// NewMatcher builds a matcher from the base rules, the platform rules and
// any extra rules, checked in that order.
func NewMatcher(extra ...domain.PatternRule) *Matcher {
	rules := append(baseRules(), platformRules()...)
	for _, r := range extra {
		if strings.TrimSpace(r.Pattern) == "" {
			continue
		}
		r.Severity = domain.ParseSeverity(string(r.Severity))
		rules = append(rules, r)
	}

	lowered := make([]string, len(rules))
	for i, r := range rules {
		lowered[i] = strings.ToLower(r.Pattern)
	}
	return &Matcher{rules: rules, lowered: lowered}
}

// LoadMatcher builds a matcher and appends the rules found in path.
// An empty path or a missing file yields the built-in rules only.
func LoadMatcher(path string) (*Matcher, error) {
	if strings.TrimSpace(path) == "" {
		return NewMatcher(), nil
	}
	data, err := os.ReadFile(filesystem.ResolvePath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return NewMatcher(), nil
		}
		return nil, fmt.Errorf("read safeguard rules: %w", err)
	}

	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse safeguard rules: %w", err)
	}
	return NewMatcher(file.Rules...), nil
}

// Check returns the first rule contained in command, ignoring case.
// A disabled matcher always reports the command as safe.
func (m *Matcher) Check(command string, enabled bool) domain.MatchResult {
	if !enabled {
		return domain.SafeMatchResult()
	}
	lower := strings.ToLower(command)
	for i, pattern := range m.lowered {
		if strings.Contains(lower, pattern) {
			r := m.rules[i]
			matched := r.Pattern
			return domain.MatchResult{
				IsDangerous:    true,
				MatchedPattern: &matched,
				Description:    r.Description,
				Severity:       r.Severity,
			}
		}
	}
	return domain.SafeMatchResult()
}

// Rules returns a copy of every rule in check order.
func (m *Matcher) Rules() []domain.PatternRule {
	out := make([]domain.PatternRule, len(m.rules))
	copy(out, m.rules)
	return out
}

var _ ports.SafeguardMatcher = (*Matcher)(nil)
