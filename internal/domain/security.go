package domain

import "strings"

// Severity grades a dangerous command or an AI harm verdict.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ParseSeverity normalises free-form severities, unknown values become low.
func ParseSeverity(value string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(value))) {
	case SeverityMedium:
		return SeverityMedium
	case SeverityHigh:
		return SeverityHigh
	case SeverityCritical:
		return SeverityCritical
	default:
		return SeverityLow
	}
}

// Rank orders severities from low (1) to critical (4).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// PatternRule is an immutable substring rule of the safeguard matcher.
type PatternRule struct {
	Pattern     string   `yaml:"pattern" json:"pattern"`
	Description string   `yaml:"description" json:"description"`
	Severity    Severity `yaml:"severity" json:"severity"`
}

// MatchResult is the outcome of a safeguard check.
type MatchResult struct {
	IsDangerous    bool     `json:"is_dangerous"`
	MatchedPattern *string  `json:"matched_pattern"`
	Description    string   `json:"description"`
	Severity       Severity `json:"severity"`
}

// SafeMatchResult is the default, not-dangerous result.
func SafeMatchResult() MatchResult {
	return MatchResult{Severity: SeverityLow}
}

// HarmResult is the AI-derived harm verdict for a command.
type HarmResult struct {
	IsHarmful bool     `json:"is_harmful"`
	Reason    string   `json:"reason"`
	Severity  Severity `json:"severity"`
}

// NotHarmful is the fail-open harm verdict.
func NotHarmful() HarmResult {
	return HarmResult{Severity: SeverityLow}
}
