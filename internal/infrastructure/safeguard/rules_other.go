//go:build !windows

package safeguard

import "github.com/doeshing/shai-term/internal/domain"

func platformRules() []domain.PatternRule { return nil }
