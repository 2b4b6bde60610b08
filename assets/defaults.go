package assets

import (
	_ "embed"
)

// SafeguardRulesTemplate is written by `shai-term guardrail init` as a
// starting point for user-defined safeguard rules.
//
//go:embed defaults/safeguard.yaml
var SafeguardRulesTemplate []byte
