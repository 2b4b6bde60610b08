package prompt

import (
	"regexp"
	"sort"
	"strings"
)

var (
	hexPattern  = regexp.MustCompile(`\b[0-9a-fA-F]{32,}\b`)
	uuidPattern = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)
	keyPattern  = regexp.MustCompile(`\b(sk-|pk-|api-)?[A-Za-z0-9]{20,}\b`)
)

var sensitiveEnvMarkers = []string{
	"KEY", "SECRET", "TOKEN", "PASSWORD", "CREDENTIAL", "AUTH",
	"PRIVATE", "API_KEY", "ACCESS_KEY", "AWS_", "AZURE_",
}

// SanitizeCommand redacts hashes, UUIDs and key-like tokens from a history line.
func SanitizeCommand(cmd string) string {
	cmd = hexPattern.ReplaceAllString(cmd, "REDACTED_HASH")
	cmd = uuidPattern.ReplaceAllString(cmd, "REDACTED_UUID")
	return keyPattern.ReplaceAllString(cmd, "REDACTED_KEY")
}

// SanitizeHistory applies SanitizeCommand to every entry.
func SanitizeHistory(history []string) []string {
	out := make([]string, 0, len(history))
	for _, cmd := range history {
		out = append(out, SanitizeCommand(cmd))
	}
	return out
}

// SafeEnvNames drops names that look like credentials and sorts the rest.
func SafeEnvNames(names []string) []string {
	var out []string
	for _, name := range names {
		if isSensitiveEnvName(name) {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func isSensitiveEnvName(name string) bool {
	upper := strings.ToUpper(name)
	for _, marker := range sensitiveEnvMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
