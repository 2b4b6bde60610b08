package domain

import (
	"errors"
	"time"
)

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Cache constants
const (
	// SuggestionCacheTTL is how long a completion stays valid
	SuggestionCacheTTL = 300 * time.Second
	// HarmCacheTTL is how long a harm verdict stays valid
	HarmCacheTTL = time.Hour
	// DefaultMaxCacheEntries is the capacity of each in-memory cache
	DefaultMaxCacheEntries = 100
)

// Timeouts for AI calls
const (
	CompletionTimeout = 30 * time.Second
	FixTimeout        = 30 * time.Second
	HarmCheckTimeout  = 3 * time.Second
)

// Limits
const (
	// MaxCommandHistory is the number of commands kept in memory
	MaxCommandHistory = 100
	// DefaultPromptHistory is how many recent commands go into a prompt
	DefaultPromptHistory = 20
	// MaxErrorOutputBytes caps captured output of a failed command
	MaxErrorOutputBytes = 10 * 1024
	// MaxFixPromptOutputBytes caps the output quoted in a fix prompt
	MaxFixPromptOutputBytes = 2000
	// MinCompletionInput is the shortest input worth completing
	MinCompletionInput = 2
	// DefaultHistoryLimit is the default number of command log records to display
	DefaultHistoryLimit = 20
)

// Terminal defaults
const (
	DefaultCols uint16 = 80
	DefaultRows uint16 = 24
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)

var (
	// ErrMissingAPIKey is returned when a keyed provider has no credential.
	ErrMissingAPIKey = errors.New("API key is required")
	// ErrNoSession is returned by terminal operations before a shell is spawned.
	ErrNoSession = errors.New("no terminal session")
	// ErrSessionClosed is returned after the session was torn down.
	ErrSessionClosed = errors.New("terminal session closed")
	// ErrSessionExited is returned once the shell process has exited.
	ErrSessionExited = errors.New("shell process exited")
)
