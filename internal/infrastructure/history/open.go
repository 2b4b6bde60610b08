// Package history stores executed commands across sessions.
package history

import (
	"path/filepath"
	"strings"

	"github.com/doeshing/shai-term/internal/pkg/filesystem"
	"github.com/doeshing/shai-term/internal/ports"
)

// DefaultPath is ~/.shai-term/history.db.
func DefaultPath() string {
	return filepath.Join(filesystem.ConfigDir(), "history.db")
}

// Open returns the SQLite command log at path, falling back to a jsonl file
// next to it when the database cannot be opened.
func Open(path string, log ports.Logger) ports.CommandLog {
	if path == "" {
		path = DefaultPath()
	}
	store, err := NewSQLiteStore(path)
	if err == nil {
		return store
	}

	fallback := strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl"
	log.Warn("sqlite history unavailable, using jsonl file", map[string]interface{}{
		"path":     fallback,
		"error":    err.Error(),
		"database": path,
	})
	return NewFileStore(fallback)
}
