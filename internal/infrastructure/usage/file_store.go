// Package usage keeps token and cache statistics in ~/.shai-term/usage.json.
package usage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/pkg/filesystem"
	"github.com/doeshing/shai-term/internal/ports"
)

// DefaultPath is ~/.shai-term/usage.json.
func DefaultPath() string {
	return filepath.Join(filesystem.ConfigDir(), "usage.json")
}

// FileStore records usage in memory and rewrites the JSON file on every change.
// Writes happen under the lock so the file always reflects the latest state.
type FileStore struct {
	path string
	log  ports.Logger

	mu    sync.Mutex
	stats domain.UsageStats
}

// NewFileStore loads path, starting from zero when it is missing or unreadable.
func NewFileStore(path string, log ports.Logger) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	s := &FileStore{path: path, log: log, stats: domain.NewUsageStats()}

	stats, err := load(path)
	switch {
	case err == nil:
		s.stats = stats
	case errors.Is(err, fs.ErrNotExist):
	default:
		log.Warn("usage stats unreadable, starting fresh", map[string]interface{}{"path": path, "error": err.Error()})
	}
	return s
}

func load(path string) (domain.UsageStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.UsageStats{}, err
	}
	stats := domain.NewUsageStats()
	if err := json.Unmarshal(data, &stats); err != nil {
		return domain.UsageStats{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if stats.ByProvider == nil {
		stats.ByProvider = map[string]domain.ProviderUsage{}
	}
	return stats, nil
}

// RecordRequest implements ports.UsageRecorder.
func (s *FileStore) RecordRequest(provider, model string, promptTokens, completionTokens uint64) {
	promptCost, completionCost := domain.ModelCosts(provider, model)
	s.update(func(u *domain.UsageStats) {
		u.RecordRequest(provider, promptTokens, completionTokens, promptCost, completionCost)
	})
}

// RecordCacheHit implements ports.UsageRecorder.
func (s *FileStore) RecordCacheHit() {
	s.update(func(u *domain.UsageStats) { u.RecordCacheHit() })
}

// RecordCacheMiss implements ports.UsageRecorder.
func (s *FileStore) RecordCacheMiss() {
	s.update(func(u *domain.UsageStats) { u.RecordCacheMiss() })
}

// Stats returns a snapshot.
func (s *FileStore) Stats() domain.UsageStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.stats)
}

// Reset zeroes the statistics and persists the empty state.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = domain.NewUsageStats()
	return s.write(s.stats)
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) update(fn func(*domain.UsageStats)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.stats)
	if err := s.write(s.stats); err != nil {
		s.log.Warn("usage stats not saved", map[string]interface{}{"path": s.path, "error": err.Error()})
	}
}

func (s *FileStore) write(stats domain.UsageStats) error {
	raw, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, domain.SecureFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func snapshot(u domain.UsageStats) domain.UsageStats {
	byProvider := make(map[string]domain.ProviderUsage, len(u.ByProvider))
	for k, v := range u.ByProvider {
		byProvider[k] = v
	}
	u.ByProvider = byProvider
	return u
}

var _ ports.UsageRecorder = (*FileStore)(nil)
