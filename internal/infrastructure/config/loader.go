package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/pkg/filesystem"
	"github.com/doeshing/shai-term/internal/ports"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "SHAI_TERM_CONFIG"

// FileLoader loads YAML configuration from ~/.shai-term/config.yaml (overridable via SHAI_TERM_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path resolves the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Path returns the file the loader reads and writes.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(PathEnvVar); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.ConfigDir(), "config.yaml")
}

// Load implements ports.ConfigStore. The defaults are written on first use.
// SHAI_TERM_* environment overrides are applied on top of the file.
func (l *FileLoader) Load(context.Context) (domain.AppConfig, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.AppConfig{}, err
	}

	cfg, err := readFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.AppConfig{}, err
		}
		cfg = domain.DefaultAppConfig()
		if err := writeFile(path, cfg); err != nil {
			return domain.AppConfig{}, err
		}
	}

	return applyEnv(cfg)
}

// Save implements ports.ConfigStore.
func (l *FileLoader) Save(_ context.Context, cfg domain.AppConfig) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeFile(path, cfg)
}

func readFile(path string) (domain.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.AppConfig{}, err
	}

	// Keys missing from the file keep their default values.
	cfg := domain.DefaultAppConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.AppConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

func writeFile(path string, cfg domain.AppConfig) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	// 0600: the file may hold an API key.
	if err := os.WriteFile(path, raw, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.AppConfig) domain.AppConfig {
	defaults := domain.DefaultAppConfig()
	if cfg.Provider == "" {
		cfg.Provider = defaults.Provider
	}
	if cfg.Model == "" && cfg.ProviderKind() == domain.ProviderOpenAI {
		cfg.Model = defaults.Model
	}
	if cfg.MaxSuggestions == 0 {
		cfg.MaxSuggestions = defaults.MaxSuggestions
	}
	if cfg.MaxHistoryCommands == 0 {
		cfg.MaxHistoryCommands = defaults.MaxHistoryCommands
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigStore = (*FileLoader)(nil)
