package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/pkg/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"PROVIDER", "MODEL", "API_KEY", "ENDPOINT"} {
		t.Setenv(EnvPrefix+"_"+name, "")
	}
}

func TestLoad_WritesDefaultsOnFirstUse(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
}

func TestLoad_FillsMissingKeys(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: anthropic\nmodel: claude-3-5-haiku-20241022\nsafeguards_enabled: false\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.False(t, cfg.SafeguardsEnabled)
	assert.True(t, cfg.HarmDetectionEnabled)
	assert.Equal(t, domain.DefaultPromptHistory, cfg.MaxHistoryCommands)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [unclosed"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHAI_TERM_PROVIDER", "Groq")
	t.Setenv("SHAI_TERM_API_KEY", "gsk-from-env")

	cfg, err := NewFileLoader(filepath.Join(t.TempDir(), "config.yaml")).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "gsk-from-env", cfg.APIKey)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	loader := NewFileLoader(filepath.Join(t.TempDir(), "config.yaml"))

	cfg := domain.DefaultAppConfig()
	cfg.APIKey = "sk-saved"
	cfg.Temperature = 0.7
	cfg.Safeguard.RulesFile = "~/rules.yaml"
	require.NoError(t, loader.Save(context.Background(), cfg))

	got, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestPath_EnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(PathEnvVar, path)
	assert.Equal(t, path, NewFileLoader("").Path())
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []domain.AppConfig
	require.NoError(t, Watch(ctx, loader, func(cfg domain.AppConfig) {
		mu.Lock()
		seen = append(seen, cfg)
		mu.Unlock()
	}, logger.Nop()))

	cfg := domain.DefaultAppConfig()
	cfg.Model = "gpt-4o"
	require.NoError(t, loader.Save(context.Background(), cfg))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1].Model == "gpt-4o"
	}, 3*time.Second, 20*time.Millisecond)
}
