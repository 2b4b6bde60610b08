package usage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/shai-term/internal/pkg/logger"
)

func TestFileStore_RecordsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	store := NewFileStore(path, logger.Nop())

	store.RecordRequest("openai", "gpt-4o-mini", 1000, 100)
	store.RecordRequest("ollama", "llama3", 50, 5)
	store.RecordCacheHit()
	store.RecordCacheMiss()
	store.RecordCacheMiss()

	stats := store.Stats()
	assert.EqualValues(t, 2, stats.TotalRequests)
	assert.EqualValues(t, 1050, stats.TotalPromptTokens)
	assert.InDelta(t, 1000*0.00000015+100*0.0000006, stats.TotalCost, 1e-12)
	assert.EqualValues(t, 1, stats.ByProvider["ollama"].RequestCount)
	assert.Zero(t, stats.ByProvider["ollama"].TotalCost)
	assert.InDelta(t, 1.0/3.0, stats.CacheHitRate(), 1e-9)

	reloaded := NewFileStore(path, logger.Nop())
	assert.Equal(t, stats, reloaded.Stats())
}

func TestFileStore_Reset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	store := NewFileStore(path, logger.Nop())
	store.RecordCacheHit()

	require.NoError(t, store.Reset())
	assert.Zero(t, store.Stats().CacheHits)
	assert.Zero(t, NewFileStore(path, logger.Nop()).Stats().CacheHits)
}

func TestFileStore_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	store := NewFileStore(path, logger.Nop())
	assert.Zero(t, store.Stats().TotalRequests)
	assert.NotNil(t, store.Stats().ByProvider)
}

func TestFileStore_ConcurrentUpdates(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "usage.json"), logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.RecordRequest("groq", "llama3-70b-8192", 1, 1)
			store.RecordCacheHit()
		}()
	}
	wg.Wait()

	stats := store.Stats()
	assert.EqualValues(t, 20, stats.TotalRequests)
	assert.EqualValues(t, 20, stats.CacheHits)
}
