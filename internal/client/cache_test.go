package client

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempCache(t *testing.T) *Cache {
	t.Helper()
	return NewCache(filepath.Join(t.TempDir(), "history-cache.json"))
}

func TestCacheMissingFile(t *testing.T) {
	c := tempCache(t)
	assert.Empty(t, c.Load())
}

func TestCachePrependNewestFirst(t *testing.T) {
	c := tempCache(t)
	for i := 1; i <= 3; i++ {
		require.NoError(t, c.Prepend(CachedResult{
			SavedAt:   time.Now(),
			Symptoms:  fmt.Sprintf("symptoms %d", i),
			BackendID: fmt.Sprintf("id-%d", i),
		}))
	}

	entries := c.Load()
	require.Len(t, entries, 3)
	assert.Equal(t, "id-3", entries[0].BackendID)
	assert.Equal(t, "id-1", entries[2].BackendID)
}

func TestCacheCapped(t *testing.T) {
	c := tempCache(t)
	for i := 0; i < CacheCap+5; i++ {
		require.NoError(t, c.Prepend(CachedResult{BackendID: fmt.Sprintf("id-%d", i)}))
	}

	entries := c.Load()
	require.Len(t, entries, CacheCap)
	assert.Equal(t, fmt.Sprintf("id-%d", CacheCap+4), entries[0].BackendID)
}

func TestCacheCorruptionDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history-cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	c := NewCache(path)
	assert.Empty(t, c.Load())

	// a corrupt file is simply overwritten by the next save
	require.NoError(t, c.Prepend(CachedResult{BackendID: "fresh"}))
	entries := c.Load()
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].BackendID)
}
