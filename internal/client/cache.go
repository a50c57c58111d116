package client

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

// CacheCap bounds the local shadow cache to the most recent saves.
const CacheCap = 20

// CachedResult is one shadow copy of a successfully created record. The
// cache is never authoritative; the backend copy is.
type CachedResult struct {
	SavedAt   time.Time        `json:"savedAt"`
	Symptoms  string           `json:"symptoms"`
	Result    triage.RawResult `json:"result"`
	BackendID string           `json:"backendId"`
	CreatedAt string           `json:"createdAt"`
}

// Cache is a bounded, most-recent-first list of shadow copies persisted to
// a single local file. Corruption on read degrades to an empty cache;
// failures are never fatal to the rest of the application. Single writer
// at a time by construction (all mutation goes through the mutex).
type Cache struct {
	mu   sync.Mutex
	path string
}

func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Load reads the cached entries, newest first. A missing or corrupt file
// yields an empty list, never an error.
func (c *Cache) Load() []CachedResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Prepend adds one entry at the front and truncates to the cap. The write
// replaces the whole file; a partial past state is never left behind on
// encode failure.
func (c *Cache) Prepend(entry CachedResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := append([]CachedResult{entry}, c.load()...)
	if len(entries) > CacheCap {
		entries = entries[:CacheCap]
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o600)
}

func (c *Cache) load() []CachedResult {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}
	var entries []CachedResult
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}
