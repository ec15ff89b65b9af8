package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CacheEntry is one cached payload with the time it was written.
type CacheEntry struct {
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// ResponseCache persists remote responses keyed per principal, so data
// such as a writer's achievements stays readable while the backing
// service is unreachable. Keys are hashed before hitting the filesystem;
// principal identifiers never appear in file names.
type ResponseCache struct {
	cacheDir  string
	cacheFile string

	mu      sync.RWMutex
	entries map[string]*CacheEntry
}

// NewResponseCache creates a cache stored under baseDir/cache. The base
// is the application config directory, not the template library.
func NewResponseCache(baseDir string) *ResponseCache {
	cacheDir := filepath.Join(baseDir, "cache")
	return &ResponseCache{
		cacheDir:  cacheDir,
		cacheFile: filepath.Join(cacheDir, "responses.json"),
		entries:   make(map[string]*CacheEntry),
	}
}

// Load reads the cache file from disk. A missing or corrupted file
// yields an empty cache.
func (c *ResponseCache) Load() error {
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := os.ReadFile(c.cacheFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache file: %w", err)
	}

	c.mu.Lock()
	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.entries = make(map[string]*CacheEntry)
	}
	c.mu.Unlock()
	return nil
}

// Save writes the cache file to disk.
func (c *ResponseCache) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c.entries, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(c.cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// Get returns the cached entry for a key, if present.
func (c *ResponseCache) Get(key string) (*CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[hashKey(key)]
	return entry, ok
}

// Set stores a payload for a key and persists the cache.
func (c *ResponseCache) Set(key string, payload []byte) error {
	c.mu.Lock()
	c.entries[hashKey(key)] = &CacheEntry{
		Payload:   json.RawMessage(payload),
		FetchedAt: time.Now(),
	}
	c.mu.Unlock()
	return c.Save()
}

// Invalidate drops the entry for a key.
func (c *ResponseCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, hashKey(key))
	c.mu.Unlock()
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
