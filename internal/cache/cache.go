// Package cache stores serialized analysis reports between runs so repeated
// scans of unchanged files skip re-analysis. Reports themselves stay
// immutable values; caching lives entirely outside the analysis core.
package cache

import (
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// DurationOneDay is the default report retention window.
const DurationOneDay = 24 * time.Hour

// Errors returned by cache implementations.
var (
	ErrNoCachedValue = errors.New("no cached value")
	ErrCacheDisabled = errors.New("cache is disabled")
)

// Cache is the interface for cache implementations.
type Cache interface {
	// Get retrieves a value. Returns ErrNoCachedValue if the key does not
	// exist or has expired.
	Get(key string, maxAge time.Duration) ([]byte, error)

	// Put stores a value.
	Put(key string, value []byte) error

	// Remove removes a value.
	Remove(key string) error

	// Purge clears all cached values.
	Purge() error
}

// EncodeKey encodes a cache key to a safe filename.
func EncodeKey(key string) string {
	return hex.EncodeToString([]byte(key))
}

// NoOpCache is the implementation used when caching is disabled.
type NoOpCache struct{}

// Get always misses.
func (NoOpCache) Get(string, time.Duration) ([]byte, error) { return nil, ErrCacheDisabled }

// Put discards the value.
func (NoOpCache) Put(string, []byte) error { return nil }

// Remove does nothing.
func (NoOpCache) Remove(string) error { return nil }

// Purge does nothing.
func (NoOpCache) Purge() error { return nil }

// MemoryCache is an in-memory cache, used mainly in tests.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
}

type memoryEntry struct {
	data    []byte
	created time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memoryEntry)}
}

// Get retrieves a value from the memory cache.
func (c *MemoryCache) Get(key string, maxAge time.Duration) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrNoCachedValue
	}
	if maxAge > 0 && time.Since(entry.created) > maxAge {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, ErrNoCachedValue
	}
	return entry.data, nil
}

// Put stores a value in the memory cache.
func (c *MemoryCache) Put(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = memoryEntry{data: value, created: time.Now()}
	return nil
}

// Remove removes a value from the memory cache.
func (c *MemoryCache) Remove(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// Purge clears the memory cache.
func (c *MemoryCache) Purge() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]memoryEntry)
	return nil
}
