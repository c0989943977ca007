package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultCacheDir returns the default cache directory, honoring
// XDG_CACHE_HOME before falling back to ~/.cache.
func DefaultCacheDir() (string, error) {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "regexle"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cache", "regexle"), nil
}

// FileCache is a file-based cache keyed by hex-encoded filenames under a
// single directory. Entry age comes from file modification time.
type FileCache struct {
	dir  string
	mu   sync.RWMutex
	perm os.FileMode
}

// FileCacheOption configures a FileCache.
type FileCacheOption func(*FileCache)

// WithFileMode sets the file permissions for cached files.
func WithFileMode(mode os.FileMode) FileCacheOption {
	return func(c *FileCache) {
		c.perm = mode
	}
}

// NewFileCache creates a file-based cache rooted at dir, creating the
// directory when needed.
func NewFileCache(dir string, opts ...FileCacheOption) (*FileCache, error) {
	c := &FileCache{
		dir:  dir,
		perm: 0600,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return c, nil
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, EncodeKey(key))
}

// Get retrieves a value, expiring entries older than maxAge on the way.
func (c *FileCache) Get(key string, maxAge time.Duration) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.path(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, ErrNoCachedValue
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat cache file: %w", err)
	}
	if maxAge > 0 && time.Since(info.ModTime()) > maxAge {
		_ = os.Remove(path)
		return nil, ErrNoCachedValue
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from an encoded key under c.dir
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return data, nil
}

// Put stores a value, writing through a temp file and renaming for
// atomicity.
func (c *FileCache) Put(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.path(key)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, value, c.perm); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}

// Remove removes a value.
func (c *FileCache) Remove(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

// Purge clears every entry in the cache directory.
func (c *FileCache) Purge() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove cache file %s: %w", entry.Name(), err)
		}
	}
	return nil
}
