package loader

import (
	"context"
	"errors"
	"sync"
)

// ErrCacheMiss is returned by Cache.Get when no usable entry exists.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores loaded resources by URL. Get returns ErrCacheMiss (possibly
// wrapped) when nothing is stored; any other error is treated as a cache
// outage and the loader falls back to fetching.
type Cache interface {
	Get(ctx context.Context, url string) (*Resource, error)
	Set(ctx context.Context, url string, res *Resource) error
	Delete(ctx context.Context, url string) error
}

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Resource
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*Resource)}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, url string) (*Resource, error) {
	c.mu.RLock()
	res, ok := c.entries[url]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}

	hit := *res
	hit.Source = SourceCache
	return &hit, nil
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, url string, res *Resource) error {
	c.mu.Lock()
	c.entries[url] = res
	c.mu.Unlock()
	return nil
}

// Delete implements Cache.
func (c *MemoryCache) Delete(_ context.Context, url string) error {
	c.mu.Lock()
	delete(c.entries, url)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
