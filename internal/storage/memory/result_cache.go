// Package memory provides the in-memory result cache backend.
package memory

import (
	"context"
	"sync"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage"
)

// DefaultMaxKeys bounds the cache when no explicit cap is given.
const DefaultMaxKeys = 100000

// ResultCache is an in-memory implementation of storage.ResultCache.
// Entries live for the process lifetime; there is no TTL and no
// eviction.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.CacheEntry
	maxKeys int
	hits    int64
	misses  int64
}

// NewResultCache creates an in-memory result cache. maxKeys <= 0 uses
// DefaultMaxKeys.
func NewResultCache(maxKeys int) *ResultCache {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	return &ResultCache{
		entries: make(map[string]*domain.CacheEntry),
		maxKeys: maxKeys,
	}
}

// Get retrieves the entry for a key. Returns ErrNotFound when absent.
func (c *ResultCache) Get(_ context.Context, wallet, token string) (*domain.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[storage.Key(wallet, token)]
	if !ok {
		c.misses++
		return nil, storage.ErrNotFound
	}
	c.hits++

	entryCopy := *entry
	return &entryCopy, nil
}

// Set stores an entry. Setting an existing key is a no-op; inserting
// beyond the key cap returns ErrCacheFull.
func (c *ResultCache) Set(_ context.Context, wallet, token string, entry *domain.CacheEntry) error {
	if entry == nil || wallet == "" || token == "" {
		return storage.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := storage.Key(wallet, token)
	if _, ok := c.entries[key]; ok {
		return nil
	}
	if len(c.entries) >= c.maxKeys {
		return storage.ErrCacheFull
	}

	entryCopy := *entry
	c.entries[key] = &entryCopy
	return nil
}

// Exists reports key presence without touching the hit/miss counters.
func (c *ResultCache) Exists(_ context.Context, wallet, token string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.entries[storage.Key(wallet, token)]
	return ok, nil
}

// Stats reports key count and hit/miss counters.
func (c *ResultCache) Stats(_ context.Context) (domain.CacheStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return domain.CacheStats{
		Keys:   int64(len(c.entries)),
		Hits:   c.hits,
		Misses: c.misses,
	}, nil
}

// Compile-time interface check.
var _ storage.ResultCache = (*ResultCache)(nil)
