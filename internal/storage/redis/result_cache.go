// Package redis provides the Redis-backed result cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage"
)

// Redis key prefixes. Entries are written with no TTL: once a wallet
// exited a token, that fact never changes.
const (
	entryPrefix = "curve_exit:entry:"
	keysKey     = "curve_exit:stats:keys"
	hitsKey     = "curve_exit:stats:hits"
	missesKey   = "curve_exit:stats:misses"
)

// ResultCache implements storage.ResultCache on a Redis instance.
type ResultCache struct {
	rdb     *redis.Client
	maxKeys int64
}

// NewResultCache creates a Redis-backed result cache. maxKeys <= 0
// disables the cap check.
func NewResultCache(rdb *redis.Client, maxKeys int64) *ResultCache {
	return &ResultCache{rdb: rdb, maxKeys: maxKeys}
}

// Compile-time interface check.
var _ storage.ResultCache = (*ResultCache)(nil)

func entryKey(wallet, token string) string {
	return entryPrefix + storage.Key(wallet, token)
}

// Get retrieves the entry for a key. Returns ErrNotFound when absent.
func (c *ResultCache) Get(ctx context.Context, wallet, token string) (*domain.CacheEntry, error) {
	val, err := c.rdb.Get(ctx, entryKey(wallet, token)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		if err := c.rdb.Incr(ctx, missesKey).Err(); err != nil {
			return nil, fmt.Errorf("bump miss counter: %w", err)
		}
		return nil, storage.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(val, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal cache entry: %w", err)
	}

	if err := c.rdb.Incr(ctx, hitsKey).Err(); err != nil {
		return nil, fmt.Errorf("bump hit counter: %w", err)
	}
	return &entry, nil
}

// Set stores an entry with SETNX semantics: an existing key is left
// untouched. Inserting a new key beyond the cap returns ErrCacheFull.
func (c *ResultCache) Set(ctx context.Context, wallet, token string, entry *domain.CacheEntry) error {
	if entry == nil || wallet == "" || token == "" {
		return storage.ErrInvalidInput
	}

	if c.maxKeys > 0 {
		keys, err := c.rdb.Get(ctx, keysKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("read key count: %w", err)
		}
		if keys >= c.maxKeys {
			exists, err := c.Exists(ctx, wallet, token)
			if err != nil {
				return err
			}
			if !exists {
				return storage.ErrCacheFull
			}
		}
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	inserted, err := c.rdb.SetNX(ctx, entryKey(wallet, token), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if inserted {
		if err := c.rdb.Incr(ctx, keysKey).Err(); err != nil {
			return fmt.Errorf("bump key counter: %w", err)
		}
	}
	return nil
}

// Exists reports key presence without touching the hit/miss counters.
func (c *ResultCache) Exists(ctx context.Context, wallet, token string) (bool, error) {
	n, err := c.rdb.Exists(ctx, entryKey(wallet, token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Stats reports key count and hit/miss counters.
func (c *ResultCache) Stats(ctx context.Context) (domain.CacheStats, error) {
	var stats domain.CacheStats

	vals, err := c.rdb.MGet(ctx, keysKey, hitsKey, missesKey).Result()
	if err != nil {
		return stats, fmt.Errorf("redis mget stats: %w", err)
	}

	counters := []*int64{&stats.Keys, &stats.Hits, &stats.Misses}
	for i, v := range vals {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		var n int64
		if _, err := fmt.Sscan(s, &n); err == nil {
			*counters[i] = n
		}
	}

	return stats, nil
}
