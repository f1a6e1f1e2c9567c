package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage"
)

// ResultCache implements storage.ResultCache using PostgreSQL.
// Rows are insert-only: the table memoizes permanent facts, so a
// conflicting insert is silently skipped rather than updated.
type ResultCache struct {
	pool    *Pool
	maxKeys int64
}

// NewResultCache creates a Postgres-backed result cache. maxKeys <= 0
// disables the cap check.
func NewResultCache(pool *Pool, maxKeys int64) *ResultCache {
	return &ResultCache{pool: pool, maxKeys: maxKeys}
}

// Compile-time interface check.
var _ storage.ResultCache = (*ResultCache)(nil)

// Get retrieves the entry for a key. Returns ErrNotFound when absent.
func (c *ResultCache) Get(ctx context.Context, wallet, token string) (*domain.CacheEntry, error) {
	query := `
		SELECT result, badge_base64, cached_at
		FROM curve_exit_cache
		WHERE wallet = $1 AND token = $2
	`

	var (
		resultJSON  []byte
		badgeBase64 string
		cachedAt    int64
	)
	err := c.pool.QueryRow(ctx, query, wallet, token).Scan(&resultJSON, &badgeBase64, &cachedAt)
	if err != nil {
		if isNotFoundError(err) {
			if err := c.bumpCounter(ctx, "misses"); err != nil {
				return nil, err
			}
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get cache entry: %w", err)
	}

	var result domain.ClassificationResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached result: %w", err)
	}

	if err := c.bumpCounter(ctx, "hits"); err != nil {
		return nil, err
	}

	return &domain.CacheEntry{
		Result:      result,
		BadgeBase64: badgeBase64,
		CachedAt:    cachedAt,
	}, nil
}

// Set stores an entry. An existing key is left untouched; inserting a
// new key beyond the cap returns ErrCacheFull.
func (c *ResultCache) Set(ctx context.Context, wallet, token string, entry *domain.CacheEntry) error {
	if entry == nil || wallet == "" || token == "" {
		return storage.ErrInvalidInput
	}

	if c.maxKeys > 0 {
		exists, err := c.Exists(ctx, wallet, token)
		if err != nil {
			return err
		}
		if !exists {
			var keys int64
			if err := c.pool.QueryRow(ctx, `SELECT count(*) FROM curve_exit_cache`).Scan(&keys); err != nil {
				return fmt.Errorf("count cache keys: %w", err)
			}
			if keys >= c.maxKeys {
				return storage.ErrCacheFull
			}
		}
	}

	resultJSON, err := json.Marshal(entry.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	query := `
		INSERT INTO curve_exit_cache (wallet, token, result, badge_base64, cached_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (wallet, token) DO NOTHING
	`
	if _, err := c.pool.Exec(ctx, query, wallet, token, resultJSON, entry.BadgeBase64, entry.CachedAt); err != nil {
		return fmt.Errorf("insert cache entry: %w", err)
	}
	return nil
}

// Exists reports key presence without touching the hit/miss counters.
func (c *ResultCache) Exists(ctx context.Context, wallet, token string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM curve_exit_cache WHERE wallet = $1 AND token = $2)`
	if err := c.pool.QueryRow(ctx, query, wallet, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("check cache entry: %w", err)
	}
	return exists, nil
}

// Stats reports key count and hit/miss counters.
func (c *ResultCache) Stats(ctx context.Context) (domain.CacheStats, error) {
	var stats domain.CacheStats

	if err := c.pool.QueryRow(ctx, `SELECT count(*) FROM curve_exit_cache`).Scan(&stats.Keys); err != nil {
		return stats, fmt.Errorf("count cache keys: %w", err)
	}

	query := `SELECT hits, misses FROM curve_exit_cache_stats WHERE id = 1`
	if err := c.pool.QueryRow(ctx, query).Scan(&stats.Hits, &stats.Misses); err != nil {
		return stats, fmt.Errorf("read cache stats: %w", err)
	}

	return stats, nil
}

// bumpCounter increments one of the hit/miss counters.
func (c *ResultCache) bumpCounter(ctx context.Context, column string) error {
	// column is a trusted literal, never user input
	query := fmt.Sprintf(`UPDATE curve_exit_cache_stats SET %s = %s + 1 WHERE id = 1`, column, column)
	if _, err := c.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("bump %s counter: %w", column, err)
	}
	return nil
}
