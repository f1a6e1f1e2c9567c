// Package storage defines the persistence boundary of the service: the
// permanent result cache and the optional classification audit log.
package storage

import (
	"context"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
)

// ResultCache stores finalized classifications per (wallet, token),
// forever. Keys are case-sensitive; entries are immutable once written,
// so a Set of an already-present key is a no-op, never an update.
type ResultCache interface {
	// Get retrieves the entry for a key. Returns ErrNotFound when absent.
	Get(ctx context.Context, wallet, token string) (*domain.CacheEntry, error)

	// Set stores an entry. Returns ErrCacheFull when the key cap is
	// reached; setting an existing key is a no-op.
	Set(ctx context.Context, wallet, token string, entry *domain.CacheEntry) error

	// Exists reports whether a key is present without counting a hit or miss.
	Exists(ctx context.Context, wallet, token string) (bool, error)

	// Stats reports key count and hit/miss counters.
	Stats(ctx context.Context) (domain.CacheStats, error)
}

// AuditLog records freshly computed classifications for offline
// analysis. Implementations are insert-only.
type AuditLog interface {
	// Record appends one audit record.
	Record(ctx context.Context, rec *domain.AuditRecord) error
}

// Key builds the canonical case-sensitive cache key for a pair.
func Key(wallet, token string) string {
	return wallet + ":" + token
}
