package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage"
)

// setupTestRedis starts a Redis container and returns a connected
// client plus a cleanup function.
func setupTestRedis(t *testing.T) (*goredis.Client, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	require.NoError(t, rdb.Ping(ctx).Err())

	cleanup := func() {
		_ = rdb.Close()
		_ = container.Terminate(ctx)
	}

	return rdb, cleanup
}

func testEntry(sig string) *domain.CacheEntry {
	return &domain.CacheEntry{
		Result: domain.ClassificationResult{
			Wallet:        "walletA",
			Token:         "tokenA",
			ExitType:      "Curve Jeet",
			Confidence:    domain.ConfidenceHigh,
			SellSignature: sig,
		},
		BadgeBase64: "data:image/png;base64,xxxx",
		CachedAt:    1700000000,
	}
}

func TestResultCache_SetAndGet(t *testing.T) {
	rdb, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cache := NewResultCache(rdb, 0)

	_, err := cache.Get(ctx, "walletA", "tokenA")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, cache.Set(ctx, "walletA", "tokenA", testEntry("sig1")))

	got, err := cache.Get(ctx, "walletA", "tokenA")
	require.NoError(t, err)
	assert.Equal(t, "sig1", got.Result.SellSignature)
	assert.Equal(t, "Curve Jeet", got.Result.ExitType)

	// No TTL on the entry.
	ttl, err := rdb.TTL(ctx, entryKey("walletA", "tokenA")).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)
}

func TestResultCache_FirstWriteWins(t *testing.T) {
	rdb, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cache := NewResultCache(rdb, 0)

	require.NoError(t, cache.Set(ctx, "walletA", "tokenA", testEntry("sig1")))
	require.NoError(t, cache.Set(ctx, "walletA", "tokenA", testEntry("sig2")))

	got, err := cache.Get(ctx, "walletA", "tokenA")
	require.NoError(t, err)
	assert.Equal(t, "sig1", got.Result.SellSignature)
}

func TestResultCache_CacheFull(t *testing.T) {
	rdb, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cache := NewResultCache(rdb, 2)

	for i := 0; i < 2; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("wallet%d", i), "tokenA", testEntry("sig")))
	}

	err := cache.Set(ctx, "wallet2", "tokenA", testEntry("sig"))
	require.ErrorIs(t, err, storage.ErrCacheFull)

	// Existing keys still write through as a no-op at cap.
	require.NoError(t, cache.Set(ctx, "wallet0", "tokenA", testEntry("sig")))
}

func TestResultCache_Stats(t *testing.T) {
	rdb, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cache := NewResultCache(rdb, 0)

	_, err := cache.Get(ctx, "walletA", "tokenA") // miss
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, cache.Set(ctx, "walletA", "tokenA", testEntry("sig")))

	_, err = cache.Get(ctx, "walletA", "tokenA") // hit
	require.NoError(t, err)

	stats, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Keys)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}
