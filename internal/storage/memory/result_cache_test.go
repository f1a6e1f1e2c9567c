package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage"
)

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

func TestResultCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewResultCache(10)

	if _, err := c.Get(ctx, "walletA", "tokenA"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty cache, got %v", err)
	}

	if err := c.Set(ctx, "walletA", "tokenA", testEntry("sig1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := c.Get(ctx, "walletA", "tokenA")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Result.SellSignature != "sig1" {
		t.Errorf("expected sig1, got %s", got.Result.SellSignature)
	}
}

func TestResultCache_DuplicateSetIsNoOp(t *testing.T) {
	ctx := context.Background()
	c := NewResultCache(10)

	if err := c.Set(ctx, "walletA", "tokenA", testEntry("sig1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := c.Set(ctx, "walletA", "tokenA", testEntry("sig2")); err != nil {
		t.Fatalf("duplicate set must not error: %v", err)
	}

	got, err := c.Get(ctx, "walletA", "tokenA")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Result.SellSignature != "sig1" {
		t.Errorf("first write must win, got %s", got.Result.SellSignature)
	}
}

func TestResultCache_CopyOnRead(t *testing.T) {
	ctx := context.Background()
	c := NewResultCache(10)

	if err := c.Set(ctx, "walletA", "tokenA", testEntry("sig1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	first, _ := c.Get(ctx, "walletA", "tokenA")
	first.Result.SellSignature = "mutated"

	second, _ := c.Get(ctx, "walletA", "tokenA")
	if second.Result.SellSignature != "sig1" {
		t.Error("caller mutation leaked into the cache")
	}
}

func TestResultCache_FullCache(t *testing.T) {
	ctx := context.Background()
	c := NewResultCache(2)

	for i := 0; i < 2; i++ {
		wallet := fmt.Sprintf("wallet%d", i)
		if err := c.Set(ctx, wallet, "tokenA", testEntry("sig")); err != nil {
			t.Fatalf("set %d failed: %v", i, err)
		}
	}

	if err := c.Set(ctx, "wallet2", "tokenA", testEntry("sig")); !errors.Is(err, storage.ErrCacheFull) {
		t.Fatalf("expected ErrCacheFull, got %v", err)
	}

	// A duplicate of an existing key is still a no-op at cap, not a
	// capacity error.
	if err := c.Set(ctx, "wallet0", "tokenA", testEntry("sig")); err != nil {
		t.Errorf("duplicate set at cap must not error: %v", err)
	}
}

func TestResultCache_InvalidInput(t *testing.T) {
	ctx := context.Background()
	c := NewResultCache(10)

	if err := c.Set(ctx, "", "tokenA", testEntry("sig")); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty wallet, got %v", err)
	}
	if err := c.Set(ctx, "walletA", "tokenA", nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil entry, got %v", err)
	}
}

func TestResultCache_Stats(t *testing.T) {
	ctx := context.Background()
	c := NewResultCache(10)

	_, _ = c.Get(ctx, "walletA", "tokenA") // miss
	_ = c.Set(ctx, "walletA", "tokenA", testEntry("sig"))
	_, _ = c.Get(ctx, "walletA", "tokenA") // hit
	_, _ = c.Get(ctx, "walletA", "tokenA") // hit

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Keys != 1 || stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestResultCache_Exists(t *testing.T) {
	ctx := context.Background()
	c := NewResultCache(10)

	ok, err := c.Exists(ctx, "walletA", "tokenA")
	if err != nil || ok {
		t.Fatalf("expected absent, got ok=%v err=%v", ok, err)
	}

	_ = c.Set(ctx, "walletA", "tokenA", testEntry("sig"))

	ok, err = c.Exists(ctx, "walletA", "tokenA")
	if err != nil || !ok {
		t.Fatalf("expected present, got ok=%v err=%v", ok, err)
	}

	// Exists must not move the counters.
	stats, _ := c.Stats(ctx)
	if stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("exists must not touch counters: %+v", stats)
	}
}
