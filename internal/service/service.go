// Package service orchestrates one classification request: cache
// lookup, history scan, result building, badge rendering, and the
// permanent cache write.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Radz112/bonding-curve-exit-badge/internal/badge"
	"github.com/Radz112/bonding-curve-exit-badge/internal/classify"
	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/registry"
	"github.com/Radz112/bonding-curve-exit-badge/internal/scan"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage"
)

// DefaultTimeout is the per-request classification budget.
const DefaultTimeout = 25 * time.Second

// Service runs classification requests end to end.
type Service struct {
	reg      *registry.Registry
	scanner  *scan.Scanner
	builder  *classify.Builder
	renderer *badge.Renderer
	cache    storage.ResultCache
	audit    storage.AuditLog // optional
	timeout  time.Duration
	log      zerolog.Logger
}

// Options configures a Service.
type Options struct {
	Registry *registry.Registry
	Scanner  *scan.Scanner
	Builder  *classify.Builder
	Renderer *badge.Renderer
	Cache    storage.ResultCache
	Audit    storage.AuditLog // nil disables audit logging
	Timeout  time.Duration    // 0 means DefaultTimeout
	Log      zerolog.Logger
}

// New creates a classification service.
func New(opts Options) *Service {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		reg:      opts.Registry,
		scanner:  opts.Scanner,
		builder:  opts.Builder,
		renderer: opts.Renderer,
		cache:    opts.Cache,
		audit:    opts.Audit,
		timeout:  timeout,
		log:      opts.Log.With().Str("component", "service").Logger(),
	}
}

// Classify returns the cache entry for a (wallet, token) pair,
// computing and caching it on a miss. The second return reports whether
// the entry was served from cache. On failure the error is a *Error
// carrying the taxonomy kind.
func (s *Service) Classify(ctx context.Context, wallet, token string) (*domain.CacheEntry, bool, error) {
	cached, err := s.cache.Get(ctx, wallet, token)
	if err == nil {
		return cached, true, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, &Error{Kind: KindInternal, Message: fmt.Sprintf("cache lookup failed: %v", err), Err: err}
	}

	start := time.Now()

	// The budget covers the whole scan-plus-render pipeline; on expiry
	// the partial work is discarded, not cached.
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	det, pagesScanned, err := s.scanner.FindFirstSell(ctx, wallet, token)
	if err != nil {
		return nil, false, classifyError(err)
	}

	result, err := s.builder.Build(ctx, wallet, token, det)
	if err != nil {
		return nil, false, classifyError(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, false, classifyError(err)
	}

	badgeBase64, err := s.renderer.Render(badge.InputFrom(result))
	if err != nil {
		return nil, false, &Error{Kind: KindInternal, Message: fmt.Sprintf("badge rendering failed: %v", err), Err: err}
	}

	entry := &domain.CacheEntry{
		Result:      *result,
		BadgeBase64: badgeBase64,
		CachedAt:    time.Now().Unix(),
	}

	// A full cache only loses memoization, never the response. Two
	// concurrent requests for the same key may both land here; the
	// second Set is a no-op on an identical immutable value.
	if err := s.cache.Set(ctx, wallet, token, entry); err != nil {
		if errors.Is(err, storage.ErrCacheFull) {
			s.log.Warn().Str("wallet", wallet).Str("token", token).Msg("result cache full, entry not memoized")
		} else {
			s.log.Error().Err(err).Str("wallet", wallet).Str("token", token).Msg("cache write failed")
		}
	}

	s.recordAudit(wallet, token, result, det, pagesScanned, time.Since(start))

	return entry, false, nil
}

// CacheStats reports result cache usage.
func (s *Service) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	return s.cache.Stats(ctx)
}

// Venues returns the registered venue descriptors.
func (s *Service) Venues() []domain.VenueDescriptor {
	return s.reg.Venues()
}

// recordAudit appends a best-effort audit record. Audit failures are
// logged, never surfaced: the classification already succeeded.
func (s *Service) recordAudit(wallet, token string, result *domain.ClassificationResult, det *domain.SellDetection, pagesScanned int, elapsed time.Duration) {
	if s.audit == nil {
		return
	}

	// Detached context: the request deadline must not cancel the write.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec := &domain.AuditRecord{
		Wallet:           wallet,
		Token:            token,
		ExitType:         result.ExitType,
		Confidence:       result.Confidence,
		WinningProgramID: det.WinningVenue.ProgramID,
		WinningScore:     det.WinningVenue.Score,
		PagesScanned:     pagesScanned,
		DurationMs:       elapsed.Milliseconds(),
		ComputedAt:       time.Now().Unix(),
	}
	if err := s.audit.Record(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("wallet", wallet).Str("token", token).Msg("audit record failed")
	}
}
