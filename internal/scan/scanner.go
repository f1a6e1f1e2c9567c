// Package scan pages through a wallet's transaction history looking for
// the first qualifying sell of a token.
package scan

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Radz112/bonding-curve-exit-badge/internal/classify"
	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/registry"
)

// DefaultMaxPages bounds the history scan.
const DefaultMaxPages = 10

// HistorySource pages a wallet's transaction history newest-first.
// An empty before cursor starts at the most recent transaction; an
// empty result page marks the end of history.
type HistorySource interface {
	Transactions(ctx context.Context, wallet, before string) ([]domain.TransactionRecord, error)
}

// NoSellError reports that no qualifying sell was found within the scan
// bounds. It is a classification outcome, not a transport failure.
type NoSellError struct {
	Wallet       string
	Token        string
	PagesScanned int
}

func (e *NoSellError) Error() string {
	return fmt.Sprintf("no sell transaction found for token %s in wallet %s: scanned %d pages", e.Token, e.Wallet, e.PagesScanned)
}

// Scanner applies the sell detector to a wallet's paged history.
type Scanner struct {
	source   HistorySource
	reg      *registry.Registry
	maxPages int
	log      zerolog.Logger
}

// Options configures a Scanner.
type Options struct {
	Source   HistorySource
	Registry *registry.Registry
	MaxPages int // 0 means DefaultMaxPages
	Log      zerolog.Logger
}

// New creates a history scanner.
func New(opts Options) *Scanner {
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Scanner{
		source:   opts.Source,
		reg:      opts.Registry,
		maxPages: maxPages,
		log:      opts.Log.With().Str("component", "scanner").Logger(),
	}
}

// FindFirstSell scans the wallet's history in provider-delivered order
// and returns the first qualifying sell of the token, plus the number
// of pages fetched. Order matters, not maximality: a later page is
// never fetched once a match is found.
//
// Provider errors propagate immediately; the scanner never retries a
// failed page call. When the bounds are exhausted without a match the
// error is a *NoSellError.
func (s *Scanner) FindFirstSell(ctx context.Context, wallet, token string) (*domain.SellDetection, int, error) {
	var before string
	pagesScanned := 0

	for pagesScanned < s.maxPages {
		if err := ctx.Err(); err != nil {
			return nil, pagesScanned, err
		}

		page, err := s.source.Transactions(ctx, wallet, before)
		if err != nil {
			return nil, pagesScanned, fmt.Errorf("fetch history page %d: %w", pagesScanned+1, err)
		}
		if len(page) == 0 {
			break
		}
		pagesScanned++

		for i := range page {
			if det := classify.DetectSell(s.reg, &page[i], wallet, token); det != nil {
				s.log.Debug().
					Str("wallet", wallet).
					Str("token", token).
					Str("signature", det.Signature).
					Int("pages", pagesScanned).
					Msg("qualifying sell found")
				return det, pagesScanned, nil
			}
		}

		// Oldest signature of this page is the cursor for the next.
		before = page[len(page)-1].Signature
	}

	return nil, pagesScanned, &NoSellError{Wallet: wallet, Token: token, PagesScanned: pagesScanned}
}
