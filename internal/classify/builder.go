package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/registry"
)

// ErrUnknownVenue is returned when a winning venue has no registry
// entry. The registry and the scorer share the same venue universe, so
// this signals an internal-consistency bug, never a data problem.
var ErrUnknownVenue = errors.New("winning venue has no registry entry")

// Confidence tier thresholds over the winning venue score. The floor
// for any scored venue is the top-level instruction weight, so LOW
// covers [10, 50).
const (
	ConfidenceHighMin   = 100
	ConfidenceMediumMin = 50
)

// MaxSymbolLen caps the display symbol length on the badge.
const MaxSymbolLen = 10

// MetadataProvider resolves token display metadata by mint address.
type MetadataProvider interface {
	GetAsset(ctx context.Context, mint string) (*domain.TokenMetadata, error)
}

// Builder assembles the final classification from a sell detection.
type Builder struct {
	reg      *registry.Registry
	metadata MetadataProvider
	log      zerolog.Logger
}

// NewBuilder creates a result builder.
func NewBuilder(reg *registry.Registry, metadata MetadataProvider, log zerolog.Logger) *Builder {
	return &Builder{
		reg:      reg,
		metadata: metadata,
		log:      log.With().Str("component", "builder").Logger(),
	}
}

// Build maps a detection's winning venue to registry metadata, derives
// the confidence tier, resolves the token display symbol, and assembles
// the immutable classification result.
func (b *Builder) Build(ctx context.Context, wallet, token string, det *domain.SellDetection) (*domain.ClassificationResult, error) {
	venue, ok := b.reg.Get(det.WinningVenue.ProgramID)
	if !ok {
		return nil, fmt.Errorf("%w: %s (score %d)", ErrUnknownVenue, det.WinningVenue.ProgramID, det.WinningVenue.Score)
	}

	return &domain.ClassificationResult{
		Wallet:        wallet,
		Token:         token,
		TokenSymbol:   b.tokenSymbol(ctx, token),
		ExitType:      venue.ExitType,
		ExitVenue:     venue.ExitVenue,
		Description:   venue.Description,
		Confidence:    ConfidenceFor(det.WinningVenue.Score),
		SellSignature: det.Signature,
		SellTimestamp: det.Timestamp,
		BadgeColor:    venue.BadgeColor,
		BadgeTitle:    venue.BadgeTitle,
	}, nil
}

// ConfidenceFor derives the confidence tier from a winning score.
func ConfidenceFor(score int) domain.Confidence {
	switch {
	case score >= ConfidenceHighMin:
		return domain.ConfidenceHigh
	case score >= ConfidenceMediumMin:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// tokenSymbol resolves the display symbol for a mint, degrading to a
// truncated form of the address. Metadata failures are display-only and
// never fail the classification.
func (b *Builder) tokenSymbol(ctx context.Context, mint string) string {
	meta, err := b.metadata.GetAsset(ctx, mint)
	if err != nil {
		b.log.Warn().Err(err).Str("mint", mint).Msg("metadata lookup failed, using truncated mint")
		return TruncateAddress(mint)
	}

	symbol := strings.ToUpper(strings.TrimSpace(meta.Symbol))
	if symbol == "" || symbol == "UNKNOWN" {
		return TruncateAddress(mint)
	}
	if len(symbol) > MaxSymbolLen {
		symbol = symbol[:MaxSymbolLen]
	}
	return symbol
}

// TruncateAddress shortens an address to its first and last four
// characters joined by an ellipsis.
func TruncateAddress(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return addr[:4] + "..." + addr[len(addr)-4:]
}
