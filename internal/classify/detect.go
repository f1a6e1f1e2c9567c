package classify

import (
	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/registry"
)

// DetectSell decides whether one transaction constitutes a qualifying
// sell of the target token by the wallet. Returns nil when any gate
// fails. Pure function; no side effects.
//
// Gates, in order, each a hard veto:
//  1. the transaction did not fail;
//  2. the wallet's token balance strictly decreased;
//  3. the wallet received value in exchange: positive native, wrapped
//     SOL, or USDC delta (otherwise this is a transfer-out, not a sale);
//  4. at least one known venue scored — an unattributable sell cannot
//     be classified.
func DetectSell(reg *registry.Registry, tx *domain.TransactionRecord, wallet, token string) *domain.SellDetection {
	if tx.Failed() {
		return nil
	}

	tokenDelta := TokenDelta(tx, wallet, token)
	if tokenDelta >= 0 {
		return nil
	}

	solDelta := NativeDelta(tx, wallet)
	wsolDelta := TokenDelta(tx, wallet, registry.WrappedSOL)
	usdcDelta := TokenDelta(tx, wallet, registry.USDC)
	if solDelta <= 0 && wsolDelta <= 0 && usdcDelta <= 0 {
		return nil
	}

	venueScores := ScoreVenues(reg, tx)
	if len(venueScores) == 0 {
		return nil
	}

	return &domain.SellDetection{
		Signature:    tx.Signature,
		Timestamp:    tx.Timestamp,
		Slot:         tx.Slot,
		TokenDelta:   tokenDelta,
		SolDelta:     solDelta,
		VenueScores:  venueScores,
		WinningVenue: venueScores[0],
	}
}
