// Package registry holds the closed set of trading venues a sell can be
// attributed to, plus the well-known mints the detector needs.
package registry

import (
	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
)

// Known venue program IDs.
const (
	// PumpFun is the pump.fun bonding curve program ID.
	PumpFun = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	// PumpSwap is the PumpSwap AMM program ID (post-migration).
	PumpSwap = "pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA"
	// RaydiumV4 is the legacy Raydium AMM v4 program ID.
	RaydiumV4 = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
)

// Well-known mints used by the sell detector's inflow gate.
const (
	// WrappedSOL is the wSOL mint.
	WrappedSOL = "So11111111111111111111111111111111111111112"
	// USDC is the USDC mint.
	USDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// Registry is the fixed mapping from venue program ID to descriptor.
// Iteration order equals registration order; the scorer's tie-break
// depends on it.
type Registry struct {
	order     []string
	byProgram map[string]domain.VenueDescriptor
	bySource  map[string]string // provider source tag -> program ID
}

// New creates the registry with the three known venues registered in
// fixed order: pump.fun curve, PumpSwap AMM, Raydium V4.
func New() *Registry {
	r := &Registry{
		byProgram: make(map[string]domain.VenueDescriptor),
		bySource:  make(map[string]string),
	}

	r.register(domain.VenueDescriptor{
		ProgramID:   PumpFun,
		ExitType:    "Curve Jeet",
		ExitVenue:   "Pump.fun Bonding Curve",
		Description: "You sold before the migration. Weak aura.",
		BadgeColor:  domain.BadgeRed,
		BadgeTitle:  "PRE-MIGRATION EXIT",
	})
	r.register(domain.VenueDescriptor{
		ProgramID:   PumpSwap,
		ExitType:    "PumpSwap Graduate",
		ExitVenue:   "PumpSwap AMM",
		Description: "You held through migration. Diamond hands on PumpSwap.",
		BadgeColor:  domain.BadgeGold,
		BadgeTitle:  "PUMPSWAP GRADUATE",
	})
	r.register(domain.VenueDescriptor{
		ProgramID:   RaydiumV4,
		ExitType:    "Raydium OG",
		ExitVenue:   "Raydium V4 AMM",
		Description: "You held through legacy Raydium migration. True OG status.",
		BadgeColor:  domain.BadgePlatinum,
		BadgeTitle:  "RAYDIUM OG",
	})

	// Provider source tags as reported by the history API.
	r.bySource["PUMP_FUN"] = PumpFun
	r.bySource["PUMP_SWAP"] = PumpSwap
	r.bySource["RAYDIUM"] = RaydiumV4

	return r
}

func (r *Registry) register(v domain.VenueDescriptor) {
	r.order = append(r.order, v.ProgramID)
	r.byProgram[v.ProgramID] = v
}

// Get returns the descriptor for a program ID.
func (r *Registry) Get(programID string) (domain.VenueDescriptor, bool) {
	v, ok := r.byProgram[programID]
	return v, ok
}

// Known reports whether a program ID belongs to a registered venue.
func (r *Registry) Known(programID string) bool {
	_, ok := r.byProgram[programID]
	return ok
}

// ProgramIDs returns all venue program IDs in registration order.
func (r *Registry) ProgramIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Rank returns a venue's registration index, or len(order) for unknown
// program IDs. Lower rank wins score ties.
func (r *Registry) Rank(programID string) int {
	for i, id := range r.order {
		if id == programID {
			return i
		}
	}
	return len(r.order)
}

// BySourceTag maps a provider source tag to a venue program ID.
func (r *Registry) BySourceTag(tag string) (string, bool) {
	id, ok := r.bySource[tag]
	return id, ok
}

// Venues returns all descriptors in registration order.
func (r *Registry) Venues() []domain.VenueDescriptor {
	venues := make([]domain.VenueDescriptor, 0, len(r.order))
	for _, id := range r.order {
		venues = append(venues, r.byProgram[id])
	}
	return venues
}
