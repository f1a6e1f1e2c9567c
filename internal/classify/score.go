package classify

import (
	"sort"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/registry"
)

// Attribution weights for the three evidence signals. The provider's
// own source classification already accounts for full instruction
// context, so it outweighs direct instruction evidence; an inner
// instruction (nested inside another program's call) outweighs a bare
// top-level reference, which many transactions carry incidentally.
const (
	WeightSource           = 100
	WeightInnerInstruction = 50
	WeightInstruction      = 10
)

// MaxScore is the highest total a single venue can reach: all three
// signals firing once each.
const MaxScore = WeightSource + WeightInnerInstruction + WeightInstruction

// ScoreVenues computes the weighted attribution score of every known
// venue for one transaction. Each signal contributes at most once per
// venue, however many matching occurrences exist within it.
//
// The result contains only venues with score > 0, sorted by score
// descending; equal scores are broken by registration order, so the
// first-registered venue wins a true tie.
func ScoreVenues(reg *registry.Registry, tx *domain.TransactionRecord) []domain.VenueScore {
	scores := make(map[string]*domain.VenueScore, 3)
	for _, id := range reg.ProgramIDs() {
		scores[id] = &domain.VenueScore{ProgramID: id}
	}

	if programID, ok := reg.BySourceTag(tx.Source); ok {
		entry := scores[programID]
		entry.Score += WeightSource
		entry.Sources = append(entry.Sources, "helius_source:"+tx.Source)
	}

	innerSeen := make(map[string]bool, 3)
	for _, set := range tx.InnerInstructions {
		for _, ix := range set.Instructions {
			if !reg.Known(ix.ProgramID) || innerSeen[ix.ProgramID] {
				continue
			}
			innerSeen[ix.ProgramID] = true
			entry := scores[ix.ProgramID]
			entry.Score += WeightInnerInstruction
			entry.Sources = append(entry.Sources, "inner_ix:"+shortID(ix.ProgramID))
		}
	}

	topSeen := make(map[string]bool, 3)
	for _, ix := range tx.Instructions {
		if !reg.Known(ix.ProgramID) || topSeen[ix.ProgramID] {
			continue
		}
		topSeen[ix.ProgramID] = true
		entry := scores[ix.ProgramID]
		entry.Score += WeightInstruction
		entry.Sources = append(entry.Sources, "instruction:"+shortID(ix.ProgramID))
	}

	var result []domain.VenueScore
	for _, id := range reg.ProgramIDs() {
		if scores[id].Score > 0 {
			result = append(result, *scores[id])
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return reg.Rank(result[i].ProgramID) < reg.Rank(result[j].ProgramID)
	})

	return result
}

// shortID abbreviates a program ID for evidence tags.
func shortID(programID string) string {
	if len(programID) > 8 {
		return programID[:8]
	}
	return programID
}
