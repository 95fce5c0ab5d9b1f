package engine

import (
	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
)

// RankEffect resolves a judge rank label to its economic effect row.
// Unrecognized labels fall back to the mid-tier row, never to an error:
// the judge collaborator's output is untrusted.
func RankEffect(rank string) constants.RankEffect {
	if effect, ok := constants.RankEffects[rank]; ok {
		return effect
	}
	return constants.RankEffects[constants.RankMid]
}

// ProductionCost prices a studio commit. A retry is a flat re-roll price
// regardless of target market; a fresh production pays the base cost plus
// the market surcharge.
func ProductionCost(market domain.MarketType, retry bool) int64 {
	if retry {
		return constants.Production.RetryCost
	}

	cost := constants.Production.BaseCost
	switch market {
	case domain.MarketJapan:
		cost += constants.Production.JapanSurcharge
	case domain.MarketGlobal:
		cost += constants.Production.GlobalSurcharge
	}
	return cost
}

// EventChance computes the crisis-trigger probability for the current group.
// Risk bonuses are additive per qualifying member with no per-category cap;
// only the final probability is capped. Monotonically non-decreasing in the
// number of qualifying members.
func EventChance(group []*domain.Idol) float64 {
	chance := constants.Event.BaseChance

	for _, member := range group {
		if member == nil {
			continue
		}
		if member.Risk.Scandal > constants.Event.ScandalThreshold {
			chance += constants.Event.ScandalBonus
		}
		if member.Risk.Romance > constants.Event.RomanceThreshold {
			chance += constants.Event.RomanceBonus
		}
		if member.Risk.Conflict > constants.Event.ConflictThreshold {
			chance += constants.Event.ConflictBonus
		}
	}

	if chance > constants.Event.MaxChance {
		return constants.Event.MaxChance
	}
	return chance
}
