package battle

import (
	"math"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
)

const (
	MAX_STAGE      = 6
	MIN_STAGE      = -6
	MAX_CRIT_STAGE = 4
)

// RankState holds the stage of every rank slot, indexed by dex.Stat
type RankState [dex.RANK_SLOTS]int

func (r RankState) Get(stat dex.Stat) int {
	return r[stat]
}

// Change moves a stage by delta and returns how far it actually moved after clamping
func (r *RankState) Change(stat dex.Stat, delta int) int {
	floor, ceil := MIN_STAGE, MAX_STAGE
	if stat == dex.STAT_CRITICAL {
		floor, ceil = 0, MAX_CRIT_STAGE
	}

	old := r[stat]
	r[stat] = lo.Clamp(old+delta, floor, ceil)
	return r[stat] - old
}

func (r *RankState) Reset() {
	*r = RankState{}
}

// RankMultiplier scales a stat by its stage
func RankMultiplier(stage int) float64 {
	stage = lo.Clamp(stage, MIN_STAGE, MAX_STAGE)
	if stage >= 0 {
		return float64(2+stage) / 2
	}
	return 2 / float64(2-stage)
}

// AccuracyMultiplier maps the difference of accuracy and evasion stages to a hit multiplier
func AccuracyMultiplier(diff int) float64 {
	switch {
	case diff > MAX_STAGE:
		return 3
	case diff >= 0:
		return float64(diff+3) / 3
	case diff >= MIN_STAGE:
		return 3 / float64(3-diff)
	default:
		return 1.0 / 3
	}
}

// HitChance is the probability a move connects, clamped to 1
func HitChance(baseAccuracy, accuracyStage, evasionStage int, rate float64) float64 {
	if baseAccuracy > 100 {
		return 1
	}

	p := AccuracyMultiplier(accuracyStage-evasionStage) * float64(baseAccuracy) / 100 * rate
	return math.Min(p, 1)
}

// AccuracyRoll draws once to decide if a move hits
func AccuracyRoll(rng Rng, baseAccuracy, accuracyStage, evasionStage int, rate float64) bool {
	if baseAccuracy > 100 {
		return true
	}
	return chance(rng, HitChance(baseAccuracy, accuracyStage, evasionStage, rate))
}

// CriticalChance returns the crit probability of a stage
func CriticalChance(stage int) float64 {
	stage = lo.Clamp(stage, 0, MAX_CRIT_STAGE)
	if stage == 0 {
		return 1.0 / 24
	}
	return math.Min(float64(stage*stage*2)/16, 1)
}

// CriticalRoll draws once to decide if a hit is critical. Luck adds one stage.
func CriticalRoll(rng Rng, baseStage, bonusStage int, luck bool) bool {
	stage := baseStage + bonusStage
	if luck {
		stage++
	}
	return chance(rng, CriticalChance(stage))
}
