package battle

import (
	"slices"

	"github.com/go-logr/logr"
	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
)

var aiLogger = func() logr.Logger {
	return internalLogger.WithName("ai")
}

const (
	// Flat scores compared against the fraction of the foe's HP a move is expected to remove
	STATUS_MOVE_SCORE  = 0.35
	SLOWING_MOVE_SCORE = 0.3
	KO_BONUS           = 1.0
	// The foe counts as healthy at or above this HP fraction
	HEALTHY_THRESHOLD = 0.75
)

// ReferenceAgent picks actions for one side of a battle. It only reads the battle.
type ReferenceAgent struct {
	Side Side
}

func NewReferenceAgent(side Side) ReferenceAgent {
	return ReferenceAgent{Side: side}
}

// Choose returns an action SubmitTurn accepts for the agent's side.
// It returns None once the battle is over.
func (a ReferenceAgent) Choose(b *BattleContext) Action {
	b.mu.Lock()
	defer b.mu.Unlock()

	actions := b.validActions(a.Side)
	if len(actions) == 0 {
		return None()
	}
	if len(actions) == 1 {
		return actions[0]
	}

	if switchAction, ok := a.bestSwitch(b, actions); ok {
		return switchAction
	}

	moves := lo.Filter(actions, func(action Action, _ int) bool {
		return action.Kind == ACTION_MOVE
	})
	if len(moves) == 0 {
		// only switches left, take the best one
		return SwitchTo(b.bestSwitchCandidate(a.Side))
	}

	scores := lo.Map(moves, func(action Action, _ int) float64 {
		return a.score(b, b.active(a.Side).Moves[action.Index])
	})

	// MaxFunc keeps the first of equal scores, the lowest move slot
	best := slices.MaxFunc(lo.Range(len(moves)), func(i, j int) int {
		switch {
		case scores[i] > scores[j]:
			return 1
		case scores[i] < scores[j]:
			return -1
		default:
			return 0
		}
	})

	aiLogger().V(2).Info("chose move",
		"side", a.Side.String(),
		"move", b.active(a.Side).Moves[moves[best].Index].Name,
		"scores", scores,
	)

	return moves[best]
}

// bestSwitch switches out a badly matched active member when a strong counter sits on the bench
func (a ReferenceAgent) bestSwitch(b *BattleContext, actions []Action) (Action, bool) {
	canSwitch := lo.SomeBy(actions, func(action Action) bool {
		return action.Kind == ACTION_SWITCH
	})
	if !canSwitch {
		return Action{}, false
	}

	c, foe := b.active(a.Side), b.active(a.Side.Opponent())
	// a member that came in mid battle acts at least once before leaving again
	if c.FirstTurn && b.turn > 0 {
		return Action{}, false
	}
	if matchupTier(c, foe) < 2 {
		return Action{}, false
	}

	candidate := b.bestSwitchCandidate(a.Side)
	if candidate == -1 || matchupTier(b.teams[a.Side].Members[candidate], foe) != 0 {
		return Action{}, false
	}

	aiLogger().V(2).Info("switching", "side", a.Side.String(), "from", c.Name(), "to", b.teams[a.Side].Members[candidate].Name())
	return SwitchTo(candidate), true
}

// score rates a usable move. Damaging moves score the expected fraction of the
// foe's HP they remove; status moves get a flat score when they are worth using.
func (a ReferenceAgent) score(b *BattleContext, move *dex.MoveDefinition) float64 {
	c, foe := b.active(a.Side), b.active(a.Side.Opponent())

	if !move.IsDamaging() {
		return a.statusScore(b, move)
	}

	result := b.calculateDamage(a.Side, move, damageOptions{dry: true})
	if !result.Succeeded || result.Immune || foe.HP == 0 {
		return 0
	}

	damage := float64(result.Damage) * expectedHits(c, move)
	accuracy := 1.0
	if !move.OHKO {
		accuracy = HitChance(move.Accuracy, c.Ranks.Get(dex.STAT_ACCURACY), foe.Ranks.Get(dex.STAT_EVASION), 1)
	} else if !move.AlwaysHit {
		accuracy = OHKO_CHANCE
	}

	score := min(damage, float64(foe.HP)) / float64(foe.HP) * accuracy
	if damage >= float64(foe.HP) {
		score += KO_BONUS * accuracy
	}

	return score
}

func (a ReferenceAgent) statusScore(b *BattleContext, move *dex.MoveDefinition) float64 {
	c, foe := b.active(a.Side), b.active(a.Side.Opponent())

	aimed := lo.Filter(move.Effects, func(e dex.MoveEffect, _ int) bool {
		return e.Target == dex.TARGET_OPPONENT
	})
	if len(aimed) == 0 || b.blocksStatusMove(a.Side, move, true) {
		return 0
	}

	inflicts := lo.SomeBy(aimed, func(e dex.MoveEffect) bool {
		return e.Status != dex.STATUS_NONE && !b.immuneToStatus(foe, e.Status)
	})
	if inflicts && foe.Status == dex.STATUS_NONE && foe.HPFraction() >= HEALTHY_THRESHOLD {
		return STATUS_MOVE_SCORE
	}

	slows := lo.SomeBy(aimed, func(e dex.MoveEffect) bool {
		return lo.ContainsBy(e.Stats, func(d dex.StatDelta) bool {
			return d.Stat == dex.STAT_SPEED && d.Stages < 0
		})
	})
	if slows && b.Speed(c) < b.Speed(foe) && foe.Ranks.Get(dex.STAT_SPEED) > MIN_STAGE {
		return SLOWING_MOVE_SCORE
	}

	return 0
}

// expectedHits is the mean number of hits of a move
func expectedHits(c *Combatant, move *dex.MoveDefinition) float64 {
	if move.MultiHit == nil {
		return 1
	}
	if c.Ability == dex.ABILITY_SKILL_LINK {
		return float64(move.MultiHit.Max)
	}
	if move.MultiHit.Min == 2 && move.MultiHit.Max == 5 {
		// 35/35/15/15 split over 2, 3, 4 and 5 hits
		return 2*0.35 + 3*0.35 + 4*0.15 + 5*0.15
	}
	return float64(move.MultiHit.Min+move.MultiHit.Max) / 2
}
