package battle

import (
	"cmp"
	"slices"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
)

// batonState is what a baton pass hands to the incoming combatant
type batonState struct {
	ranks     RankState
	volatiles map[dex.Volatile]int
}

var batonVolatiles = []dex.Volatile{dex.VOLATILE_CONFUSION, dex.VOLATILE_LEECH_SEED, dex.VOLATILE_FOCUS_ENERGY}

// switchTo replaces the active combatant of side with the member at idx. Switching
// to the active member or a fainted one changes nothing and logs EVENT_FAILED.
func (b *BattleContext) switchTo(side Side, idx int, baton bool) bool {
	team := b.teams[side]
	if idx < 0 || idx >= len(team.Members) {
		b.emit(EVENT_FAILED, side, 0, "There is no team member %d to switch to.", idx)
		return false
	}
	if idx == team.ActiveIndex {
		b.emit(EVENT_FAILED, side, 0, "%s is already in battle!", team.Members[idx].Name())
		return false
	}
	if !team.Members[idx].Alive() {
		b.emit(EVENT_FAILED, side, 0, "%s has no energy left to battle!", team.Members[idx].Name())
		return false
	}

	passed := b.leave(side, baton)
	b.enter(side, idx, passed)
	b.appear(side)
	b.applyHazards(side)
	return true
}

// leave withdraws the active combatant of side and returns what it passes on
func (b *BattleContext) leave(side Side, baton bool) *batonState {
	team := b.teams[side]
	c := team.Active()
	slot := team.ActiveIndex

	b.runLeaveHook(side)

	var passed *batonState
	if baton {
		passed = &batonState{ranks: c.Ranks, volatiles: make(map[dex.Volatile]int)}
		for _, v := range batonVolatiles {
			if !c.Volatiles.Has(v) {
				continue
			}
			turns := 0
			if timer, ok := volatileTimers[v]; ok {
				effect, _ := b.durations.Get(side, timer, slot)
				turns = effect.Remaining
			}
			passed.volatiles[v] = turns
		}
	}

	b.emit(EVENT_SWITCH, side, 0, "%s, come back!", c.Name())

	b.dropOwner(side, slot)
	c.clearVolatile()
	c.Active = false
	b.env.RemoveTagsOf(side)
	b.panicked[side] = false

	return passed
}

// enter makes the member at idx active. Appear hooks and hazards are left to the caller.
func (b *BattleContext) enter(side Side, idx int, passed *batonState) {
	team := b.teams[side]
	team.ActiveIndex = idx

	c := team.Active()
	c.Active = true
	c.FirstTurn = true
	c.SwitchedInThisTurn = b.turn > 0
	if c.Status == dex.STATUS_TOXIC {
		c.ToxicCount = 1
	}

	b.emit(EVENT_SWITCH, side, idx, "Team %s sent out %s!", side, c.Name())

	if passed != nil {
		c.Ranks = passed.ranks
		for _, v := range batonVolatiles {
			if turns, ok := passed.volatiles[v]; ok {
				b.addVolatile(side, v, turns)
			}
		}
	}
}

var spikesFractions = []float64{1.0 / 8, 1.0 / 6, 1.0 / 4}

// applyHazards hits the combatant that just came in with its side's hazards
func (b *BattleContext) applyHazards(side Side) {
	c := b.active(side)
	env := b.env.Side(side)
	if !c.Alive() || c.Item == dex.ITEM_HEAVY_DUTY_BOOTS {
		return
	}

	if env.Layers(dex.HAZARD_STEALTH_ROCK) > 0 {
		eff := dex.Effectiveness(dex.TYPE_ROCK, c.Types()...)
		b.indirectDamage(side, max(1, int(float64(c.MaxHP)*eff/8)), "stealth rock")
	}

	if !c.grounded() {
		return
	}

	if layers := env.Layers(dex.HAZARD_SPIKES); layers > 0 {
		b.indirectDamage(side, c.fraction(spikesFractions[min(layers, len(spikesFractions))-1]), "spikes")
	}

	if layers := env.Layers(dex.HAZARD_TOXIC_SPIKES); layers > 0 && c.Alive() {
		if c.HasType(dex.TYPE_POISON) {
			env.RemoveHazard(dex.HAZARD_TOXIC_SPIKES)
			b.emit(EVENT_HAZARD, side, 0, "%s absorbed the toxic spikes!", c.Name())
		} else {
			b.inflictStatus(side, lo.Ternary(layers >= 2, dex.STATUS_TOXIC, dex.STATUS_POISON), SIDE_NONE)
		}
	}

	if env.Layers(dex.HAZARD_STICKY_WEB) > 0 && c.Alive() {
		b.emit(EVENT_HAZARD, side, 0, "%s was caught in a sticky web!", c.Name())
		b.changeStats(side.Opponent(), side, []dex.StatDelta{{Stat: dex.STAT_SPEED, Stages: -1}})
	}
}

// matchup returns how well c attacks foe and how well foe attacks c, as best effectiveness
func matchup(c, foe *Combatant) (offense, defense float64) {
	attackTypes := lo.Uniq(lo.FilterMap(c.Moves, func(m *dex.MoveDefinition, _ int) (dex.Type, bool) {
		return m.Type, m.IsDamaging() && c.PP[m.ID] > 0
	}))
	if len(attackTypes) == 0 {
		attackTypes = c.Types()
	}

	for _, t := range attackTypes {
		offense = max(offense, dex.Effectiveness(t, foe.Types()...))
	}
	for _, t := range foe.Types() {
		defense = max(defense, dex.Effectiveness(t, c.Types()...))
	}
	return offense, defense
}

// matchupTier ranks a candidate: 0 is a strong counter, 1 neutral, 2 anything else
func matchupTier(c, foe *Combatant) int {
	offense, defense := matchup(c, foe)
	switch {
	case offense >= 2 && defense < 2:
		return 0
	case offense >= 1 && defense <= 1:
		return 1
	default:
		return 2
	}
}

// BestSwitchCandidate returns the bench slot side should bring in against the
// opposing active combatant, or -1 if nobody can come in
func (b *BattleContext) BestSwitchCandidate(side Side) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.bestSwitchCandidate(side)
}

func (b *BattleContext) bestSwitchCandidate(side Side) int {
	team := b.teams[side]
	foe := b.active(side.Opponent())

	bench := lo.Filter(lo.Range(len(team.Members)), func(i int, _ int) bool {
		c := team.Members[i]
		return c.Alive() && !c.Active
	})
	if len(bench) == 0 {
		return -1
	}

	return slices.MinFunc(bench, func(i, j int) int {
		a, c := team.Members[i], team.Members[j]
		return cmp.Or(
			cmp.Compare(matchupTier(a, foe), matchupTier(c, foe)),
			cmp.Compare(c.HPFraction(), a.HPFraction()),
			cmp.Compare(i, j),
		)
	})
}

// faint removes a combatant that reached 0 HP from play
func (b *BattleContext) faint(side Side) {
	team := b.teams[side]
	c := team.Active()

	b.emit(EVENT_FAINT, side, 0, "%s fainted!", c.Name())

	c.Status = dex.STATUS_NONE
	c.SleepCounter = 0
	c.ToxicCount = 0
	b.dropOwner(side, team.ActiveIndex)
	c.clearVolatile()
	c.Active = false
	b.env.RemoveTagsOf(side)
	b.panicked[side] = false
}

// resolveFaints takes fainted combatants out and sends in replacements until
// both sides have a healthy active member. Replacements fainting to hazards
// are replaced again; every pass shrinks the set of alive members, so this ends.
// It reports whether the battle is over.
func (b *BattleContext) resolveFaints() bool {
	for {
		fainted := false
		for _, side := range sides {
			c := b.active(side)
			if c.Active && !c.Alive() {
				b.faint(side)
				fainted = true
			}
		}

		if b.teams[SIDE_A].Lost() || b.teams[SIDE_B].Lost() {
			if !b.over {
				b.endBattle()
			}
			return true
		}

		replaced := false
		for _, side := range sides {
			if b.active(side).Active {
				continue
			}
			idx := b.bestSwitchCandidate(side)
			b.enter(side, idx, nil)
			b.appear(side)
			b.applyHazards(side)
			replaced = true
		}

		if !fainted && !replaced {
			return false
		}
	}
}
