package battle

import (
	"math"

	"github.com/nathanieltooley/duelcore/dex"
)

// act resolves the chosen action of side
func (b *BattleContext) act(side Side) {
	action := b.actions[side]
	if action.Kind == ACTION_SWITCH {
		b.switchTo(side, action.Index, false)
		return
	}

	c := b.active(side)
	if c.Recharging {
		c.Recharging = false
		b.emit(EVENT_MESSAGE, side, 0, "%s must recharge!", c.Name())
		return
	}

	move := b.moveFor(side, action)
	if c.Encored != nil && move != c.Encored && !c.committed() {
		move = c.Encored
	}

	b.useMove(side, move)
}

// useMove runs the move pipeline for the active combatant of side
func (b *BattleContext) useMove(side Side, move *dex.MoveDefinition) {
	c := b.active(side)
	foeSide := side.Opponent()

	if !b.canAct(side, move) {
		c.interrupt()
		c.ProtectStreak = 0
		return
	}

	firstTurn := c.FirstTurn
	c.FirstTurn = false
	c.Missed = false
	c.RankedUp = false

	continuing := c.Charging == move || c.Locked == move
	if !continuing && move != dex.Struggle {
		cost := 1
		if b.active(foeSide).Alive() && b.active(foeSide).Ability == dex.ABILITY_PRESSURE {
			cost++
		}
		c.PP[move.ID] = max(0, c.PP[move.ID]-cost)
	}
	c.LastMove = move

	switch {
	case move == dex.Struggle:
		b.emit(EVENT_MOVE, side, 0, "%s has no moves left and used struggle!", c.Name())
	case c.Charging != move:
		b.emit(EVENT_MOVE, side, 0, "%s used %s!", c.Name(), dex.DisplayName(move.Name))
	}

	if !move.Protect {
		c.ProtectStreak = 0
	}

	switch {
	case move.Protect:
		b.protect(side)
		return
	case move.FirstTurnOnly && (!firstTurn || b.active(foeSide).SwitchedInThisTurn):
		b.fail(side)
		return
	case move.FailsUnlessTargetAttacks && !b.foeAttacking(side):
		b.fail(side)
		return
	}

	if move.Charge != nil {
		if c.Charging != move {
			if move.Charge.InstantWeather == dex.WEATHER_NONE || b.weather() != move.Charge.InstantWeather {
				c.Charging = move
				c.Position = move.Charge.Position
				b.emit(EVENT_MESSAGE, side, 0, "%s is charging up.", c.Name())
				return
			}
		} else {
			c.Charging = nil
			c.Position = dex.POSITION_GROUNDED
			b.emit(EVENT_MOVE, side, 0, "%s used %s!", c.Name(), dex.DisplayName(move.Name))
		}
	}

	switch {
	case move.Target != dex.TARGET_OPPONENT:
		b.useSupportMove(side, move)
	case !move.IsDamaging():
		b.useStatusMove(side, move)
	default:
		b.attack(side, move)
	}

	if move.SelfDestruct && c.Alive() {
		lost := c.takeDamage(c.HP)
		b.emit(EVENT_DAMAGE, side, lost, "%s exploded!", c.Name())
	}
}

func (b *BattleContext) fail(side Side) {
	b.active(side).interrupt()
	b.emit(EVENT_FAILED, side, 0, "But it failed!")
}

// protect succeeds with chance 1/3^n where n is the number of protects in a row
func (b *BattleContext) protect(side Side) {
	c := b.active(side)
	if b.acted[side.Opponent()] || !chance(b.rng, math.Pow(1.0/3, float64(c.ProtectStreak))) {
		c.ProtectStreak = 0
		b.fail(side)
		return
	}

	c.Protecting = true
	c.ProtectStreak++
	b.emit(EVENT_MESSAGE, side, 0, "%s protected itself!", c.Name())
}

// foeAttacking reports whether the opponent is about to use a damaging move this turn
func (b *BattleContext) foeAttacking(side Side) bool {
	foeSide := side.Opponent()
	if b.acted[foeSide] || b.actions[foeSide].Kind == ACTION_SWITCH {
		return false
	}

	foe := b.active(foeSide)
	if foe.Recharging {
		return false
	}
	move := b.moveFor(foeSide, b.actions[foeSide])
	return move != nil && move.IsDamaging()
}

// useSupportMove resolves moves aimed at the user or the field
func (b *BattleContext) useSupportMove(side Side, move *dex.MoveDefinition) {
	if move.BatonPass {
		idx := b.bestSwitchCandidate(side)
		if idx == -1 {
			b.fail(side)
			return
		}
		b.switchTo(side, idx, true)
		return
	}

	if !b.rollEffects(side, move, 0) {
		b.fail(side)
	}
}

// useStatusMove resolves non damaging moves aimed at the opponent
func (b *BattleContext) useStatusMove(side Side, move *dex.MoveDefinition) {
	foeSide := side.Opponent()
	foe := b.active(foeSide)

	if !foe.Alive() {
		b.fail(side)
		return
	}
	if foe.Protecting {
		b.emit(EVENT_MESSAGE, foeSide, 0, "%s protected itself!", foe.Name())
		return
	}
	if !move.CanReach(foe.Position) {
		b.emit(EVENT_MISS, side, 0, "%s avoided the attack!", foe.Name())
		return
	}
	if b.blocksStatusMove(side, move, false) {
		b.emit(EVENT_FAILED, foeSide, 0, "It doesn't affect %s...", foe.Name())
		return
	}
	if !b.newHit(side, move, damageOptions{}).connects() {
		b.active(side).Missed = true
		b.emit(EVENT_MISS, side, 0, "%s's attack missed!", b.active(side).Name())
		return
	}

	applied := b.rollEffects(side, move, 0)
	if move.Exile {
		applied = b.exile(foeSide) || applied
	}
	if !applied {
		b.fail(side)
	}
}

// rollHits picks how many times a multi hit move strikes
func (b *BattleContext) rollHits(c *Combatant, multi *dex.MultiHit) int {
	if c.Ability == dex.ABILITY_SKILL_LINK {
		return multi.Max
	}
	if multi.Min == 2 && multi.Max == 5 {
		switch roll := b.rng.IntN(100); {
		case roll < 35:
			return 2
		case roll < 70:
			return 3
		case roll < 85:
			return 4
		default:
			return 5
		}
	}
	return between(b.rng, multi.Min, multi.Max)
}

// attack resolves a damaging move aimed at the opponent
func (b *BattleContext) attack(side Side, move *dex.MoveDefinition) {
	c := b.active(side)
	foeSide := side.Opponent()
	foe := b.active(foeSide)

	if !foe.Alive() {
		b.fail(side)
		return
	}
	if foe.Protecting {
		c.interrupt()
		b.emit(EVENT_MESSAGE, foeSide, 0, "%s protected itself!", foe.Name())
		return
	}

	hits := 1
	if move.MultiHit != nil {
		hits = b.rollHits(c, move.MultiHit)
	}

	opts := damageOptions{late: b.acted[foeSide]}
	if move.PowerIfLast && opts.late {
		opts.power = move.Power * 2
	}
	total, landed := 0, 0

	for i := 0; i < hits && c.Alive() && foe.Alive(); i++ {
		opts.hitIndex = i
		result := b.calculateDamage(side, move, opts)

		switch {
		case !result.Succeeded:
			b.fail(side)
			return
		case !result.Hit:
			c.Missed = true
			c.interrupt()
			b.emit(EVENT_MISS, side, 0, "%s's attack missed!", c.Name())
			if move.Crash > 0 {
				b.indirectDamage(side, c.fraction(move.Crash), "crashing")
			}
			return
		case result.Absorbed:
			c.interrupt()
			return
		case result.Immune:
			c.interrupt()
			b.emit(EVENT_FAILED, foeSide, 0, "It doesn't affect %s...", foe.Name())
			return
		}

		if result.Critical {
			b.emit(EVENT_MESSAGE, side, 0, "A critical hit!")
		}

		hpBefore := foe.HP
		dealt := foe.takeDamage(result.Damage)
		foe.DamageTaken += dealt
		foe.DamageTakenCategory = move.Category
		c.DamageDealt += dealt
		b.emit(EVENT_DAMAGE, foeSide, dealt, "%s lost %d HP.", foe.Name(), dealt)

		if i == 0 && result.SuperEffective {
			b.emit(EVENT_MESSAGE, foeSide, 0, "It's super effective!")
		}
		if move.OHKO {
			b.emit(EVENT_MESSAGE, foeSide, 0, "It's a one-hit KO!")
		}

		b.runAfterHooks(&afterHit{
			b:            b,
			attackerSide: side,
			defenderSide: foeSide,
			attacker:     c,
			defender:     foe,
			move:         move,
			damage:       dealt,
			hpBefore:     hpBefore,
		})
		b.rollEffects(side, move, dealt)

		total += dealt
		landed++
	}

	if hits > 1 {
		b.emit(EVENT_MESSAGE, side, landed, "Hit %d time(s)!", landed)
	}
	if landed == 0 {
		return
	}

	b.applyDemerits(side, move, total)

	if move.Recharge && c.Alive() {
		c.Recharging = true
	}

	if move.LockTurns > 0 && c.Alive() {
		if c.Locked != move {
			c.Locked = move
			c.LockTurns = between(b.rng, 2, move.LockTurns)
		}
		c.LockTurns--
	}

	if move.Exile && foe.Alive() {
		b.exile(foeSide)
	}

	if move.UserSwitches && c.Alive() {
		if idx := b.bestSwitchCandidate(side); idx != -1 {
			b.switchTo(side, idx, false)
		}
	}
}

// exile drags a random bench member of side into battle
func (b *BattleContext) exile(side Side) bool {
	c := b.active(side)
	if !c.Alive() {
		return false
	}
	if c.Ability == dex.ABILITY_SUCTION_CUPS {
		b.emit(EVENT_ABILITY, side, 0, "%s anchors itself with suction cups!", c.Name())
		return false
	}

	bench := b.teams[side].Bench()
	if len(bench) == 0 {
		return false
	}

	idx := bench[b.rng.IntN(len(bench))]
	b.emit(EVENT_MESSAGE, side, 0, "%s was dragged out!", b.teams[side].Members[idx].Name())
	return b.switchTo(side, idx, false)
}

// resolvePanic switches out combatants whose emergency exit or wimp out triggered
func (b *BattleContext) resolvePanic() {
	for _, side := range sides {
		if !b.panicked[side] {
			continue
		}
		b.panicked[side] = false

		c := b.active(side)
		idx := b.bestSwitchCandidate(side)
		if !c.Alive() || idx == -1 {
			continue
		}
		b.emit(EVENT_ABILITY, side, 0, "%s's %s made it flee!", c.Name(), c.Ability)
		b.switchTo(side, idx, false)
	}
}
