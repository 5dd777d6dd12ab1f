package battle

import (
	"github.com/nathanieltooley/duelcore/dex"
)

// Chances used by the checks that can stop a combatant from acting
const (
	THAW_CHANCE      = 0.2
	FULL_PARA_CHANCE = 0.25
	CONFUSED_CHANCE  = 1.0 / 3
)

// canAct runs the checks that can stop the active combatant of side from using
// move this turn, in order: truant, sleep, freeze, flinch, paralysis,
// confusion, taunt, disable.
func (b *BattleContext) canAct(side Side, move *dex.MoveDefinition) bool {
	c := b.active(side)

	if c.Ability == dex.ABILITY_TRUANT {
		if c.TruantIdle {
			c.TruantIdle = false
			b.emit(EVENT_ABILITY, side, 0, "%s is loafing around!", c.Name())
			return false
		}
		c.TruantIdle = true
	}

	switch c.Status {
	case dex.STATUS_SLEEP:
		if c.SleepCounter <= 0 {
			b.cureStatus(side)
			break
		}
		c.SleepCounter--
		if c.Ability == dex.ABILITY_EARLY_BIRD {
			c.SleepCounter--
		}
		b.emit(EVENT_MESSAGE, side, 0, "%s is fast asleep.", c.Name())
		return false
	case dex.STATUS_FROZEN:
		if move.ThawsUser || chance(b.rng, THAW_CHANCE) {
			b.cureStatus(side)
			break
		}
		b.emit(EVENT_MESSAGE, side, 0, "%s is frozen solid!", c.Name())
		return false
	}

	if c.Volatiles.Has(dex.VOLATILE_FLINCH) {
		b.emit(EVENT_MESSAGE, side, 0, "%s flinched and couldn't move!", c.Name())
		return false
	}

	if c.Status == dex.STATUS_PARA && chance(b.rng, FULL_PARA_CHANCE) {
		b.emit(EVENT_MESSAGE, side, 0, "%s is paralyzed! It can't move!", c.Name())
		return false
	}

	if c.Volatiles.Has(dex.VOLATILE_CONFUSION) {
		b.emit(EVENT_MESSAGE, side, 0, "%s is confused!", c.Name())
		if chance(b.rng, CONFUSED_CHANCE) {
			lost := c.takeDamage(b.confusionDamage(c))
			b.emit(EVENT_DAMAGE, side, lost, "%s hurt itself in its confusion!", c.Name())
			return false
		}
	}

	if c.Volatiles.Has(dex.VOLATILE_TAUNT) && !move.IsDamaging() {
		b.emit(EVENT_FAILED, side, 0, "%s can't use %s after the taunt!", c.Name(), dex.DisplayName(move.Name))
		return false
	}

	if c.Disabled == move {
		b.emit(EVENT_FAILED, side, 0, "%s's %s is disabled!", c.Name(), dex.DisplayName(move.Name))
		return false
	}

	return true
}

// interrupt drops any multi turn commitment after a combatant failed to act
func (c *Combatant) interrupt() {
	if c.Charging != nil {
		c.Charging = nil
		c.Position = dex.POSITION_GROUNDED
	}
	c.Locked = nil
	c.LockTurns = 0
}
