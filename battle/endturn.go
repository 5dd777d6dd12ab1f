package battle

import (
	"github.com/nathanieltooley/duelcore/dex"
)

// MAX_TOXIC_COUNT caps the toxic damage numerator
const MAX_TOXIC_COUNT = 15

var sandImmuneTypes = []dex.Type{dex.TYPE_ROCK, dex.TYPE_GROUND, dex.TYPE_STEEL}

var sandImmuneAbilities = []dex.AbilityID{
	dex.ABILITY_SAND_VEIL, dex.ABILITY_SAND_RUSH, dex.ABILITY_SAND_FORCE, dex.ABILITY_OVERCOAT,
}

// endOfTurn applies end of turn effects to both active combatants, fastest
// first, one step at a time. It reports whether the battle ended.
func (b *BattleContext) endOfTurn() bool {
	order := b.speedOrder()
	each := func(step func(side Side)) {
		for _, side := range order {
			if b.active(side).Alive() {
				step(side)
			}
		}
	}

	each(b.grassyHeal)
	each(b.weatherChip)
	each(b.statusDamage)
	each(b.leechSeed)
	b.tickDurations()
	each(b.runEndTurnHook)
	each(b.leftovers)
	each(b.exhaustLock)

	for _, side := range sides {
		c := b.active(side)
		c.Volatiles.Remove(dex.VOLATILE_FLINCH)
		c.Protecting = false
		c.SwitchedInThisTurn = false
	}

	return b.resolveFaints()
}

func (b *BattleContext) grassyHeal(side Side) {
	if b.env.Field() == dex.FIELD_GRASSY && b.active(side).grounded() {
		b.healFraction(side, 1.0/16)
	}
}

func (b *BattleContext) weatherChip(side Side) {
	c := b.active(side)
	if b.weather() != dex.WEATHER_SANDSTORM {
		return
	}
	if hasAnyType(sandImmuneTypes...)(b, c) || hasAnyAbility(sandImmuneAbilities...)(b, c) {
		return
	}
	b.indirectDamage(side, c.fraction(1.0/16), "the sandstorm")
}

func (b *BattleContext) statusDamage(side Side) {
	c := b.active(side)

	switch c.Status {
	case dex.STATUS_BURN:
		f := 1.0 / 16
		if c.Ability == dex.ABILITY_HEATPROOF {
			f /= 2
		}
		b.indirectDamage(side, c.fraction(f), "its burn")
	case dex.STATUS_POISON:
		if c.Ability == dex.ABILITY_POISON_HEAL {
			b.healFraction(side, 1.0/8)
			break
		}
		b.indirectDamage(side, c.fraction(1.0/8), "poison")
	case dex.STATUS_TOXIC:
		if c.Ability == dex.ABILITY_POISON_HEAL {
			b.healFraction(side, 1.0/8)
			break
		}
		b.indirectDamage(side, c.fraction(float64(c.ToxicCount)/16), "poison")
		c.ToxicCount = min(c.ToxicCount+1, MAX_TOXIC_COUNT)
	}

	if c.Volatiles.Has(dex.VOLATILE_TRAPPED) {
		b.indirectDamage(side, c.fraction(1.0/8), "the binding")
	}
}

func (b *BattleContext) leechSeed(side Side) {
	c := b.active(side)
	seeder := side.Opponent()
	if !c.Volatiles.Has(dex.VOLATILE_LEECH_SEED) || !b.active(seeder).Alive() {
		return
	}

	drained := b.indirectDamage(side, c.fraction(1.0/8), "leech seed")
	b.heal(seeder, drained)
}

func (b *BattleContext) leftovers(side Side) {
	if b.active(side).Item == dex.ITEM_LEFTOVERS {
		b.healFraction(side, 1.0/16)
	}
}

// exhaustLock ends a finished rampage and confuses the user
func (b *BattleContext) exhaustLock(side Side) {
	c := b.active(side)
	if c.Locked == nil || c.LockTurns > 0 {
		return
	}

	c.Locked = nil
	c.LockTurns = 0
	b.emit(EVENT_MESSAGE, side, 0, "%s's rampage ended.", c.Name())
	b.inflictVolatile(side, dex.VOLATILE_CONFUSION, 0)
}
