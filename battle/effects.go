package battle

import (
	"github.com/nathanieltooley/duelcore/dex"
)

func (b *BattleContext) heal(side Side, amount int) int {
	c := b.active(side)
	if !c.Alive() {
		return 0
	}

	healed := c.heal(amount)
	if healed > 0 {
		b.emit(EVENT_HEAL, side, healed, "%s restored %d HP.", c.Name(), healed)
	}
	return healed
}

func (b *BattleContext) healFraction(side Side, f float64) int {
	return b.heal(side, b.active(side).fraction(f))
}

// indirectDamage is damage that does not come from a hit. Magic guard ignores it.
func (b *BattleContext) indirectDamage(side Side, amount int, cause string) int {
	c := b.active(side)
	if !c.Alive() || c.Ability == dex.ABILITY_MAGIC_GUARD {
		return 0
	}

	lost := c.takeDamage(amount)
	if lost > 0 {
		b.emit(EVENT_DAMAGE, side, lost, "%s was hurt by %s.", c.Name(), cause)
	}
	return lost
}

// changeStats applies stage deltas from source to target and reports whether any stage moved
func (b *BattleContext) changeStats(source, target Side, deltas []dex.StatDelta) bool {
	return b.changeStatsFrom(source, target, deltas, false)
}

func (b *BattleContext) changeStatsFrom(source, target Side, deltas []dex.StatDelta, reflected bool) bool {
	c := b.active(target)
	if !c.Alive() {
		return false
	}

	changed := false
	for _, delta := range deltas {
		stages := delta.Stages
		if c.Ability == dex.ABILITY_SIMPLE {
			stages *= 2
		}
		if c.Ability == dex.ABILITY_CONTRARY {
			stages = -stages
		}

		if stages < 0 && source != target {
			blocked := false
			switch c.Ability {
			case dex.ABILITY_CLEAR_BODY, dex.ABILITY_WHITE_SMOKE:
				blocked = true
			case dex.ABILITY_HYPER_CUTTER:
				blocked = delta.Stat == dex.STAT_ATTACK
			case dex.ABILITY_KEEN_EYE:
				blocked = delta.Stat == dex.STAT_ACCURACY
			case dex.ABILITY_MIRROR_ARMOR:
				if !reflected {
					b.emit(EVENT_ABILITY, target, 0, "%s's mirror armor reflected the stat drop!", c.Name())
					changed = b.changeStatsFrom(target, source, []dex.StatDelta{delta}, true) || changed
					continue
				}
				blocked = true
			}
			if blocked {
				b.emit(EVENT_ABILITY, target, 0, "%s's %s prevents its %s from dropping!", c.Name(), c.Ability, delta.Stat)
				continue
			}
		}

		moved := c.Ranks.Change(delta.Stat, stages)
		switch {
		case moved == 0 && stages > 0:
			b.emit(EVENT_STAT, target, 0, "%s's %s won't go any higher!", c.Name(), delta.Stat)
		case moved == 0:
			b.emit(EVENT_STAT, target, 0, "%s's %s won't go any lower!", c.Name(), delta.Stat)
		case moved > 0:
			c.RankedUp = true
			changed = true
			b.emit(EVENT_STAT, target, moved, "%s's %s rose by %d.", c.Name(), delta.Stat, moved)
		default:
			changed = true
			b.emit(EVENT_STAT, target, moved, "%s's %s fell by %d.", c.Name(), delta.Stat, -moved)
		}
	}

	return changed
}

// SLEEP_MIN_TURNS and SLEEP_MAX_TURNS bound the turns a sleeping combatant cannot act
const (
	SLEEP_MIN_TURNS = 1
	SLEEP_MAX_TURNS = 3
)

// inflictStatus gives the active combatant of target a major status. Source is
// the side that caused it, SIDE_NONE for the field.
func (b *BattleContext) inflictStatus(target Side, status dex.Status, source Side) bool {
	c := b.active(target)
	if !c.Alive() || status == dex.STATUS_NONE || c.Status != dex.STATUS_NONE || b.immuneToStatus(c, status) {
		return false
	}

	c.Status = status
	switch status {
	case dex.STATUS_SLEEP:
		c.SleepCounter = between(b.rng, SLEEP_MIN_TURNS, SLEEP_MAX_TURNS)
	case dex.STATUS_TOXIC:
		c.ToxicCount = 1
	}
	b.emit(EVENT_STATUS, target, 0, "%s was inflicted with %s.", c.Name(), status)

	if c.Ability == dex.ABILITY_SYNCHRONIZE && source != SIDE_NONE && source != target {
		switch status {
		case dex.STATUS_BURN, dex.STATUS_PARA, dex.STATUS_POISON, dex.STATUS_TOXIC:
			b.emit(EVENT_ABILITY, target, 0, "%s's synchronize shared the %s!", c.Name(), status)
			b.inflictStatus(source, status, SIDE_NONE)
		}
	}

	return true
}

func (b *BattleContext) cureStatus(side Side) bool {
	c := b.active(side)
	if c.Status == dex.STATUS_NONE {
		return false
	}

	cured := c.Status
	c.Status = dex.STATUS_NONE
	c.SleepCounter = 0
	c.ToxicCount = 0
	b.emit(EVENT_CURE, side, 0, "%s was cured of its %s.", c.Name(), cured)
	return true
}

// inflictVolatile applies a volatile status with its default or given duration
func (b *BattleContext) inflictVolatile(target Side, v dex.Volatile, duration int) bool {
	c := b.active(target)

	turns := duration
	switch v {
	case dex.VOLATILE_FLINCH:
		if b.acted[target] {
			return false
		}
	case dex.VOLATILE_ENCORE:
		if c.LastMove == nil || c.MoveIndex(c.LastMove) == -1 {
			return false
		}
		if turns == 0 {
			turns = ENCORE_TURNS
		}
	case dex.VOLATILE_DISABLE:
		if c.LastMove == nil || c.MoveIndex(c.LastMove) == -1 {
			return false
		}
		if turns == 0 {
			turns = DISABLE_TURNS
		}
	case dex.VOLATILE_TAUNT:
		if turns == 0 {
			turns = TAUNT_TURNS
		}
	case dex.VOLATILE_YAWN:
		if c.Status != dex.STATUS_NONE || b.immuneToStatus(c, dex.STATUS_SLEEP) {
			return false
		}
		if turns == 0 {
			turns = YAWN_TURNS
		}
	case dex.VOLATILE_CONFUSION:
		if turns == 0 {
			turns = between(b.rng, CONFUSION_MIN_TURNS, CONFUSION_MAX_TURNS)
		}
	case dex.VOLATILE_TRAPPED:
		if turns == 0 {
			turns = between(b.rng, TRAPPED_MIN_TURNS, TRAPPED_MAX_TURNS)
		}
	}

	if !b.addVolatile(target, v, turns) {
		return false
	}

	switch v {
	case dex.VOLATILE_ENCORE:
		c.Encored = c.LastMove
	case dex.VOLATILE_DISABLE:
		c.Disabled = c.LastMove
	}

	if v != dex.VOLATILE_FLINCH {
		b.emit(EVENT_STATUS, target, turns, "%s is affected by %s.", c.Name(), v)
	}
	return true
}

// effectTarget resolves which side an effect lands on
func effectTarget(user Side, e dex.MoveEffect) Side {
	if e.Target == dex.TARGET_OPPONENT {
		return user.Opponent()
	}
	return user
}

// applyEffect applies one move effect after its roll succeeded. dealt is the
// damage the move did this hit. It reports whether anything changed.
func (b *BattleContext) applyEffect(user Side, e dex.MoveEffect, dealt int) bool {
	target := effectTarget(user, e)
	applied := false

	if e.Weather != dex.WEATHER_NONE {
		applied = b.setWeather(e.Weather, max(e.Duration, WEATHER_TURNS)) || applied
	}
	if e.Field != dex.FIELD_NONE {
		applied = b.setField(e.Field, max(e.Duration, FIELD_TURNS)) || applied
	}
	if e.Room != dex.ROOM_NONE {
		applied = b.setRoom(e.Room, max(e.Duration, ROOM_TURNS)) || applied
	}
	if e.Screen != dex.SCREEN_NONE {
		applied = b.setScreen(user, e.Screen, max(e.Duration, SCREEN_TURNS)) || applied
	}
	if e.Hazard != dex.HAZARD_NONE {
		foe := user.Opponent()
		if b.env.Side(foe).AddHazard(e.Hazard) {
			applied = true
			b.emit(EVENT_HAZARD, foe, b.env.Side(foe).Layers(e.Hazard), "%s was laid around team %s.", e.Hazard, foe)
		}
	}
	if e.ClearHazards {
		for _, hazard := range b.env.Side(target).ClearHazards() {
			applied = true
			b.emit(EVENT_HAZARD, target, 0, "%s was cleared from team %s's side.", hazard, target)
		}
	}
	if e.BreakScreens {
		for _, screen := range b.env.Side(target).Screens() {
			if b.clearScreen(target, screen) {
				applied = true
				b.emit(EVENT_SCREEN, target, 0, "Team %s's %s shattered!", target, screen)
			}
		}
	}

	c := b.active(target)
	if !c.Alive() {
		return applied
	}

	if len(e.Stats) > 0 {
		applied = b.changeStats(user, target, e.Stats) || applied
	}
	if e.Status != dex.STATUS_NONE {
		applied = b.inflictStatus(target, e.Status, user) || applied
	}
	if e.Volatile != dex.VOLATILE_NONE {
		applied = b.inflictVolatile(target, e.Volatile, e.Duration) || applied
	}
	if e.HealFraction > 0 {
		applied = b.healFrom(target, e, dealt) > 0 || applied
	}
	if e.RecoilFraction > 0 && dealt > 0 && c.Ability != dex.ABILITY_ROCK_HEAD {
		applied = b.indirectDamage(target, max(1, int(pokeRound(float64(dealt)*e.RecoilFraction))), "recoil") > 0 || applied
	}
	if e.SelfDamageFraction > 0 {
		applied = b.indirectDamage(target, c.fraction(e.SelfDamageFraction), "recoil") > 0 || applied
	}
	if e.TypeChange != dex.TYPE_TYPELESS && !(len(c.Types()) == 1 && c.HasType(e.TypeChange)) {
		c.TypeOverride = []dex.Type{e.TypeChange}
		applied = true
		b.emit(EVENT_MESSAGE, target, 0, "%s became the %s type.", c.Name(), e.TypeChange)
	}

	return applied
}

// healFrom resolves the three heal sources of an effect. The heal always lands
// on the effect's target; target-attack heals read the attack of whoever is
// opposite the healed combatant and only apply when the move dealt no damage.
func (b *BattleContext) healFrom(target Side, e dex.MoveEffect, dealt int) int {
	switch e.HealSource {
	case dex.HEAL_FROM_DAMAGE_DEALT:
		if dealt == 0 {
			return 0
		}
		return b.heal(target, max(1, int(pokeRound(float64(dealt)*e.HealFraction))))
	case dex.HEAL_FROM_TARGET_ATTACK:
		if dealt > 0 {
			return 0
		}
		foe := b.active(target.Opponent())
		return b.heal(target, int(pokeRound(b.stat(foe, dex.STAT_ATTACK)*e.HealFraction)))
	default:
		return b.healFraction(target, e.HealFraction)
	}
}

// rollEffects rolls every secondary effect of a move once and reports whether any applied
func (b *BattleContext) rollEffects(user Side, move *dex.MoveDefinition, dealt int) bool {
	attacker := b.active(user)
	applied := false

	for _, e := range move.Effects {
		if !e.Always() {
			if attacker.Ability == dex.ABILITY_SHEER_FORCE {
				continue
			}
			p := e.Chance
			if attacker.Ability == dex.ABILITY_SERENE_GRACE {
				p = min(1, p*2)
			}
			if !chance(b.rng, p) {
				continue
			}
		}

		applied = b.applyEffect(user, e, dealt) || applied
	}

	return applied
}

// applyDemerits applies a move's demerits to the user after it hit
func (b *BattleContext) applyDemerits(user Side, move *dex.MoveDefinition, dealt int) {
	for _, e := range move.Demerits {
		if !e.Always() && !chance(b.rng, e.Chance) {
			continue
		}
		b.applyEffect(user, e, dealt)
	}
}
