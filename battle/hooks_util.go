package battle

import (
	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
)

// ZEN_FORM is the form zen mode switches into
const ZEN_FORM dex.FormID = "zen"

type utilHook func(b *BattleContext, side Side)

func weatherHeal(w dex.Weather, f float64) utilHook {
	return func(b *BattleContext, side Side) {
		if b.weather() == w {
			b.healFraction(side, f)
		}
	}
}

var moodyStats = []dex.Stat{dex.STAT_ATTACK, dex.STAT_DEFENSE, dex.STAT_SPATTACK, dex.STAT_SPDEF, dex.STAT_SPEED}

// endTurnHooks run for each active combatant after durations tick
var endTurnHooks = map[dex.AbilityID]utilHook{
	dex.ABILITY_SPEED_BOOST: func(b *BattleContext, side Side) {
		if !b.active(side).SwitchedInThisTurn {
			b.changeStats(side, side, []dex.StatDelta{{Stat: dex.STAT_SPEED, Stages: 1}})
		}
	},
	dex.ABILITY_RAIN_DISH: weatherHeal(dex.WEATHER_RAIN, 1.0/16),
	dex.ABILITY_ICE_BODY:  weatherHeal(dex.WEATHER_SNOW, 1.0/16),
	dex.ABILITY_DRY_SKIN: func(b *BattleContext, side Side) {
		switch b.weather() {
		case dex.WEATHER_RAIN:
			b.healFraction(side, 1.0/8)
		case dex.WEATHER_SUN:
			b.indirectDamage(side, b.active(side).fraction(1.0/8), "dry skin")
		}
	},
	dex.ABILITY_SOLAR_POWER: func(b *BattleContext, side Side) {
		if b.weather() == dex.WEATHER_SUN {
			b.indirectDamage(side, b.active(side).fraction(1.0/8), "solar power")
		}
	},
	dex.ABILITY_MOODY: func(b *BattleContext, side Side) {
		c := b.active(side)
		raise := moodyStats[b.rng.IntN(len(moodyStats))]
		lower := moodyStats[b.rng.IntN(len(moodyStats))]
		deltas := []dex.StatDelta{{Stat: raise, Stages: 2}}
		if lower != raise {
			deltas = append(deltas, dex.StatDelta{Stat: lower, Stages: -1})
		}
		b.emit(EVENT_ABILITY, side, 0, "%s's moodiness shifted its stats.", c.Name())
		b.changeStats(side, side, deltas)
	},
	dex.ABILITY_SHED_SKIN: func(b *BattleContext, side Side) {
		if b.active(side).Status != dex.STATUS_NONE && chance(b.rng, 0.3) {
			b.emit(EVENT_ABILITY, side, 0, "%s shed its skin!", b.active(side).Name())
			b.cureStatus(side)
		}
	},
	dex.ABILITY_HYDRATION: func(b *BattleContext, side Side) {
		if b.weather() == dex.WEATHER_RAIN && b.active(side).Status != dex.STATUS_NONE {
			b.emit(EVENT_ABILITY, side, 0, "%s's hydration washed away its status.", b.active(side).Name())
			b.cureStatus(side)
		}
	},
	dex.ABILITY_ZEN_MODE: func(b *BattleContext, side Side) {
		c := b.active(side)
		switch {
		case c.HP*2 < c.MaxHP && c.Form != ZEN_FORM:
			if c.setForm(ZEN_FORM) {
				b.emit(EVENT_ABILITY, side, 0, "%s entered zen mode!", c.Name())
			}
		case c.HP*2 >= c.MaxHP && c.Form == ZEN_FORM:
			if c.setForm(dex.FORM_BASE) {
				b.emit(EVENT_ABILITY, side, 0, "%s left zen mode.", c.Name())
			}
		}
	},
}

// leaveHooks run for the outgoing combatant of a switch while it is still active
var leaveHooks = map[dex.AbilityID]utilHook{
	dex.ABILITY_REGENERATOR: func(b *BattleContext, side Side) {
		b.healFraction(side, 1.0/3)
	},
	dex.ABILITY_NATURAL_CURE: func(b *BattleContext, side Side) {
		b.cureStatus(side)
	},
	dex.ABILITY_ZEN_MODE: func(b *BattleContext, side Side) {
		b.active(side).setForm(dex.FORM_BASE)
	},
}

func (b *BattleContext) runEndTurnHook(side Side) {
	c := b.active(side)
	if !c.Alive() {
		return
	}
	if hook, ok := endTurnHooks[c.Ability]; ok {
		hook(b, side)
	}
}

func (b *BattleContext) runLeaveHook(side Side) {
	c := b.active(side)
	if !c.Alive() {
		return
	}
	if hook, ok := leaveHooks[c.Ability]; ok {
		hook(b, side)
	}
}

// AbilityInfo describes an ability by the hook tables it is dispatched from.
// Abilities the pipeline checks directly count as HOOK_UTIL.
func AbilityInfo(id dex.AbilityID) dex.AbilityDefinition {
	def := dex.AbilityDefinition{ID: id, Name: id.String()}
	if id == dex.ABILITY_NONE {
		return def
	}

	tables := []struct {
		hook dex.AbilityHook
		has  bool
	}{
		{dex.HOOK_APPEAR, lo.HasKey(appearHooks, id)},
		{dex.HOOK_OFFENSE_BEFORE, lo.HasKey(offenseBeforeHooks, id)},
		{dex.HOOK_OFFENSE_AFTER, lo.HasKey(offenseAfterHooks, id)},
		{dex.HOOK_DEFENSE_BEFORE, lo.HasKey(defenseBeforeHooks, id)},
		{dex.HOOK_DEFENSE_AFTER, lo.HasKey(defenseAfterHooks, id)},
		{dex.HOOK_UTIL, lo.HasKey(endTurnHooks, id) || lo.HasKey(leaveHooks, id)},
	}
	for _, t := range tables {
		if t.has {
			def.Hooks |= t.hook
		}
	}

	if def.Hooks == 0 {
		def.Hooks = dex.HOOK_UTIL
	}
	return def
}
