package battle

import (
	"github.com/nathanieltooley/duelcore/dex"
)

type appearHook func(b *BattleContext, side Side)

func announce(message string) appearHook {
	return func(b *BattleContext, side Side) {
		b.emit(EVENT_ABILITY, side, 0, "%s "+message, b.active(side).Name())
	}
}

func summonWeather(w dex.Weather) appearHook {
	return func(b *BattleContext, side Side) {
		if b.env.Weather() == w {
			return
		}
		b.emit(EVENT_ABILITY, side, 0, "%s's %s changed the weather!", b.active(side).Name(), b.active(side).Ability)
		b.setWeather(w, WEATHER_TURNS)
	}
}

func summonField(f dex.Field) appearHook {
	return func(b *BattleContext, side Side) {
		if b.env.Field() == f {
			return
		}
		b.emit(EVENT_ABILITY, side, 0, "%s's %s changed the terrain!", b.active(side).Name(), b.active(side).Ability)
		b.setField(f, FIELD_TURNS)
	}
}

func aura(a dex.Aura) appearHook {
	return func(b *BattleContext, side Side) {
		b.env.AddAura(a, side)
		b.emit(EVENT_ABILITY, side, 0, "%s is radiating a %s!", b.active(side).Name(), a)
	}
}

func disaster(d dex.Disaster) appearHook {
	return func(b *BattleContext, side Side) {
		b.env.AddDisaster(d, side)
		b.emit(EVENT_ABILITY, side, 0, "%s's %s weakened the %s of all around it!", b.active(side).Name(), d, d.Lowers())
	}
}

func paradoxBoost(b *BattleContext, side Side) {
	b.refreshBoost(side)
}

var appearHooks map[dex.AbilityID]appearHook

func init() {
	appearHooks = map[dex.AbilityID]appearHook{
		dex.ABILITY_DRIZZLE:        summonWeather(dex.WEATHER_RAIN),
		dex.ABILITY_DROUGHT:        summonWeather(dex.WEATHER_SUN),
		dex.ABILITY_SAND_STREAM:    summonWeather(dex.WEATHER_SANDSTORM),
		dex.ABILITY_SNOW_WARNING:   summonWeather(dex.WEATHER_SNOW),
		dex.ABILITY_ELECTRIC_SURGE: summonField(dex.FIELD_ELECTRIC),
		dex.ABILITY_GRASSY_SURGE:   summonField(dex.FIELD_GRASSY),
		dex.ABILITY_PSYCHIC_SURGE:  summonField(dex.FIELD_PSYCHIC),
		dex.ABILITY_MISTY_SURGE:    summonField(dex.FIELD_MISTY),
		dex.ABILITY_INTIMIDATE: func(b *BattleContext, side Side) {
			foe := side.Opponent()
			if !b.active(foe).Alive() {
				return
			}
			b.emit(EVENT_ABILITY, side, 0, "%s's intimidate cuts %s's attack!", b.active(side).Name(), b.active(foe).Name())
			b.changeStats(side, foe, []dex.StatDelta{{Stat: dex.STAT_ATTACK, Stages: -1}})
		},
		dex.ABILITY_DOWNLOAD: func(b *BattleContext, side Side) {
			foe := b.active(side.Opponent())
			stat := dex.STAT_SPATTACK
			if b.stat(foe, dex.STAT_DEFENSE) < b.stat(foe, dex.STAT_SPDEF) {
				stat = dex.STAT_ATTACK
			}
			b.emit(EVENT_ABILITY, side, 0, "%s's download activated!", b.active(side).Name())
			b.changeStats(side, side, []dex.StatDelta{{Stat: stat, Stages: 1}})
		},
		dex.ABILITY_AIR_LOCK: announce("caused the effects of the weather to disappear."),
		dex.ABILITY_TRACE: func(b *BattleContext, side Side) {
			c, foe := b.active(side), b.active(side.Opponent())
			if !foe.Alive() || foe.Ability == dex.ABILITY_NONE || foe.Ability == dex.ABILITY_TRACE {
				return
			}
			c.Ability = foe.Ability
			b.emit(EVENT_ABILITY, side, 0, "%s traced %s's %s!", c.Name(), foe.Name(), foe.Ability)
			if hook, ok := appearHooks[c.Ability]; ok {
				hook(b, side)
			}
		},
		dex.ABILITY_PRESSURE:        announce("is exerting its pressure!"),
		dex.ABILITY_MOLD_BREAKER:    announce("breaks the mold!"),
		dex.ABILITY_FAIRY_AURA:      aura(dex.AURA_FAIRY),
		dex.ABILITY_DARK_AURA:       aura(dex.AURA_DARK),
		dex.ABILITY_TABLETS_OF_RUIN: disaster(dex.DISASTER_TABLETS),
		dex.ABILITY_SWORD_OF_RUIN:   disaster(dex.DISASTER_SWORD),
		dex.ABILITY_VESSEL_OF_RUIN:  disaster(dex.DISASTER_VESSEL),
		dex.ABILITY_BEADS_OF_RUIN:   disaster(dex.DISASTER_BEADS),
		dex.ABILITY_QUARK_DRIVE:     paradoxBoost,
		dex.ABILITY_PROTOSYNTHESIS:  paradoxBoost,
	}
}

// appear runs the appear ability of the active combatant of side
func (b *BattleContext) appear(side Side) {
	c := b.active(side)
	if !c.Alive() {
		return
	}
	if hook, ok := appearHooks[c.Ability]; ok {
		hook(b, side)
	}
}

// refreshBoost turns quark drive and protosynthesis on or off to match the field
func (b *BattleContext) refreshBoost(side Side) {
	c := b.active(side)
	if !c.Alive() {
		return
	}

	var active bool
	switch c.Ability {
	case dex.ABILITY_QUARK_DRIVE:
		active = b.env.Field() == dex.FIELD_ELECTRIC
	case dex.ABILITY_PROTOSYNTHESIS:
		active = b.weather() == dex.WEATHER_SUN
	default:
		return
	}

	switch {
	case active && c.Boosted == dex.STAT_ACCURACY:
		c.Boosted = highestStat(c)
		b.emit(EVENT_ABILITY, side, 0, "%s's %s boosted its %s!", c.Name(), c.Ability, c.Boosted)
	case !active && c.Boosted != dex.STAT_ACCURACY:
		c.Boosted = dex.STAT_ACCURACY
		b.emit(EVENT_ABILITY, side, 0, "%s's %s wore off.", c.Name(), c.Ability)
	}
}

// highestStat picks the stat a paradox ability boosts. Ties go to the earlier stat.
func highestStat(c *Combatant) dex.Stat {
	best := dex.STAT_ATTACK
	for _, stat := range []dex.Stat{dex.STAT_DEFENSE, dex.STAT_SPATTACK, dex.STAT_SPDEF, dex.STAT_SPEED} {
		if float64(c.rawStat(stat))*RankMultiplier(c.Ranks.Get(stat)) > float64(c.rawStat(best))*RankMultiplier(c.Ranks.Get(best)) {
			best = stat
		}
	}
	return best
}

func (b *BattleContext) weatherChanged() {
	for _, side := range sides {
		b.refreshBoost(side)
	}
}

func (b *BattleContext) fieldChanged() {
	for _, side := range sides {
		b.refreshBoost(side)
	}
}
