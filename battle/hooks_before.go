package battle

import (
	"slices"

	"github.com/nathanieltooley/duelcore/dex"
)

type beforeHook func(h *hit)

func boostType(t dex.Type, rate float64) beforeHook {
	return func(h *hit) {
		if h.move.Type == t {
			h.rate *= rate
		}
	}
}

// pinch boosts a type when the attacker is at a third of its HP or less
func pinch(t dex.Type) beforeHook {
	return func(h *hit) {
		if h.move.Type == t && h.attacker.HP*3 <= h.attacker.MaxHP {
			h.rate *= 1.5
		}
	}
}

func flagged(flag func(*dex.MoveDefinition) bool, rate float64) beforeHook {
	return func(h *hit) {
		if flag(h.move) {
			h.rate *= rate
		}
	}
}

func physicalAttack(mod float64) beforeHook {
	return func(h *hit) {
		if h.move.Category == dex.CATEGORY_PHYSICAL {
			h.attackMod *= mod
		}
	}
}

// hasChanceEffects reports whether a move has secondary effects that roll
func hasChanceEffects(move *dex.MoveDefinition) bool {
	return slices.ContainsFunc(move.Effects, func(e dex.MoveEffect) bool { return !e.Always() })
}

func hasRecoil(move *dex.MoveDefinition) bool {
	return move.Crash > 0 || slices.ContainsFunc(move.Demerits, func(e dex.MoveEffect) bool { return e.RecoilFraction > 0 })
}

var offenseBeforeHooks = map[dex.AbilityID]beforeHook{
	dex.ABILITY_ADAPTABILITY: func(h *hit) {
		if h.stab {
			h.rate *= 4.0 / 3
		}
	},
	dex.ABILITY_TECHNICIAN: func(h *hit) {
		if h.power <= 60 {
			h.rate *= 1.5
		}
	},
	dex.ABILITY_IRON_FIST:     flagged(func(m *dex.MoveDefinition) bool { return m.Punch }, 1.2),
	dex.ABILITY_STRONG_JAW:    flagged(func(m *dex.MoveDefinition) bool { return m.Bite }, 1.5),
	dex.ABILITY_TOUGH_CLAWS:   flagged(func(m *dex.MoveDefinition) bool { return m.Contact }, 1.3),
	dex.ABILITY_MEGA_LAUNCHER: flagged(func(m *dex.MoveDefinition) bool { return m.Pulse }, 1.5),
	dex.ABILITY_SHARPNESS:     flagged(func(m *dex.MoveDefinition) bool { return m.Slicing }, 1.5),
	dex.ABILITY_PUNK_ROCK:     flagged(func(m *dex.MoveDefinition) bool { return m.Sound }, 1.3),
	dex.ABILITY_SHEER_FORCE:   flagged(hasChanceEffects, 1.3),
	dex.ABILITY_RECKLESS:      flagged(hasRecoil, 1.2),
	dex.ABILITY_BLAZE:         pinch(dex.TYPE_FIRE),
	dex.ABILITY_TORRENT:       pinch(dex.TYPE_WATER),
	dex.ABILITY_OVERGROW:      pinch(dex.TYPE_GRASS),
	dex.ABILITY_SWARM:         pinch(dex.TYPE_BUG),
	dex.ABILITY_GUTS: func(h *hit) {
		if h.attacker.Status != dex.STATUS_NONE && h.move.Category == dex.CATEGORY_PHYSICAL {
			h.attackMod *= 1.5
		}
	},
	dex.ABILITY_HUGE_POWER: physicalAttack(2),
	dex.ABILITY_PURE_POWER: physicalAttack(2),
	dex.ABILITY_HUSTLE:     physicalAttack(1.5),
	dex.ABILITY_SAND_FORCE: func(h *hit) {
		if h.b.weather() == dex.WEATHER_SANDSTORM && slices.Contains([]dex.Type{dex.TYPE_ROCK, dex.TYPE_GROUND, dex.TYPE_STEEL}, h.move.Type) {
			h.rate *= 1.3
		}
	},
	dex.ABILITY_SOLAR_POWER: func(h *hit) {
		if h.b.weather() == dex.WEATHER_SUN && h.move.Category == dex.CATEGORY_SPECIAL {
			h.attackMod *= 1.5
		}
	},
	dex.ABILITY_TINTED_LENS: func(h *hit) {
		if h.effectiveness > 0 && h.effectiveness < 1 {
			h.rate *= 2
		}
	},
	dex.ABILITY_ANALYTIC: func(h *hit) {
		if h.opts.late {
			h.rate *= 1.3
		}
	},
	dex.ABILITY_SNIPER: func(h *hit) {
		h.critRate = 2.25
	},
	dex.ABILITY_SUPER_LUCK: func(h *hit) {
		h.critLuck = true
	},
}

// absorb makes the defender take the move and run onAbsorb instead of being damaged
func absorb(t dex.Type, onAbsorb func(h *hit)) beforeHook {
	return func(h *hit) {
		if h.move.Type != t {
			return
		}
		h.absorbed = true
		h.later(func() {
			h.b.emit(EVENT_ABILITY, h.defenderSide, 0, "%s's %s took the attack!", h.defender.Name(), h.defender.Ability)
			onAbsorb(h)
		})
	}
}

func absorbHeal(h *hit) {
	h.b.healFraction(h.defenderSide, 0.25)
}

func absorbBoost(stat dex.Stat) func(h *hit) {
	return func(h *hit) {
		h.b.changeStats(h.defenderSide, h.defenderSide, []dex.StatDelta{{Stat: stat, Stages: 1}})
	}
}

func defenseRate(t dex.Type, rate float64) beforeHook {
	return func(h *hit) {
		if h.move.Type == t {
			h.attackMod *= rate
		}
	}
}

func blockCrit(h *hit) {
	h.critBlocked = true
}

var defenseBeforeHooks = map[dex.AbilityID]beforeHook{
	dex.ABILITY_LEVITATE: func(h *hit) {
		if h.move.Type == dex.TYPE_GROUND {
			h.effectiveness = 0
		}
	},
	dex.ABILITY_VOLT_ABSORB:   absorb(dex.TYPE_ELECTRIC, absorbHeal),
	dex.ABILITY_WATER_ABSORB:  absorb(dex.TYPE_WATER, absorbHeal),
	dex.ABILITY_LIGHTNING_ROD: absorb(dex.TYPE_ELECTRIC, absorbBoost(dex.STAT_SPATTACK)),
	dex.ABILITY_STORM_DRAIN:   absorb(dex.TYPE_WATER, absorbBoost(dex.STAT_SPATTACK)),
	dex.ABILITY_SAP_SIPPER:    absorb(dex.TYPE_GRASS, absorbBoost(dex.STAT_ATTACK)),
	dex.ABILITY_MOTOR_DRIVE:   absorb(dex.TYPE_ELECTRIC, absorbBoost(dex.STAT_SPEED)),
	dex.ABILITY_FLASH_FIRE: absorb(dex.TYPE_FIRE, func(h *hit) {
		h.defender.FlashFire = true
	}),
	dex.ABILITY_DRY_SKIN: func(h *hit) {
		switch h.move.Type {
		case dex.TYPE_WATER:
			absorb(dex.TYPE_WATER, absorbHeal)(h)
		case dex.TYPE_FIRE:
			h.rate *= 1.25
		}
	},
	dex.ABILITY_WONDER_GUARD: func(h *hit) {
		if h.move.Type != dex.TYPE_TYPELESS && h.effectiveness <= 1 {
			h.effectiveness = 0
		}
	},
	dex.ABILITY_SOUNDPROOF: func(h *hit) {
		if h.move.Sound {
			h.effectiveness = 0
		}
	},
	dex.ABILITY_THICK_FAT: func(h *hit) {
		if h.move.Type == dex.TYPE_FIRE || h.move.Type == dex.TYPE_ICE {
			h.attackMod *= 0.5
		}
	},
	dex.ABILITY_HEATPROOF: defenseRate(dex.TYPE_FIRE, 0.5),
	dex.ABILITY_MULTISCALE: func(h *hit) {
		if h.defender.FullHP() {
			h.rate *= 0.5
		}
	},
	dex.ABILITY_FILTER: func(h *hit) {
		if h.effectiveness > 1 {
			h.rate *= 0.75
		}
	},
	dex.ABILITY_SOLID_ROCK: func(h *hit) {
		if h.effectiveness > 1 {
			h.rate *= 0.75
		}
	},
	dex.ABILITY_FLUFFY: func(h *hit) {
		if h.move.Contact {
			h.rate *= 0.5
		}
		if h.move.Type == dex.TYPE_FIRE {
			h.rate *= 2
		}
	},
	dex.ABILITY_ICE_SCALES: func(h *hit) {
		if h.move.Category == dex.CATEGORY_SPECIAL {
			h.rate *= 0.5
		}
	},
	dex.ABILITY_MARVEL_SCALE: func(h *hit) {
		if h.defender.Status != dex.STATUS_NONE && h.move.Category == dex.CATEGORY_PHYSICAL {
			h.defenseMod *= 1.5
		}
	},
	dex.ABILITY_BATTLE_ARMOR: blockCrit,
	dex.ABILITY_SHELL_ARMOR:  blockCrit,
}

// blocksStatusMove runs the defender's before damage hooks for a status move
// aimed at it and reports whether the move is stopped. Dry checks skip the hooks' side effects.
func (b *BattleContext) blocksStatusMove(side Side, move *dex.MoveDefinition, dry bool) bool {
	h := b.newHit(side, move, damageOptions{dry: dry})
	h.effectiveness = dex.Effectiveness(move.Type, h.defender.Types()...)
	if !h.moldBreaker() {
		if hook, ok := defenseBeforeHooks[h.defender.Ability]; ok {
			hook(h)
		}
	}
	h.flush()

	if h.absorbed {
		return true
	}

	if h.defender.Ability == dex.ABILITY_SOUNDPROOF && move.Sound && !h.moldBreaker() {
		return true
	}

	// type immunity only stops moves that inflict a major status
	inflicts := slices.ContainsFunc(move.Effects, func(e dex.MoveEffect) bool {
		return e.Target == dex.TARGET_OPPONENT && e.Status != dex.STATUS_NONE
	})
	return inflicts && dex.Effectiveness(move.Type, h.defender.Types()...) == 0
}
