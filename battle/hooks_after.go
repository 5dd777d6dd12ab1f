package battle

import (
	"github.com/nathanieltooley/duelcore/dex"
)

// afterHit describes a hit that just landed
type afterHit struct {
	b            *BattleContext
	attackerSide Side
	defenderSide Side
	attacker     *Combatant
	defender     *Combatant
	move         *dex.MoveDefinition
	damage       int
	// defender HP before the hit
	hpBefore int
}

type afterHook func(a *afterHit)

// PANIC_THRESHOLD is the HP fraction emergency exit and wimp out react to
const PANIC_THRESHOLD = 0.5

func contactChip(a *afterHit) {
	if !a.move.Contact || !a.attacker.Alive() {
		return
	}
	a.b.emit(EVENT_ABILITY, a.defenderSide, 0, "%s's %s hurt its attacker!", a.defender.Name(), a.defender.Ability)
	a.b.indirectDamage(a.attackerSide, a.attacker.fraction(1.0/8), a.defender.Ability.String())
}

func contactStatus(status dex.Status) afterHook {
	return func(a *afterHit) {
		if !a.move.Contact || !chance(a.b.rng, 0.3) {
			return
		}
		if a.b.inflictStatus(a.attackerSide, status, a.defenderSide) {
			a.b.emit(EVENT_ABILITY, a.defenderSide, 0, "%s's %s affected %s!", a.defender.Name(), a.defender.Ability, a.attacker.Name())
		}
	}
}

func selfBoost(deltas ...dex.StatDelta) afterHook {
	return func(a *afterHit) {
		if a.defender.Alive() {
			a.b.changeStats(a.defenderSide, a.defenderSide, deltas)
		}
	}
}

func panicSwitch(a *afterHit) {
	threshold := PANIC_THRESHOLD * float64(a.defender.MaxHP)
	if a.defender.Alive() && float64(a.hpBefore) >= threshold && float64(a.defender.HP) < threshold {
		a.b.panicked[a.defenderSide] = true
	}
}

var effectSporeStatuses = []dex.Status{dex.STATUS_POISON, dex.STATUS_PARA, dex.STATUS_SLEEP}

var defenseAfterHooks = map[dex.AbilityID]afterHook{
	dex.ABILITY_ROUGH_SKIN:   contactChip,
	dex.ABILITY_IRON_BARBS:   contactChip,
	dex.ABILITY_STATIC:       contactStatus(dex.STATUS_PARA),
	dex.ABILITY_FLAME_BODY:   contactStatus(dex.STATUS_BURN),
	dex.ABILITY_POISON_POINT: contactStatus(dex.STATUS_POISON),
	dex.ABILITY_EFFECT_SPORE: func(a *afterHit) {
		if a.attacker.HasType(dex.TYPE_GRASS) || a.attacker.Ability == dex.ABILITY_OVERCOAT {
			return
		}
		status := effectSporeStatuses[a.b.rng.IntN(len(effectSporeStatuses))]
		contactStatus(status)(a)
	},
	dex.ABILITY_WEAK_ARMOR: func(a *afterHit) {
		if a.move.Category == dex.CATEGORY_PHYSICAL {
			selfBoost(dex.StatDelta{Stat: dex.STAT_DEFENSE, Stages: -1}, dex.StatDelta{Stat: dex.STAT_SPEED, Stages: 2})(a)
		}
	},
	dex.ABILITY_STAMINA: selfBoost(dex.StatDelta{Stat: dex.STAT_DEFENSE, Stages: 1}),
	dex.ABILITY_JUSTIFIED: func(a *afterHit) {
		if a.move.Type == dex.TYPE_DARK {
			selfBoost(dex.StatDelta{Stat: dex.STAT_ATTACK, Stages: 1})(a)
		}
	},
	dex.ABILITY_RATTLED: func(a *afterHit) {
		switch a.move.Type {
		case dex.TYPE_BUG, dex.TYPE_GHOST, dex.TYPE_DARK:
			selfBoost(dex.StatDelta{Stat: dex.STAT_SPEED, Stages: 1})(a)
		}
	},
	dex.ABILITY_COLOR_CHANGE: func(a *afterHit) {
		t := a.move.Type
		if !a.defender.Alive() || t == dex.TYPE_TYPELESS || (len(a.defender.Types()) == 1 && a.defender.HasType(t)) {
			return
		}
		a.defender.TypeOverride = []dex.Type{t}
		a.b.emit(EVENT_ABILITY, a.defenderSide, 0, "%s's color change made it the %s type!", a.defender.Name(), t)
	},
	dex.ABILITY_EMERGENCY_EXIT: panicSwitch,
	dex.ABILITY_WIMP_OUT:       panicSwitch,
	dex.ABILITY_CURSED_BODY: func(a *afterHit) {
		if !a.attacker.Alive() || a.attacker.MoveIndex(a.move) == -1 || !chance(a.b.rng, 0.3) {
			return
		}
		if a.b.inflictVolatile(a.attackerSide, dex.VOLATILE_DISABLE, 0) {
			a.b.emit(EVENT_ABILITY, a.defenderSide, 0, "%s's cursed body disabled %s!", a.defender.Name(), dex.DisplayName(a.move.Name))
		}
	},
}

var offenseAfterHooks = map[dex.AbilityID]afterHook{
	dex.ABILITY_POISON_TOUCH: func(a *afterHit) {
		if a.move.Contact && chance(a.b.rng, 0.3) {
			a.b.inflictStatus(a.defenderSide, dex.STATUS_POISON, a.attackerSide)
		}
	},
	dex.ABILITY_MOXIE: func(a *afterHit) {
		if !a.defender.Alive() && a.attacker.Alive() {
			a.b.emit(EVENT_ABILITY, a.attackerSide, 0, "%s's moxie kicked in!", a.attacker.Name())
			a.b.changeStats(a.attackerSide, a.attackerSide, []dex.StatDelta{{Stat: dex.STAT_ATTACK, Stages: 1}})
		}
	},
	dex.ABILITY_STENCH: func(a *afterHit) {
		if a.defender.Alive() && chance(a.b.rng, 0.1) {
			a.b.inflictVolatile(a.defenderSide, dex.VOLATILE_FLINCH, 0)
		}
	},
}

// runAfterHooks resolves the defender's reaction to a hit, then the attacker's
func (b *BattleContext) runAfterHooks(a *afterHit) {
	if a.damage == 0 {
		return
	}
	if hook, ok := defenseAfterHooks[a.defender.Ability]; ok {
		hook(a)
	}
	if hook, ok := offenseAfterHooks[a.attacker.Ability]; ok {
		hook(a)
	}
}
