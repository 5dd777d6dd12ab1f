package battle

import (
	"math"

	"github.com/go-logr/logr"
	"github.com/nathanieltooley/duelcore/dex"
)

var damageLogger = func() logr.Logger {
	return internalLogger.WithName("damage")
}

// OHKO_CHANCE replaces the accuracy formula for one hit KO moves
const OHKO_CHANCE = 0.3

// DamageResult is the outcome of one hit against the opposing active combatant
type DamageResult struct {
	// False when the move could not be used at all, e.g. an OHKO vetoed by sturdy
	Succeeded      bool
	Hit            bool
	Damage         int
	SuperEffective bool
	Immune         bool
	Critical       bool
	// The defender's ability took the move, see EVENT_ABILITY
	Absorbed bool
	// A survive at 1 HP effect held the defender up
	Endured bool
}

type damageOptions struct {
	alwaysHit bool
	// 0 for the first hit of a move
	hitIndex int
	// replaces the move's power when positive
	power int
	// the attacker moves after the defender this turn
	late bool
	// no random draws and no side effects; used to estimate damage
	dry bool
}

// hit is the working state of one damage calculation. Ability hooks read and
// change it before the formula runs.
type hit struct {
	b            *BattleContext
	attackerSide Side
	defenderSide Side
	attacker     *Combatant
	defender     *Combatant
	move         *dex.MoveDefinition
	opts         damageOptions

	power         float64
	rate          float64
	effectiveness float64
	stab          bool
	attackMod     float64
	defenseMod    float64
	critRate      float64
	critLuck      bool
	critBlocked   bool
	absorbed      bool
	crit          bool

	pending []func()
}

// later queues a side effect of a hook. Dry runs drop them.
func (h *hit) later(f func()) {
	if h.opts.dry {
		return
	}
	h.pending = append(h.pending, f)
}

func (h *hit) flush() {
	for _, f := range h.pending {
		f()
	}
	h.pending = nil
}

func (b *BattleContext) newHit(side Side, move *dex.MoveDefinition, opts damageOptions) *hit {
	power := move.Power
	if opts.power > 0 {
		power = opts.power
	}

	return &hit{
		b:            b,
		attackerSide: side,
		defenderSide: side.Opponent(),
		attacker:     b.active(side),
		defender:     b.active(side.Opponent()),
		move:         move,
		opts:         opts,
		power:        float64(power),
		rate:         1,
		attackMod:    1,
		defenseMod:   1,
		critRate:     1.5,
	}
}

// moldBreaker reports whether the attacker ignores the defender's defensive abilities
func (h *hit) moldBreaker() bool {
	return h.attacker.Ability == dex.ABILITY_MOLD_BREAKER
}

// runBeforeHooks resolves defensive then offensive before damage hooks
func (h *hit) runBeforeHooks() {
	if !h.moldBreaker() {
		if hook, ok := defenseBeforeHooks[h.defender.Ability]; ok {
			hook(h)
		}
	}
	if hook, ok := offenseBeforeHooks[h.attacker.Ability]; ok {
		hook(h)
	}
}

// connects rolls accuracy for the first hit of a move
func (h *hit) connects() bool {
	if h.opts.alwaysHit || h.opts.dry || h.move.AlwaysHit {
		return true
	}
	if h.attacker.Ability == dex.ABILITY_NO_GUARD || h.defender.Ability == dex.ABILITY_NO_GUARD {
		return true
	}

	b := h.b
	if h.move.OHKO {
		return chance(b.rng, OHKO_CHANCE)
	}

	rate := 1.0
	switch {
	case h.attacker.Ability == dex.ABILITY_COMPOUND_EYES:
		rate *= 1.3
	case h.attacker.Ability == dex.ABILITY_HUSTLE && h.move.Category == dex.CATEGORY_PHYSICAL:
		rate *= 0.8
	}
	if !h.moldBreaker() {
		switch {
		case h.defender.Ability == dex.ABILITY_SAND_VEIL && b.weather() == dex.WEATHER_SANDSTORM:
			rate *= 0.8
		case h.defender.Ability == dex.ABILITY_SNOW_CLOAK && b.weather() == dex.WEATHER_SNOW:
			rate *= 0.8
		}
	}

	accuracy := h.attacker.Ranks.Get(dex.STAT_ACCURACY)
	evasion := h.defender.Ranks.Get(dex.STAT_EVASION)
	if h.defender.Ability == dex.ABILITY_UNAWARE {
		accuracy = 0
	}
	if h.attacker.Ability == dex.ABILITY_UNAWARE || (h.attacker.Ability == dex.ABILITY_KEEN_EYE && evasion > 0) {
		evasion = 0
	}

	return AccuracyRoll(b.rng, h.move.Accuracy, accuracy, evasion, rate)
}

// stats returns the attacking and defending stat values for this hit
func (h *hit) stats() (float64, float64) {
	move := h.move
	offStat, defStat := dex.STAT_ATTACK, dex.STAT_DEFENSE
	if move.Category == dex.CATEGORY_SPECIAL {
		offStat, defStat = dex.STAT_SPATTACK, dex.STAT_SPDEF
	}
	if move.OffenseOverride {
		offStat = move.OffenseStat
	}
	if move.DefenseOverride {
		defStat = move.DefenseStat
	}

	offender := h.attacker
	if move.OffenseFromTarget {
		offender = h.defender
	}

	offStage, defStage := offender.Ranks.Get(offStat), h.defender.Ranks.Get(defStat)
	if h.defender.Ability == dex.ABILITY_UNAWARE && !h.moldBreaker() {
		offStage = 0
	}
	if h.attacker.Ability == dex.ABILITY_UNAWARE {
		defStage = 0
	}
	if h.crit {
		offStage = max(offStage, 0)
		defStage = min(defStage, 0)
	}

	attack := float64(offender.rawStat(offStat)) * RankMultiplier(offStage) * h.attackMod
	defense := float64(h.defender.rawStat(defStat)) * RankMultiplier(defStage) * h.defenseMod

	if offender.Boosted == offStat {
		attack *= 1.3
	}
	if h.defender.Boosted == defStat {
		defense *= 1.3
	}

	b := h.b
	if h.attacker.Status == dex.STATUS_BURN && move.Category == dex.CATEGORY_PHYSICAL && h.attacker.Ability != dex.ABILITY_GUTS {
		attack *= 0.5
	}
	if h.attacker.FlashFire && move.Type == dex.TYPE_FIRE {
		attack *= 1.5
	}
	if b.env.DisasterLowers(offStat, h.attackerSide) {
		attack *= 0.75
	}
	if b.env.DisasterLowers(defStat, h.defenderSide) {
		defense *= 0.75
	}

	switch b.weather() {
	case dex.WEATHER_SANDSTORM:
		if h.defender.HasType(dex.TYPE_ROCK) && defStat == dex.STAT_SPDEF {
			defense *= 1.5
		}
	case dex.WEATHER_SNOW:
		if h.defender.HasType(dex.TYPE_ICE) && defStat == dex.STAT_DEFENSE {
			defense *= 1.5
		}
	}

	return attack, defense
}

// fieldRate collects the multipliers that come from the environment
func (h *hit) fieldRate() float64 {
	b := h.b
	move := h.move
	rate := 1.0

	if !h.crit {
		screens := b.env.Side(h.defenderSide)
		switch {
		case screens.HasScreen(dex.SCREEN_AURORA_VEIL):
			rate *= 0.5
		case move.Category == dex.CATEGORY_PHYSICAL && screens.HasScreen(dex.SCREEN_REFLECT):
			rate *= 0.5
		case move.Category == dex.CATEGORY_SPECIAL && screens.HasScreen(dex.SCREEN_LIGHT):
			rate *= 0.5
		}
	}

	switch b.env.Field() {
	case dex.FIELD_ELECTRIC:
		if move.Type == dex.TYPE_ELECTRIC && h.attacker.grounded() {
			rate *= 1.3
		}
	case dex.FIELD_GRASSY:
		if move.Type == dex.TYPE_GRASS && h.attacker.grounded() {
			rate *= 1.3
		}
		if move.Type == dex.TYPE_GROUND && move.CanReach(dex.POSITION_UNDERGROUND) && h.defender.grounded() {
			rate *= 0.5
		}
	case dex.FIELD_PSYCHIC:
		if move.Type == dex.TYPE_PSYCHIC && h.attacker.grounded() {
			rate *= 1.3
		}
	case dex.FIELD_MISTY:
		if move.Type == dex.TYPE_DRAGON && h.defender.grounded() {
			rate *= 0.5
		}
	}

	switch b.weather() {
	case dex.WEATHER_RAIN:
		if move.Type == dex.TYPE_WATER {
			rate *= 1.5
		} else if move.Type == dex.TYPE_FIRE {
			rate *= 0.5
		}
	case dex.WEATHER_SUN:
		if move.Type == dex.TYPE_FIRE {
			rate *= 1.5
		} else if move.Type == dex.TYPE_WATER {
			rate *= 0.5
		}
	}

	if (move.Type == dex.TYPE_FAIRY && b.env.HasAura(dex.AURA_FAIRY)) || (move.Type == dex.TYPE_DARK && b.env.HasAura(dex.AURA_DARK)) {
		rate *= 1.33
	}

	return rate
}

// calculateDamage runs the damage pipeline for one hit of move used by side
// against the opposing active combatant. It does not change HP.
func (b *BattleContext) calculateDamage(side Side, move *dex.MoveDefinition, opts damageOptions) DamageResult {
	h := b.newHit(side, move, opts)
	defer h.flush()

	if move.Counter != nil {
		return h.counter()
	}

	if !move.CanReach(h.defender.Position) {
		return DamageResult{Succeeded: true, Immune: true}
	}

	if opts.hitIndex == 0 && !h.connects() {
		return DamageResult{Succeeded: true}
	}

	h.effectiveness = dex.Effectiveness(move.Type, h.defender.Types()...)
	h.stab = move.Type != dex.TYPE_TYPELESS && h.attacker.HasType(move.Type)
	h.runBeforeHooks()

	if h.absorbed {
		return DamageResult{Succeeded: true, Hit: true, Immune: true, Absorbed: true}
	}
	if h.effectiveness == 0 {
		return DamageResult{Succeeded: true, Hit: true, Immune: true}
	}

	result := DamageResult{Succeeded: true, Hit: true, SuperEffective: h.effectiveness > 1}

	if move.OHKO {
		if h.defender.Ability == dex.ABILITY_STURDY && !h.moldBreaker() {
			h.later(func() {
				b.emit(EVENT_ABILITY, h.defenderSide, 0, "%s's sturdy prevents one hit KOs!", h.defender.Name())
			})
			return DamageResult{}
		}
		result.Damage = h.defender.HP
		return result
	}

	if h.stab {
		h.rate *= 1.5
	}

	if !opts.dry && !h.critBlocked {
		bonus := move.CritBonus
		if h.attacker.Volatiles.Has(dex.VOLATILE_FOCUS_ENERGY) {
			bonus += 2
		}
		h.crit = CriticalRoll(b.rng, h.attacker.Ranks.Get(dex.STAT_CRITICAL), bonus, h.critLuck)
	}
	if h.crit {
		h.rate *= h.critRate
		result.Critical = true
	}

	attack, defense := h.stats()
	rate := h.rate * h.fieldRate()
	raw := formulaDamage(attack, defense, h.power, rate, h.effectiveness, h.defender.MaxHP)

	result.Damage, result.Endured = h.clamp(raw)

	damageLogger().V(2).Info("damage",
		"move", move.Name,
		"attacker", h.attacker.Name(),
		"defender", h.defender.Name(),
		"power", h.power,
		"attack", attack,
		"defense", defense,
		"rate", rate,
		"effectiveness", h.effectiveness,
		"crit", h.crit,
		"raw", raw,
		"damage", result.Damage,
	)

	return result
}

// formulaDamage is the unclamped damage of a hit
func formulaDamage(attack, defense, power, rate, effectiveness float64, maxHP int) float64 {
	durability := defense * float64(maxHP) / 0.411
	return attack * power * rate * effectiveness / durability * float64(maxHP)
}

// clamp keeps damage in [1, current HP] and applies survive at 1 HP effects
func (h *hit) clamp(raw float64) (int, bool) {
	defender := h.defender
	damage := int(pokeRound(raw))
	damage = min(max(damage, 1), defender.HP)

	if damage < defender.HP || !defender.FullHP() || defender.HP <= 1 {
		return damage, false
	}

	switch {
	case defender.Ability == dex.ABILITY_STURDY && !h.moldBreaker():
		h.later(func() {
			h.b.emit(EVENT_ABILITY, h.defenderSide, 0, "%s endured the hit with sturdy!", defender.Name())
		})
	case defender.Item == dex.ITEM_FOCUS_SASH:
		h.later(func() {
			defender.Item = dex.ITEM_NONE
			h.b.emit(EVENT_MESSAGE, h.defenderSide, 0, "%s hung on using its focus sash!", defender.Name())
		})
	default:
		return damage, false
	}

	return defender.HP - 1, true
}

// counter returns the damage taken this turn times the multiplier when the category matches
func (h *hit) counter() DamageResult {
	counter := h.move.Counter
	attacker := h.attacker

	if attacker.DamageTaken == 0 || (counter.Category != dex.CATEGORY_STATUS && counter.Category != attacker.DamageTakenCategory) {
		return DamageResult{}
	}
	if dex.Effectiveness(h.move.Type, h.defender.Types()...) == 0 {
		return DamageResult{Succeeded: true, Hit: true, Immune: true}
	}

	damage := int(pokeRound(float64(attacker.DamageTaken) * counter.Multiplier))
	return DamageResult{Succeeded: true, Hit: true, Damage: min(max(damage, 1), h.defender.HP)}
}

// confusionDamage is the fixed formula used when a confused combatant hits itself
func (b *BattleContext) confusionDamage(c *Combatant) int {
	attack := float64(c.rawStat(dex.STAT_ATTACK)) * RankMultiplier(c.Ranks.Get(dex.STAT_ATTACK))
	defense := float64(c.rawStat(dex.STAT_DEFENSE)) * RankMultiplier(c.Ranks.Get(dex.STAT_DEFENSE))
	raw := formulaDamage(attack, defense, float64(dex.ConfusionHit.Power), 1, 1, c.MaxHP)
	return min(max(int(pokeRound(raw)), 1), c.HP)
}

// pokeRound rounds to the nearest integer with halves going down
func pokeRound(x float64) float64 {
	intPart := math.Trunc(x)
	distance := math.Abs(x - intPart)

	if distance > 0.5 {
		return math.Ceil(x)
	}
	return math.Floor(x)
}
