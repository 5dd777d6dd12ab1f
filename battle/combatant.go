package battle

import (
	"math"
	"slices"

	"github.com/nathanieltooley/duelcore/dex"
)

const (
	MAX_IV    = 31
	MAX_MOVES = 4
)

// Stats are the computed battle stats of a combatant in its current form
type Stats struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

func computeStats(base dex.BaseStats, level int) Stats {
	calc := func(b int) int {
		return (2*b+MAX_IV)*level/100 + 5
	}

	return Stats{
		HP:        (2*base.HP+MAX_IV)*level/100 + level + 10,
		Attack:    calc(base.Attack),
		Defense:   calc(base.Defense),
		SpAttack:  calc(base.SpAttack),
		SpDefense: calc(base.SpDefense),
		Speed:     calc(base.Speed),
	}
}

// Combatant is the battle record of one creature. It belongs to exactly one team.
type Combatant struct {
	Nickname string
	// Template of the current form
	Template *dex.SpeciesTemplate
	Form     dex.FormID
	forms    map[dex.FormID]*dex.SpeciesTemplate

	Level int
	Stats Stats
	HP    int
	MaxHP int

	Moves []*dex.MoveDefinition
	// Remaining pp keyed by move id
	PP map[dex.MoveID]int

	Ranks     RankState
	Status    dex.Status
	Volatiles StatusSet
	// Sleep turns left and toxic damage numerator
	SleepCounter int
	ToxicCount   int

	Ability     dex.AbilityID
	baseAbility dex.AbilityID
	Item        dex.ItemID
	Position    dex.Position

	Active        bool
	Protecting    bool
	ProtectStreak int
	Charging      *dex.MoveDefinition
	Locked        *dex.MoveDefinition
	LockTurns     int
	Recharging    bool
	// No action has been taken since the last switch in
	FirstTurn          bool
	SwitchedInThisTurn bool
	TruantIdle         bool
	FlashFire          bool
	// Stat boosted by quark drive or protosynthesis, dex.STAT_ACCURACY when inactive
	Boosted dex.Stat

	LastMove            *dex.MoveDefinition
	Missed              bool
	RankedUp            bool
	DamageTaken         int
	DamageTakenCategory dex.Category
	DamageDealt         int
	Disabled            *dex.MoveDefinition
	Encored             *dex.MoveDefinition
	TypeOverride        []dex.Type
}

func (c *Combatant) Name() string {
	if c.Nickname != "" {
		return c.Nickname
	}
	return dex.DisplayName(c.Template.Name)
}

func (c *Combatant) Alive() bool {
	return c.HP > 0
}

func (c *Combatant) Types() []dex.Type {
	if len(c.TypeOverride) > 0 {
		return c.TypeOverride
	}
	return c.Template.Types
}

func (c *Combatant) HasType(t dex.Type) bool {
	return slices.Contains(c.Types(), t)
}

func (c *Combatant) HPFraction() float64 {
	if c.MaxHP == 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP)
}

func (c *Combatant) FullHP() bool {
	return c.HP == c.MaxHP
}

// grounded combatants are hit by ground moves, hazards and terrain
func (c *Combatant) grounded() bool {
	return c.Position == dex.POSITION_GROUNDED && !c.HasType(dex.TYPE_FLYING) && c.Ability != dex.ABILITY_LEVITATE
}

// rawStat is the computed stat without stages
func (c *Combatant) rawStat(stat dex.Stat) int {
	switch stat {
	case dex.STAT_ATTACK:
		return c.Stats.Attack
	case dex.STAT_DEFENSE:
		return c.Stats.Defense
	case dex.STAT_SPATTACK:
		return c.Stats.SpAttack
	case dex.STAT_SPDEF:
		return c.Stats.SpDefense
	case dex.STAT_SPEED:
		return c.Stats.Speed
	default:
		return 0
	}
}

// fraction returns f of max HP, never less than 1
func (c *Combatant) fraction(f float64) int {
	return max(1, int(math.Floor(float64(c.MaxHP)*f)))
}

// takeDamage lowers HP and returns how much was lost
func (c *Combatant) takeDamage(amount int) int {
	amount = min(max(amount, 0), c.HP)
	c.HP -= amount
	return amount
}

// heal raises HP and returns how much was restored
func (c *Combatant) heal(amount int) int {
	amount = min(max(amount, 0), c.MaxHP-c.HP)
	c.HP += amount
	return amount
}

func (c *Combatant) MoveIndex(move *dex.MoveDefinition) int {
	return slices.Index(c.Moves, move)
}

// usable reports whether a move can be chosen this turn and why not if it can't
func (c *Combatant) usable(move *dex.MoveDefinition) (Reason, bool) {
	if c.PP[move.ID] <= 0 {
		return REASON_NO_PP, false
	}
	if c.Disabled == move {
		return REASON_MOVE_DISABLED, false
	}
	if c.Volatiles.Has(dex.VOLATILE_TAUNT) && !move.IsDamaging() {
		return REASON_TAUNTED, false
	}
	if c.Encored != nil && c.Encored != move {
		return REASON_ENCORED, false
	}
	return 0, true
}

// hasUsableMove reports whether anything but struggle can be picked
func (c *Combatant) hasUsableMove() bool {
	for _, move := range c.Moves {
		if _, ok := c.usable(move); ok {
			return true
		}
	}
	return false
}

// committed combatants continue an action chosen on an earlier turn
func (c *Combatant) committed() bool {
	return c.Recharging || c.Charging != nil || c.Locked != nil
}

// setForm swaps to another form of the same species and recomputes stats. HP is kept.
func (c *Combatant) setForm(form dex.FormID) bool {
	template, ok := c.forms[form]
	if !ok || form == c.Form {
		return false
	}

	c.Template = template
	c.Form = form
	stats := computeStats(template.Base, c.Level)
	stats.HP = c.Stats.HP
	c.Stats = stats
	return true
}

// clearVolatile resets everything that does not survive leaving the field
func (c *Combatant) clearVolatile() {
	c.Volatiles.Clear()
	c.Ranks.Reset()
	c.Position = dex.POSITION_GROUNDED
	c.Protecting = false
	c.ProtectStreak = 0
	c.Charging = nil
	c.Locked = nil
	c.LockTurns = 0
	c.Recharging = false
	c.Disabled = nil
	c.Encored = nil
	c.TypeOverride = nil
	c.FlashFire = false
	c.TruantIdle = false
	c.Boosted = dex.STAT_ACCURACY
	c.Ability = c.baseAbility
	c.LastMove = nil
	c.Missed = false
	c.RankedUp = false
}
