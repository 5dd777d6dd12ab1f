package dex

type MoveID int

// MOVE_STRUGGLE is reserved for the move used when nothing else is usable
const MOVE_STRUGGLE MoveID = -1

type StatDelta struct {
	Stat   Stat
	Stages int
}

// MoveEffect is one independently rolled consequence of a move
type MoveEffect struct {
	// Chance in [0, 1]. 0 is treated as always.
	Chance float64
	Target Target

	Stats    []StatDelta
	Status   Status
	Volatile Volatile

	HealFraction float64
	HealSource   HealSource
	// Fraction of damage dealt taken back as recoil
	RecoilFraction float64
	// Fraction of max HP lost, used for crash damage on demerits
	SelfDamageFraction float64

	TypeChange   Type
	BreakScreens bool

	Weather      Weather
	Field        Field
	Room         Room
	Screen       Screen
	Hazard       Hazard
	ClearHazards bool
	// Overrides the default duration of a weather/field/room/screen/volatile
	Duration int
}

// Always reports whether the effect skips its roll
func (e MoveEffect) Always() bool {
	return e.Chance <= 0 || e.Chance >= 1
}

type MultiHit struct {
	Min int
	Max int
}

// Charge describes a two turn move. The user sits in Position during the first turn.
type Charge struct {
	Position Position
	// The charge turn is skipped under this weather
	InstantWeather Weather
}

// Counter moves return damage received this turn instead of using the damage formula
type Counter struct {
	// CATEGORY_STATUS here means any damaging category
	Category   Category
	Multiplier float64
}

// MoveDefinition is an immutable move template. Accuracy above 100 never misses.
type MoveDefinition struct {
	ID        MoveID
	Name      string
	Power     int
	Accuracy  int
	PP        int
	Type      Type
	Category  Category
	Target    Target
	Priority  int
	CritBonus int

	Effects  []MoveEffect
	Demerits []MoveEffect

	Contact bool
	Sound   bool
	Punch   bool
	Bite    bool
	Pulse   bool
	Slicing bool
	// Heal marks moves boosted by triage
	Heal bool

	MultiHit *MultiHit
	Charge   *Charge
	Counter  *Counter
	Reaches  []Position

	Exile        bool
	UserSwitches bool
	BatonPass    bool
	Protect      bool
	OHKO         bool
	Recharge     bool
	SelfDestruct bool
	ThawsUser    bool
	// Turns the user is locked into the move, rolled between 2 and LockTurns
	LockTurns int
	// Fails unless the target is about to use a damaging move
	FailsUnlessTargetAttacks bool
	FirstTurnOnly            bool
	HighPriorityInTerrain    Field
	AlwaysHit                bool
	// Power doubles when the user moves after the target
	PowerIfLast bool
	// Fraction of max HP the user loses when the move misses
	Crash float64

	OffenseStat       Stat
	OffenseFromTarget bool
	DefenseStat       Stat
	// Physical/special category swap for the defensive stat only
	DefenseOverride bool
	OffenseOverride bool
}

func (m *MoveDefinition) IsDamaging() bool {
	return m.Category != CATEGORY_STATUS
}

// CanReach reports whether the move hits a target sitting in position p
func (m *MoveDefinition) CanReach(p Position) bool {
	if p == POSITION_GROUNDED {
		return true
	}
	for _, reach := range m.Reaches {
		if reach == p {
			return true
		}
	}
	return false
}

// Struggle is the typeless fallback move. It is never part of a data set.
var Struggle = &MoveDefinition{
	ID:        MOVE_STRUGGLE,
	Name:      "struggle",
	Power:     50,
	Accuracy:  101,
	PP:        1,
	Type:      TYPE_TYPELESS,
	Category:  CATEGORY_PHYSICAL,
	Target:    TARGET_OPPONENT,
	Contact:   true,
	AlwaysHit: true,
	Demerits: []MoveEffect{
		{Target: TARGET_SELF, SelfDamageFraction: .25},
	},
}

// ConfusionHit is the move used when a confused combatant hits itself
var ConfusionHit = &MoveDefinition{
	ID:        MOVE_STRUGGLE - 1,
	Name:      "confusion-hit",
	Power:     40,
	Accuracy:  101,
	Type:      TYPE_TYPELESS,
	Category:  CATEGORY_PHYSICAL,
	Target:    TARGET_SELF,
	AlwaysHit: true,
}
