package dex

import (
	"fmt"
	"strings"
)

// Stat indexes the rank slots a combatant can have changed during battle.
// HP is not a rank slot.
type Stat int

const (
	STAT_ATTACK Stat = iota
	STAT_DEFENSE
	STAT_SPATTACK
	STAT_SPDEF
	STAT_SPEED
	STAT_ACCURACY
	STAT_EVASION
	STAT_CRITICAL
)

const RANK_SLOTS = 8

var statNames = []string{"attack", "defense", "special-attack", "special-defense", "speed", "accuracy", "evasion", "critical"}

func (s Stat) String() string { return enumName(statNames, int(s)) }

type Category int

const (
	CATEGORY_PHYSICAL Category = iota
	CATEGORY_SPECIAL
	CATEGORY_STATUS
)

var categoryNames = []string{"physical", "special", "status"}

func (c Category) String() string { return enumName(categoryNames, int(c)) }

type Target int

const (
	TARGET_OPPONENT Target = iota
	TARGET_SELF
	TARGET_FIELD
)

var targetNames = []string{"opponent", "self", "field"}

func (t Target) String() string { return enumName(targetNames, int(t)) }

// Position is where a combatant physically is. Anything but POSITION_GROUNDED
// makes it immune to moves that are not tagged to reach it.
type Position int

const (
	POSITION_GROUNDED Position = iota
	POSITION_AIRBORNE
	POSITION_UNDERGROUND
	POSITION_UNDERWATER
	POSITION_VANISHED
)

var positionNames = []string{"grounded", "airborne", "underground", "underwater", "vanished"}

func (p Position) String() string { return enumName(positionNames, int(p)) }

// Status is a major status ailment. A combatant holds at most one.
type Status int

const (
	STATUS_NONE Status = iota
	STATUS_BURN
	STATUS_PARA
	STATUS_POISON
	STATUS_TOXIC
	STATUS_FROZEN
	STATUS_SLEEP
)

var statusNames = []string{"none", "burn", "paralysis", "poison", "toxic", "freeze", "sleep"}

func (s Status) String() string { return enumName(statusNames, int(s)) }

// Volatile is a short lived condition. Any number can coexist.
type Volatile int

const (
	VOLATILE_NONE Volatile = iota
	VOLATILE_CONFUSION
	VOLATILE_TAUNT
	VOLATILE_ENCORE
	VOLATILE_DISABLE
	VOLATILE_YAWN
	VOLATILE_TRAPPED
	VOLATILE_LEECH_SEED
	VOLATILE_FLINCH
	VOLATILE_FOCUS_ENERGY
)

var volatileNames = []string{"none", "confusion", "taunt", "encore", "disable", "yawn", "trapped", "leech-seed", "flinch", "focus-energy"}

func (v Volatile) String() string { return enumName(volatileNames, int(v)) }

type Weather int

const (
	WEATHER_NONE Weather = iota
	WEATHER_RAIN
	WEATHER_SUN
	WEATHER_SANDSTORM
	WEATHER_SNOW
)

var weatherNames = []string{"none", "rain", "sun", "sandstorm", "snow"}

func (w Weather) String() string { return enumName(weatherNames, int(w)) }

// Field is the terrain covering the whole battlefield
type Field int

const (
	FIELD_NONE Field = iota
	FIELD_ELECTRIC
	FIELD_GRASSY
	FIELD_PSYCHIC
	FIELD_MISTY
)

var fieldNames = []string{"none", "electric", "grassy", "psychic", "misty"}

func (f Field) String() string { return enumName(fieldNames, int(f)) }

type Room int

const (
	ROOM_NONE Room = iota
	ROOM_TRICK
)

var roomNames = []string{"none", "trick-room"}

func (r Room) String() string { return enumName(roomNames, int(r)) }

type Screen int

const (
	SCREEN_NONE Screen = iota
	SCREEN_REFLECT
	SCREEN_LIGHT
	SCREEN_AURORA_VEIL
)

var screenNames = []string{"none", "reflect", "light-screen", "aurora-veil"}

func (s Screen) String() string { return enumName(screenNames, int(s)) }

type Hazard int

const (
	HAZARD_NONE Hazard = iota
	HAZARD_STEALTH_ROCK
	HAZARD_SPIKES
	HAZARD_TOXIC_SPIKES
	HAZARD_STICKY_WEB
)

var hazardNames = []string{"none", "stealth-rock", "spikes", "toxic-spikes", "sticky-web"}

func (h Hazard) String() string { return enumName(hazardNames, int(h)) }

// MaxLayers is how many times a hazard can be stacked on one side
func (h Hazard) MaxLayers() int {
	switch h {
	case HAZARD_SPIKES:
		return 3
	case HAZARD_TOXIC_SPIKES:
		return 2
	case HAZARD_NONE:
		return 0
	default:
		return 1
	}
}

// Aura tags power up a type for both sides while their owner is on the field
type Aura int

const (
	AURA_NONE Aura = iota
	AURA_FAIRY
	AURA_DARK
)

var auraNames = []string{"none", "fairy-aura", "dark-aura"}

func (a Aura) String() string { return enumName(auraNames, int(a)) }

// Disaster tags lower one stat of every combatant except their owner
type Disaster int

const (
	DISASTER_NONE Disaster = iota
	DISASTER_TABLETS
	DISASTER_SWORD
	DISASTER_VESSEL
	DISASTER_BEADS
)

var disasterNames = []string{"none", "tablets-of-ruin", "sword-of-ruin", "vessel-of-ruin", "beads-of-ruin"}

func (d Disaster) String() string { return enumName(disasterNames, int(d)) }

// Lowers reports which stat the disaster weakens
func (d Disaster) Lowers() Stat {
	switch d {
	case DISASTER_TABLETS:
		return STAT_ATTACK
	case DISASTER_SWORD:
		return STAT_DEFENSE
	case DISASTER_VESSEL:
		return STAT_SPATTACK
	default:
		return STAT_SPDEF
	}
}

// HealSource decides what a healing effect is a fraction of
type HealSource int

const (
	HEAL_FROM_MAX_HP HealSource = iota
	HEAL_FROM_DAMAGE_DEALT
	HEAL_FROM_TARGET_ATTACK
)

var healSourceNames = []string{"max-hp", "damage-dealt", "target-attack"}

func (h HealSource) String() string { return enumName(healSourceNames, int(h)) }

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func parseEnum[T ~int](kind string, names []string, s string) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}
