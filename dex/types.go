package dex

import (
	"fmt"
	"strings"
)

// Type is an elemental type. TYPE_TYPELESS never appears on a species and
// is only used for moves like struggle that ignore the type chart.
type Type int

const (
	TYPE_TYPELESS Type = iota
	TYPE_NORMAL
	TYPE_FIRE
	TYPE_WATER
	TYPE_ELECTRIC
	TYPE_GRASS
	TYPE_ICE
	TYPE_FIGHTING
	TYPE_POISON
	TYPE_GROUND
	TYPE_FLYING
	TYPE_PSYCHIC
	TYPE_BUG
	TYPE_ROCK
	TYPE_GHOST
	TYPE_DRAGON
	TYPE_DARK
	TYPE_STEEL
	TYPE_FAIRY
)

var typeNames = [...]string{
	TYPE_TYPELESS: "typeless",
	TYPE_NORMAL:   "normal",
	TYPE_FIRE:     "fire",
	TYPE_WATER:    "water",
	TYPE_ELECTRIC: "electric",
	TYPE_GRASS:    "grass",
	TYPE_ICE:      "ice",
	TYPE_FIGHTING: "fighting",
	TYPE_POISON:   "poison",
	TYPE_GROUND:   "ground",
	TYPE_FLYING:   "flying",
	TYPE_PSYCHIC:  "psychic",
	TYPE_BUG:      "bug",
	TYPE_ROCK:     "rock",
	TYPE_GHOST:    "ghost",
	TYPE_DRAGON:   "dragon",
	TYPE_DARK:     "dark",
	TYPE_STEEL:    "steel",
	TYPE_FAIRY:    "fairy",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return TYPE_TYPELESS, fmt.Errorf("unknown type %q", s)
}

// AllTypes lists every type that can appear on a species
func AllTypes() []Type {
	types := make([]Type, 0, len(typeNames)-1)
	for t := TYPE_NORMAL; t <= TYPE_FAIRY; t++ {
		types = append(types, t)
	}
	return types
}

// typeChart maps an attacking type to the defending types it does not hit
// for neutral damage. Anything missing is 1x.
var typeChart = map[Type]map[Type]float64{
	TYPE_NORMAL: {
		TYPE_ROCK:  .5,
		TYPE_STEEL: .5,
		TYPE_GHOST: 0,
	},
	TYPE_FIRE: {
		TYPE_GRASS: 2,
		TYPE_ICE:   2,
		TYPE_BUG:   2,
		TYPE_STEEL: 2,

		TYPE_FIRE:   .5,
		TYPE_WATER:  .5,
		TYPE_ROCK:   .5,
		TYPE_DRAGON: .5,
	},
	TYPE_WATER: {
		TYPE_FIRE:   2,
		TYPE_GROUND: 2,
		TYPE_ROCK:   2,

		TYPE_WATER:  .5,
		TYPE_GRASS:  .5,
		TYPE_DRAGON: .5,
	},
	TYPE_ELECTRIC: {
		TYPE_WATER:  2,
		TYPE_FLYING: 2,

		TYPE_ELECTRIC: .5,
		TYPE_GRASS:    .5,
		TYPE_DRAGON:   .5,

		TYPE_GROUND: 0,
	},
	TYPE_GRASS: {
		TYPE_WATER:  2,
		TYPE_GROUND: 2,
		TYPE_ROCK:   2,

		TYPE_FIRE:   .5,
		TYPE_GRASS:  .5,
		TYPE_POISON: .5,
		TYPE_FLYING: .5,
		TYPE_BUG:    .5,
		TYPE_DRAGON: .5,
		TYPE_STEEL:  .5,
	},
	TYPE_ICE: {
		TYPE_GRASS:  2,
		TYPE_GROUND: 2,
		TYPE_FLYING: 2,
		TYPE_DRAGON: 2,

		TYPE_FIRE:  .5,
		TYPE_WATER: .5,
		TYPE_ICE:   .5,
		TYPE_STEEL: .5,
	},
	TYPE_FIGHTING: {
		TYPE_NORMAL: 2,
		TYPE_ICE:    2,
		TYPE_ROCK:   2,
		TYPE_DARK:   2,
		TYPE_STEEL:  2,

		TYPE_POISON:  .5,
		TYPE_FLYING:  .5,
		TYPE_PSYCHIC: .5,
		TYPE_BUG:     .5,
		TYPE_FAIRY:   .5,

		TYPE_GHOST: 0,
	},
	TYPE_POISON: {
		TYPE_GRASS: 2,
		TYPE_FAIRY: 2,

		TYPE_POISON: .5,
		TYPE_GROUND: .5,
		TYPE_ROCK:   .5,
		TYPE_GHOST:  .5,

		TYPE_STEEL: 0,
	},
	TYPE_GROUND: {
		TYPE_FIRE:     2,
		TYPE_ELECTRIC: 2,
		TYPE_POISON:   2,
		TYPE_ROCK:     2,
		TYPE_STEEL:    2,

		TYPE_GRASS: .5,
		TYPE_BUG:   .5,

		TYPE_FLYING: 0,
	},
	TYPE_FLYING: {
		TYPE_GRASS:    2,
		TYPE_FIGHTING: 2,
		TYPE_BUG:      2,

		TYPE_ELECTRIC: .5,
		TYPE_ROCK:     .5,
		TYPE_STEEL:    .5,
	},
	TYPE_PSYCHIC: {
		TYPE_FIGHTING: 2,
		TYPE_POISON:   2,

		TYPE_PSYCHIC: .5,
		TYPE_STEEL:   .5,

		TYPE_DARK: 0,
	},
	TYPE_BUG: {
		TYPE_GRASS:   2,
		TYPE_PSYCHIC: 2,
		TYPE_DARK:    2,

		TYPE_FIRE:     .5,
		TYPE_FIGHTING: .5,
		TYPE_POISON:   .5,
		TYPE_FLYING:   .5,
		TYPE_GHOST:    .5,
		TYPE_STEEL:    .5,
		TYPE_FAIRY:    .5,
	},
	TYPE_ROCK: {
		TYPE_FIRE:   2,
		TYPE_ICE:    2,
		TYPE_FLYING: 2,
		TYPE_BUG:    2,

		TYPE_FIGHTING: .5,
		TYPE_GROUND:   .5,
		TYPE_STEEL:    .5,
	},
	TYPE_GHOST: {
		TYPE_PSYCHIC: 2,
		TYPE_GHOST:   2,

		TYPE_DARK: .5,

		TYPE_NORMAL: 0,
	},
	TYPE_DRAGON: {
		TYPE_DRAGON: 2,

		TYPE_STEEL: .5,

		TYPE_FAIRY: 0,
	},
	TYPE_DARK: {
		TYPE_PSYCHIC: 2,
		TYPE_GHOST:   2,

		TYPE_FIGHTING: .5,
		TYPE_DARK:     .5,
		TYPE_FAIRY:    .5,
	},
	TYPE_STEEL: {
		TYPE_ICE:   2,
		TYPE_ROCK:  2,
		TYPE_FAIRY: 2,

		TYPE_FIRE:     .5,
		TYPE_WATER:    .5,
		TYPE_ELECTRIC: .5,
		TYPE_STEEL:    .5,
	},
	TYPE_FAIRY: {
		TYPE_FIGHTING: 2,
		TYPE_DRAGON:   2,
		TYPE_DARK:     2,

		TYPE_FIRE:   .5,
		TYPE_POISON: .5,
		TYPE_STEEL:  .5,
	},
}

// Matchup returns the multiplier of a single attacking type against a single defending type
func Matchup(attack Type, defender Type) float64 {
	if attack == TYPE_TYPELESS || defender == TYPE_TYPELESS {
		return 1
	}

	mult, ok := typeChart[attack][defender]
	if !ok {
		return 1
	}

	return mult
}

// Effectiveness is the product of the matchup against every defending type
func Effectiveness(attack Type, defenders ...Type) float64 {
	effectiveness := 1.0
	for _, defender := range defenders {
		effectiveness *= Matchup(attack, defender)
	}

	return effectiveness
}
