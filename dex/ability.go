package dex

import (
	"fmt"
	"strings"
)

// AbilityID is a closed set. Behaviour lives in hook tables keyed by these
// values inside the battle package.
type AbilityID int

const (
	ABILITY_NONE AbilityID = iota

	// appear
	ABILITY_DRIZZLE
	ABILITY_DROUGHT
	ABILITY_SAND_STREAM
	ABILITY_SNOW_WARNING
	ABILITY_ELECTRIC_SURGE
	ABILITY_GRASSY_SURGE
	ABILITY_PSYCHIC_SURGE
	ABILITY_MISTY_SURGE
	ABILITY_INTIMIDATE
	ABILITY_DOWNLOAD
	ABILITY_AIR_LOCK
	ABILITY_TRACE
	ABILITY_PRESSURE
	ABILITY_FAIRY_AURA
	ABILITY_DARK_AURA
	ABILITY_TABLETS_OF_RUIN
	ABILITY_SWORD_OF_RUIN
	ABILITY_VESSEL_OF_RUIN
	ABILITY_BEADS_OF_RUIN
	ABILITY_QUARK_DRIVE
	ABILITY_PROTOSYNTHESIS
	ABILITY_MOLD_BREAKER

	// offense before
	ABILITY_ADAPTABILITY
	ABILITY_TECHNICIAN
	ABILITY_IRON_FIST
	ABILITY_STRONG_JAW
	ABILITY_TOUGH_CLAWS
	ABILITY_SHEER_FORCE
	ABILITY_BLAZE
	ABILITY_TORRENT
	ABILITY_OVERGROW
	ABILITY_SWARM
	ABILITY_GUTS
	ABILITY_HUGE_POWER
	ABILITY_PURE_POWER
	ABILITY_HUSTLE
	ABILITY_SAND_FORCE
	ABILITY_SOLAR_POWER
	ABILITY_PUNK_ROCK
	ABILITY_RECKLESS
	ABILITY_TINTED_LENS
	ABILITY_ANALYTIC
	ABILITY_SNIPER
	ABILITY_SUPER_LUCK
	ABILITY_NO_GUARD
	ABILITY_MEGA_LAUNCHER
	ABILITY_SHARPNESS

	// defense before
	ABILITY_LEVITATE
	ABILITY_VOLT_ABSORB
	ABILITY_WATER_ABSORB
	ABILITY_FLASH_FIRE
	ABILITY_LIGHTNING_ROD
	ABILITY_STORM_DRAIN
	ABILITY_SAP_SIPPER
	ABILITY_MOTOR_DRIVE
	ABILITY_DRY_SKIN
	ABILITY_WONDER_GUARD
	ABILITY_THICK_FAT
	ABILITY_MULTISCALE
	ABILITY_FILTER
	ABILITY_SOLID_ROCK
	ABILITY_FLUFFY
	ABILITY_HEATPROOF
	ABILITY_ICE_SCALES
	ABILITY_SOUNDPROOF
	ABILITY_BATTLE_ARMOR
	ABILITY_SHELL_ARMOR
	ABILITY_STURDY
	ABILITY_UNAWARE
	ABILITY_MAGIC_GUARD
	ABILITY_MARVEL_SCALE

	// defense after
	ABILITY_ROUGH_SKIN
	ABILITY_IRON_BARBS
	ABILITY_STATIC
	ABILITY_FLAME_BODY
	ABILITY_POISON_POINT
	ABILITY_EFFECT_SPORE
	ABILITY_WEAK_ARMOR
	ABILITY_STAMINA
	ABILITY_JUSTIFIED
	ABILITY_COLOR_CHANGE
	ABILITY_RATTLED
	ABILITY_EMERGENCY_EXIT
	ABILITY_WIMP_OUT
	ABILITY_MIRROR_ARMOR
	ABILITY_CURSED_BODY

	// offense after
	ABILITY_POISON_TOUCH
	ABILITY_MOXIE
	ABILITY_STENCH

	// util
	ABILITY_SPEED_BOOST
	ABILITY_RAIN_DISH
	ABILITY_ICE_BODY
	ABILITY_POISON_HEAL
	ABILITY_MOODY
	ABILITY_SHED_SKIN
	ABILITY_HYDRATION
	ABILITY_ZEN_MODE
	ABILITY_TRUANT
	ABILITY_REGENERATOR
	ABILITY_NATURAL_CURE
	ABILITY_SWIFT_SWIM
	ABILITY_CHLOROPHYLL
	ABILITY_SAND_RUSH
	ABILITY_SLUSH_RUSH
	ABILITY_PRANKSTER
	ABILITY_GALE_WINGS
	ABILITY_TRIAGE
	ABILITY_SERENE_GRACE
	ABILITY_SKILL_LINK
	ABILITY_ROCK_HEAD
	ABILITY_CLEAR_BODY
	ABILITY_WHITE_SMOKE
	ABILITY_HYPER_CUTTER
	ABILITY_KEEN_EYE
	ABILITY_CONTRARY
	ABILITY_SIMPLE
	ABILITY_LIMBER
	ABILITY_INSOMNIA
	ABILITY_VITAL_SPIRIT
	ABILITY_IMMUNITY
	ABILITY_WATER_VEIL
	ABILITY_MAGMA_ARMOR
	ABILITY_OWN_TEMPO
	ABILITY_OBLIVIOUS
	ABILITY_INNER_FOCUS
	ABILITY_EARLY_BIRD
	ABILITY_SUCTION_CUPS
	ABILITY_SHADOW_TAG
	ABILITY_ARENA_TRAP
	ABILITY_COMPOUND_EYES
	ABILITY_SAND_VEIL
	ABILITY_SNOW_CLOAK
	ABILITY_OVERCOAT
	ABILITY_SYNCHRONIZE
	ABILITY_SWEET_VEIL

	abilityCount
)

// AbilityHook is a bitmask of the pipeline points an ability reacts at
type AbilityHook uint8

const (
	HOOK_APPEAR AbilityHook = 1 << iota
	HOOK_OFFENSE_BEFORE
	HOOK_OFFENSE_AFTER
	HOOK_DEFENSE_BEFORE
	HOOK_DEFENSE_AFTER
	HOOK_UTIL
)

// AbilityDefinition describes an ability. Hooks is filled in by the battle
// engine, which owns the hook tables.
type AbilityDefinition struct {
	ID    AbilityID
	Name  string
	Hooks AbilityHook
}

func (a AbilityDefinition) Has(hook AbilityHook) bool {
	return a.Hooks&hook != 0
}

var abilityNames = [abilityCount]string{
	ABILITY_NONE:            "none",
	ABILITY_DRIZZLE:         "drizzle",
	ABILITY_DROUGHT:         "drought",
	ABILITY_SAND_STREAM:     "sand-stream",
	ABILITY_SNOW_WARNING:    "snow-warning",
	ABILITY_ELECTRIC_SURGE:  "electric-surge",
	ABILITY_GRASSY_SURGE:    "grassy-surge",
	ABILITY_PSYCHIC_SURGE:   "psychic-surge",
	ABILITY_MISTY_SURGE:     "misty-surge",
	ABILITY_INTIMIDATE:      "intimidate",
	ABILITY_DOWNLOAD:        "download",
	ABILITY_AIR_LOCK:        "air-lock",
	ABILITY_TRACE:           "trace",
	ABILITY_PRESSURE:        "pressure",
	ABILITY_FAIRY_AURA:      "fairy-aura",
	ABILITY_DARK_AURA:       "dark-aura",
	ABILITY_TABLETS_OF_RUIN: "tablets-of-ruin",
	ABILITY_SWORD_OF_RUIN:   "sword-of-ruin",
	ABILITY_VESSEL_OF_RUIN:  "vessel-of-ruin",
	ABILITY_BEADS_OF_RUIN:   "beads-of-ruin",
	ABILITY_QUARK_DRIVE:     "quark-drive",
	ABILITY_PROTOSYNTHESIS:  "protosynthesis",
	ABILITY_MOLD_BREAKER:    "mold-breaker",

	ABILITY_ADAPTABILITY:  "adaptability",
	ABILITY_TECHNICIAN:    "technician",
	ABILITY_IRON_FIST:     "iron-fist",
	ABILITY_STRONG_JAW:    "strong-jaw",
	ABILITY_TOUGH_CLAWS:   "tough-claws",
	ABILITY_SHEER_FORCE:   "sheer-force",
	ABILITY_BLAZE:         "blaze",
	ABILITY_TORRENT:       "torrent",
	ABILITY_OVERGROW:      "overgrow",
	ABILITY_SWARM:         "swarm",
	ABILITY_GUTS:          "guts",
	ABILITY_HUGE_POWER:    "huge-power",
	ABILITY_PURE_POWER:    "pure-power",
	ABILITY_HUSTLE:        "hustle",
	ABILITY_SAND_FORCE:    "sand-force",
	ABILITY_SOLAR_POWER:   "solar-power",
	ABILITY_PUNK_ROCK:     "punk-rock",
	ABILITY_RECKLESS:      "reckless",
	ABILITY_TINTED_LENS:   "tinted-lens",
	ABILITY_ANALYTIC:      "analytic",
	ABILITY_SNIPER:        "sniper",
	ABILITY_SUPER_LUCK:    "super-luck",
	ABILITY_NO_GUARD:      "no-guard",
	ABILITY_MEGA_LAUNCHER: "mega-launcher",
	ABILITY_SHARPNESS:     "sharpness",

	ABILITY_LEVITATE:      "levitate",
	ABILITY_VOLT_ABSORB:   "volt-absorb",
	ABILITY_WATER_ABSORB:  "water-absorb",
	ABILITY_FLASH_FIRE:    "flash-fire",
	ABILITY_LIGHTNING_ROD: "lightning-rod",
	ABILITY_STORM_DRAIN:   "storm-drain",
	ABILITY_SAP_SIPPER:    "sap-sipper",
	ABILITY_MOTOR_DRIVE:   "motor-drive",
	ABILITY_DRY_SKIN:      "dry-skin",
	ABILITY_WONDER_GUARD:  "wonder-guard",
	ABILITY_THICK_FAT:     "thick-fat",
	ABILITY_MULTISCALE:    "multiscale",
	ABILITY_FILTER:        "filter",
	ABILITY_SOLID_ROCK:    "solid-rock",
	ABILITY_FLUFFY:        "fluffy",
	ABILITY_HEATPROOF:     "heatproof",
	ABILITY_ICE_SCALES:    "ice-scales",
	ABILITY_SOUNDPROOF:    "soundproof",
	ABILITY_BATTLE_ARMOR:  "battle-armor",
	ABILITY_SHELL_ARMOR:   "shell-armor",
	ABILITY_STURDY:        "sturdy",
	ABILITY_UNAWARE:       "unaware",
	ABILITY_MAGIC_GUARD:   "magic-guard",
	ABILITY_MARVEL_SCALE:  "marvel-scale",

	ABILITY_ROUGH_SKIN:     "rough-skin",
	ABILITY_IRON_BARBS:     "iron-barbs",
	ABILITY_STATIC:         "static",
	ABILITY_FLAME_BODY:     "flame-body",
	ABILITY_POISON_POINT:   "poison-point",
	ABILITY_EFFECT_SPORE:   "effect-spore",
	ABILITY_WEAK_ARMOR:     "weak-armor",
	ABILITY_STAMINA:        "stamina",
	ABILITY_JUSTIFIED:      "justified",
	ABILITY_COLOR_CHANGE:   "color-change",
	ABILITY_RATTLED:        "rattled",
	ABILITY_EMERGENCY_EXIT: "emergency-exit",
	ABILITY_WIMP_OUT:       "wimp-out",
	ABILITY_MIRROR_ARMOR:   "mirror-armor",
	ABILITY_CURSED_BODY:    "cursed-body",

	ABILITY_POISON_TOUCH: "poison-touch",
	ABILITY_MOXIE:        "moxie",
	ABILITY_STENCH:       "stench",

	ABILITY_SPEED_BOOST:   "speed-boost",
	ABILITY_RAIN_DISH:     "rain-dish",
	ABILITY_ICE_BODY:      "ice-body",
	ABILITY_POISON_HEAL:   "poison-heal",
	ABILITY_MOODY:         "moody",
	ABILITY_SHED_SKIN:     "shed-skin",
	ABILITY_HYDRATION:     "hydration",
	ABILITY_ZEN_MODE:      "zen-mode",
	ABILITY_TRUANT:        "truant",
	ABILITY_REGENERATOR:   "regenerator",
	ABILITY_NATURAL_CURE:  "natural-cure",
	ABILITY_SWIFT_SWIM:    "swift-swim",
	ABILITY_CHLOROPHYLL:   "chlorophyll",
	ABILITY_SAND_RUSH:     "sand-rush",
	ABILITY_SLUSH_RUSH:    "slush-rush",
	ABILITY_PRANKSTER:     "prankster",
	ABILITY_GALE_WINGS:    "gale-wings",
	ABILITY_TRIAGE:        "triage",
	ABILITY_SERENE_GRACE:  "serene-grace",
	ABILITY_SKILL_LINK:    "skill-link",
	ABILITY_ROCK_HEAD:     "rock-head",
	ABILITY_CLEAR_BODY:    "clear-body",
	ABILITY_WHITE_SMOKE:   "white-smoke",
	ABILITY_HYPER_CUTTER:  "hyper-cutter",
	ABILITY_KEEN_EYE:      "keen-eye",
	ABILITY_CONTRARY:      "contrary",
	ABILITY_SIMPLE:        "simple",
	ABILITY_LIMBER:        "limber",
	ABILITY_INSOMNIA:      "insomnia",
	ABILITY_VITAL_SPIRIT:  "vital-spirit",
	ABILITY_IMMUNITY:      "immunity",
	ABILITY_WATER_VEIL:    "water-veil",
	ABILITY_MAGMA_ARMOR:   "magma-armor",
	ABILITY_OWN_TEMPO:     "own-tempo",
	ABILITY_OBLIVIOUS:     "oblivious",
	ABILITY_INNER_FOCUS:   "inner-focus",
	ABILITY_EARLY_BIRD:    "early-bird",
	ABILITY_SUCTION_CUPS:  "suction-cups",
	ABILITY_SHADOW_TAG:    "shadow-tag",
	ABILITY_ARENA_TRAP:    "arena-trap",
	ABILITY_COMPOUND_EYES: "compound-eyes",
	ABILITY_SAND_VEIL:     "sand-veil",
	ABILITY_SNOW_CLOAK:    "snow-cloak",
	ABILITY_OVERCOAT:      "overcoat",
	ABILITY_SYNCHRONIZE:   "synchronize",
	ABILITY_SWEET_VEIL:    "sweet-veil",
}

func (a AbilityID) String() string {
	if a < 0 || a >= abilityCount {
		return fmt.Sprintf("ability(%d)", int(a))
	}
	return abilityNames[a]
}

// AllAbilities lists every defined ability except ABILITY_NONE
func AllAbilities() []AbilityID {
	ids := make([]AbilityID, 0, abilityCount-1)
	for id := ABILITY_NONE + 1; id < abilityCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

func ParseAbility(s string) (AbilityID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ABILITY_NONE, nil
	}
	for i, name := range abilityNames {
		if name == s {
			return AbilityID(i), nil
		}
	}
	return ABILITY_NONE, fmt.Errorf("unknown ability %q", s)
}

type ItemID int

const (
	ITEM_NONE ItemID = iota
	ITEM_FOCUS_SASH
	ITEM_LEFTOVERS
	ITEM_HEAVY_DUTY_BOOTS
)

var itemNames = []string{"none", "focus-sash", "leftovers", "heavy-duty-boots"}

func (i ItemID) String() string { return enumName(itemNames, int(i)) }

func ParseItem(s string) (ItemID, error) {
	if strings.TrimSpace(s) == "" {
		return ITEM_NONE, nil
	}
	return parseEnum[ItemID]("item", itemNames, s)
}
