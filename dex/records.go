package dex

import (
	"fmt"
	"slices"
	"strings"
)

// yaml shapes of the data files. They are converted into the definition
// types once every name has been resolved.

type moveFile struct {
	Moves []moveRecord `yaml:"moves"`
}

type moveRecord struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Power    int    `yaml:"power"`
	Accuracy int    `yaml:"accuracy"`
	PP       int    `yaml:"pp"`
	Type     string `yaml:"type"`
	Category string `yaml:"category"`
	Target   string `yaml:"target"`
	Priority int    `yaml:"priority"`
	Crit     int    `yaml:"crit"`

	Flags    []string       `yaml:"flags"`
	Effects  []effectRecord `yaml:"effects"`
	Demerits []effectRecord `yaml:"demerits"`

	MultiHit *struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"multi_hit"`
	Charge *struct {
		Position       string `yaml:"position"`
		InstantWeather string `yaml:"instant_weather"`
	} `yaml:"charge"`
	Counter *struct {
		Category   string  `yaml:"category"`
		Multiplier float64 `yaml:"multiplier"`
	} `yaml:"counter"`

	Crash             float64  `yaml:"crash"`
	Reaches           []string `yaml:"reaches"`
	LockTurns         int      `yaml:"lock_turns"`
	TerrainPriority   string   `yaml:"terrain_priority"`
	OffenseStat       string   `yaml:"offense_stat"`
	OffenseFromTarget bool     `yaml:"offense_from_target"`
	DefenseStat       string   `yaml:"defense_stat"`
}

type effectRecord struct {
	Chance       float64        `yaml:"chance"`
	Target       string         `yaml:"target"`
	Stats        map[string]int `yaml:"stats"`
	Status       string         `yaml:"status"`
	Volatile     string         `yaml:"volatile"`
	Heal         float64        `yaml:"heal"`
	HealSource   string         `yaml:"heal_source"`
	Recoil       float64        `yaml:"recoil"`
	SelfDamage   float64        `yaml:"self_damage"`
	TypeChange   string         `yaml:"type_change"`
	BreakScreens bool           `yaml:"break_screens"`
	Weather      string         `yaml:"weather"`
	Field        string         `yaml:"field"`
	Room         string         `yaml:"room"`
	Screen       string         `yaml:"screen"`
	Hazard       string         `yaml:"hazard"`
	ClearHazards bool           `yaml:"clear_hazards"`
	Duration     int            `yaml:"duration"`
}

type speciesFile struct {
	Species []speciesRecord `yaml:"species"`
}

type statsRecord struct {
	HP        int `yaml:"hp"`
	Attack    int `yaml:"attack"`
	Defense   int `yaml:"defense"`
	SpAttack  int `yaml:"sp_attack"`
	SpDefense int `yaml:"sp_defense"`
	Speed     int `yaml:"speed"`
}

type formRecord struct {
	Form    string       `yaml:"form"`
	Types   []string     `yaml:"types"`
	Base    *statsRecord `yaml:"base"`
	Ability string       `yaml:"ability"`
}

type speciesRecord struct {
	ID      int          `yaml:"id"`
	Name    string       `yaml:"name"`
	Types   []string     `yaml:"types"`
	Base    statsRecord  `yaml:"base"`
	Ability string       `yaml:"ability"`
	Level   int          `yaml:"level"`
	Moves   []string     `yaml:"moves"`
	Forms   []formRecord `yaml:"forms"`
}

// optional parses an enum field that may be left empty
func optional[T ~int](kind string, names []string, s string) (T, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return parseEnum[T](kind, names, s)
}

func (r effectRecord) toEffect() (MoveEffect, error) {
	var err error
	effect := MoveEffect{
		Chance:             r.Chance,
		HealFraction:       r.Heal,
		RecoilFraction:     r.Recoil,
		SelfDamageFraction: r.SelfDamage,
		BreakScreens:       r.BreakScreens,
		ClearHazards:       r.ClearHazards,
		Duration:           r.Duration,
	}

	if effect.Chance < 0 || effect.Chance > 1 {
		return effect, fmt.Errorf("chance %v out of range", effect.Chance)
	}

	if effect.Target, err = optional[Target]("target", targetNames, r.Target); err != nil {
		return effect, err
	}
	if effect.Status, err = optional[Status]("status", statusNames, r.Status); err != nil {
		return effect, err
	}
	if effect.Volatile, err = optional[Volatile]("volatile", volatileNames, r.Volatile); err != nil {
		return effect, err
	}
	if effect.HealSource, err = optional[HealSource]("heal source", healSourceNames, r.HealSource); err != nil {
		return effect, err
	}
	if effect.Weather, err = optional[Weather]("weather", weatherNames, r.Weather); err != nil {
		return effect, err
	}
	if effect.Field, err = optional[Field]("field", fieldNames, r.Field); err != nil {
		return effect, err
	}
	if effect.Room, err = optional[Room]("room", roomNames, r.Room); err != nil {
		return effect, err
	}
	if effect.Screen, err = optional[Screen]("screen", screenNames, r.Screen); err != nil {
		return effect, err
	}
	if effect.Hazard, err = optional[Hazard]("hazard", hazardNames, r.Hazard); err != nil {
		return effect, err
	}
	if r.TypeChange != "" {
		if effect.TypeChange, err = ParseType(r.TypeChange); err != nil {
			return effect, err
		}
	}

	for name, stages := range r.Stats {
		stat, err := parseEnum[Stat]("stat", statNames, name)
		if err != nil {
			return effect, err
		}
		effect.Stats = append(effect.Stats, StatDelta{Stat: stat, Stages: stages})
	}
	// map order is random, keep rank changes in slot order
	slices.SortFunc(effect.Stats, func(a, b StatDelta) int { return int(a.Stat) - int(b.Stat) })

	return effect, nil
}

func (r moveRecord) toMove() (*MoveDefinition, error) {
	var err error
	move := &MoveDefinition{
		ID:                MoveID(r.ID),
		Name:              r.Name,
		Power:             r.Power,
		Accuracy:          r.Accuracy,
		PP:                r.PP,
		Priority:          r.Priority,
		CritBonus:         r.Crit,
		LockTurns:         r.LockTurns,
		Crash:             r.Crash,
		OffenseFromTarget: r.OffenseFromTarget,
	}

	if r.ID <= 0 {
		return nil, fmt.Errorf("id must be positive, got %d", r.ID)
	}
	if move.Type, err = ParseType(r.Type); err != nil {
		return nil, err
	}
	if move.Category, err = parseEnum[Category]("category", categoryNames, r.Category); err != nil {
		return nil, err
	}
	if move.Target, err = optional[Target]("target", targetNames, r.Target); err != nil {
		return nil, err
	}
	if move.HighPriorityInTerrain, err = optional[Field]("field", fieldNames, r.TerrainPriority); err != nil {
		return nil, err
	}
	if r.OffenseStat != "" {
		move.OffenseOverride = true
		if move.OffenseStat, err = parseEnum[Stat]("stat", statNames, r.OffenseStat); err != nil {
			return nil, err
		}
	}
	if r.DefenseStat != "" {
		move.DefenseOverride = true
		if move.DefenseStat, err = parseEnum[Stat]("stat", statNames, r.DefenseStat); err != nil {
			return nil, err
		}
	}

	for _, flag := range r.Flags {
		if err := move.setFlag(flag); err != nil {
			return nil, err
		}
	}

	for _, reach := range r.Reaches {
		pos, err := parseEnum[Position]("position", positionNames, reach)
		if err != nil {
			return nil, err
		}
		move.Reaches = append(move.Reaches, pos)
	}

	if r.MultiHit != nil {
		if r.MultiHit.Min < 1 || r.MultiHit.Max < r.MultiHit.Min {
			return nil, fmt.Errorf("bad multi hit range %d-%d", r.MultiHit.Min, r.MultiHit.Max)
		}
		move.MultiHit = &MultiHit{Min: r.MultiHit.Min, Max: r.MultiHit.Max}
	}

	if r.Charge != nil {
		charge := &Charge{}
		if charge.Position, err = optional[Position]("position", positionNames, r.Charge.Position); err != nil {
			return nil, err
		}
		if charge.InstantWeather, err = optional[Weather]("weather", weatherNames, r.Charge.InstantWeather); err != nil {
			return nil, err
		}
		move.Charge = charge
	}

	if r.Counter != nil {
		counter := &Counter{Multiplier: r.Counter.Multiplier, Category: CATEGORY_STATUS}
		if r.Counter.Category != "any" {
			if counter.Category, err = parseEnum[Category]("category", categoryNames, r.Counter.Category); err != nil {
				return nil, err
			}
		}
		move.Counter = counter
	}

	for i, er := range r.Effects {
		effect, err := er.toEffect()
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		if er.Target == "" {
			effect.Target = move.Target
		}
		move.Effects = append(move.Effects, effect)
	}

	for i, er := range r.Demerits {
		effect, err := er.toEffect()
		if err != nil {
			return nil, fmt.Errorf("demerit %d: %w", i, err)
		}
		if er.Target == "" {
			effect.Target = TARGET_SELF
		}
		move.Demerits = append(move.Demerits, effect)
	}

	return move, nil
}

func (m *MoveDefinition) setFlag(flag string) error {
	switch strings.ToLower(flag) {
	case "contact":
		m.Contact = true
	case "sound":
		m.Sound = true
	case "punch":
		m.Punch = true
	case "bite":
		m.Bite = true
	case "pulse":
		m.Pulse = true
	case "slicing":
		m.Slicing = true
	case "heal":
		m.Heal = true
	case "exile":
		m.Exile = true
	case "user-switches":
		m.UserSwitches = true
	case "baton-pass":
		m.BatonPass = true
	case "protect":
		m.Protect = true
	case "ohko":
		m.OHKO = true
	case "recharge":
		m.Recharge = true
	case "self-destruct":
		m.SelfDestruct = true
	case "thaws-user":
		m.ThawsUser = true
	case "sucker":
		m.FailsUnlessTargetAttacks = true
	case "first-turn-only":
		m.FirstTurnOnly = true
	case "always-hit":
		m.AlwaysHit = true
	case "power-if-last":
		m.PowerIfLast = true
	default:
		return fmt.Errorf("unknown flag %q", flag)
	}

	return nil
}

func (r statsRecord) toStats() BaseStats {
	return BaseStats{
		HP:        r.HP,
		Attack:    r.Attack,
		Defense:   r.Defense,
		SpAttack:  r.SpAttack,
		SpDefense: r.SpDefense,
		Speed:     r.Speed,
	}
}

func parseTypes(names []string) ([]Type, error) {
	if len(names) == 0 || len(names) > 2 {
		return nil, fmt.Errorf("species needs 1 or 2 types, got %d", len(names))
	}

	types := make([]Type, 0, len(names))
	for _, name := range names {
		t, err := ParseType(name)
		if err != nil {
			return nil, err
		}
		if t == TYPE_TYPELESS {
			return nil, fmt.Errorf("species cannot be typeless")
		}
		types = append(types, t)
	}

	return types, nil
}

// toSpecies returns the base form followed by every alternate form
func (r speciesRecord) toSpecies(moveNames map[string]MoveID) ([]*SpeciesTemplate, error) {
	if r.ID <= 0 {
		return nil, fmt.Errorf("id must be positive, got %d", r.ID)
	}

	types, err := parseTypes(r.Types)
	if err != nil {
		return nil, err
	}

	ability, err := ParseAbility(r.Ability)
	if err != nil {
		return nil, err
	}

	moves := make([]MoveID, 0, len(r.Moves))
	for _, name := range r.Moves {
		id, ok := moveNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMove, name)
		}
		moves = append(moves, id)
	}

	level := r.Level
	if level == 0 {
		level = DEFAULT_LEVEL
	}

	base := &SpeciesTemplate{
		ID:      SpeciesID(r.ID),
		Form:    FORM_BASE,
		Name:    r.Name,
		Types:   types,
		Base:    r.Base.toStats(),
		Ability: ability,
		Moves:   moves,
		Level:   level,
	}
	templates := []*SpeciesTemplate{base}

	for _, fr := range r.Forms {
		if fr.Form == "" {
			return nil, fmt.Errorf("form of %q has no name", r.Name)
		}

		form := *base
		form.Form = FormID(fr.Form)
		form.Name = fmt.Sprintf("%s-%s", r.Name, fr.Form)

		if len(fr.Types) > 0 {
			if form.Types, err = parseTypes(fr.Types); err != nil {
				return nil, fmt.Errorf("form %q: %w", fr.Form, err)
			}
		}
		if fr.Base != nil {
			form.Base = fr.Base.toStats()
		}
		if fr.Ability != "" {
			if form.Ability, err = ParseAbility(fr.Ability); err != nil {
				return nil, fmt.Errorf("form %q: %w", fr.Form, err)
			}
		}

		templates = append(templates, &form)
	}

	return templates, nil
}
