package battle

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
)

var builderLogger = func() logr.Logger {
	return internalLogger.WithName("combatant_builder")
}

// CombatantBuilder builds a Combatant from a species template
type CombatantBuilder struct {
	c   Combatant
	err error
}

// NewCombatantBuilder starts from the template's level, ability and first four moves.
// Alternate forms are looked up in d so the combatant can change form in battle.
func NewCombatantBuilder(d *dex.Dex, template *dex.SpeciesTemplate) *CombatantBuilder {
	c := Combatant{
		Template:    template,
		Form:        template.Form,
		forms:       map[dex.FormID]*dex.SpeciesTemplate{template.Form: template},
		Level:       template.Level,
		Ability:     template.Ability,
		baseAbility: template.Ability,
		Boosted:     dex.STAT_ACCURACY,
	}

	var moves []*dex.MoveDefinition
	if d != nil {
		for _, form := range d.FormsOf(template.ID) {
			c.forms[form.Form] = form
		}
		moves = d.MovesOf(template)
	}

	pb := &CombatantBuilder{c: c}
	return pb.SetMoves(lo.Slice(moves, 0, MAX_MOVES)...)
}

func (pb *CombatantBuilder) SetNickname(name string) *CombatantBuilder {
	pb.c.Nickname = name
	return pb
}

func (pb *CombatantBuilder) SetLevel(level int) *CombatantBuilder {
	if level < 1 || level > 100 {
		pb.err = fmt.Errorf("%w: level %d out of range", ErrInvalidTeam, level)
		return pb
	}
	pb.c.Level = level
	return pb
}

func (pb *CombatantBuilder) SetAbility(ability dex.AbilityID) *CombatantBuilder {
	pb.c.Ability = ability
	pb.c.baseAbility = ability
	return pb
}

func (pb *CombatantBuilder) SetItem(item dex.ItemID) *CombatantBuilder {
	pb.c.Item = item
	return pb
}

func (pb *CombatantBuilder) SetMoves(moves ...*dex.MoveDefinition) *CombatantBuilder {
	if len(moves) > MAX_MOVES {
		pb.err = fmt.Errorf("%w: %d moves given, at most %d allowed", ErrInvalidTeam, len(moves), MAX_MOVES)
		return pb
	}

	if lo.Contains(moves, nil) {
		pb.err = fmt.Errorf("%w: nil move", ErrInvalidTeam)
		return pb
	}

	if len(lo.Uniq(moves)) != len(moves) {
		pb.err = fmt.Errorf("%w: duplicate move", ErrInvalidTeam)
		return pb
	}

	pb.c.Moves = moves
	return pb
}

func (pb *CombatantBuilder) Build() (*Combatant, error) {
	if pb.err != nil {
		return nil, pb.err
	}

	c := pb.c
	c.Stats = computeStats(c.Template.Base, c.Level)
	c.MaxHP = c.Stats.HP
	c.HP = c.MaxHP
	c.PP = make(map[dex.MoveID]int, len(c.Moves))
	for _, move := range c.Moves {
		c.PP[move.ID] = move.PP
	}

	builderLogger().V(2).Info("built combatant",
		"name", c.Name(),
		"level", c.Level,
		"hp", c.MaxHP,
		"attack", c.Stats.Attack,
		"defense", c.Stats.Defense,
		"spAttack", c.Stats.SpAttack,
		"spDefense", c.Stats.SpDefense,
		"speed", c.Stats.Speed,
		"moves", lo.Map(c.Moves, func(m *dex.MoveDefinition, _ int) string { return m.Name }),
	)

	return &c, nil
}

// MustBuild is Build for fixtures that are known to be valid
func (pb *CombatantBuilder) MustBuild() *Combatant {
	c, err := pb.Build()
	if err != nil {
		panic(err)
	}
	return c
}
