package battle

import (
	"slices"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
)

// CombatantView is a read only copy of a team member's state
type CombatantView struct {
	Name       string
	Species    dex.SpeciesID
	Form       dex.FormID
	Level      int
	HP         int
	MaxHP      int
	HPFraction float64
	Types      []dex.Type
	Ranks      RankState
	Major      dex.Status
	Volatiles  []dex.Volatile
	// Remaining pp over max pp, in move slot order
	PP       []float64
	Moves    []string
	Position dex.Position
	Active   bool
	Fainted  bool
	Ability  dex.AbilityID
	Item     dex.ItemID
}

type ScreenView struct {
	Screen    dex.Screen
	Remaining int
}

type HazardView struct {
	Hazard dex.Hazard
	Layers int
}

type SideView struct {
	Hazards []HazardView
	Screens []ScreenView
}

type EnvironmentView struct {
	Weather          dex.Weather
	WeatherRemaining int
	Field            dex.Field
	FieldRemaining   int
	Room             dex.Room
	RoomRemaining    int
	Auras            []dex.Aura
	Disasters        []dex.Disaster
	Sides            [2]SideView
}

type TeamView struct {
	ActiveIndex int
	Members     []CombatantView
}

// BattleView is a snapshot of a battle for observers. Nothing in it aliases engine state.
type BattleView struct {
	Turn        int
	Over        bool
	Winner      Side
	Phase       string
	Teams       [2]TeamView
	Environment EnvironmentView
}

func (v BattleView) Active(side Side) CombatantView {
	team := v.Teams[side]
	return team.Members[team.ActiveIndex]
}

func (b *BattleContext) Snapshot() BattleView {
	b.mu.Lock()
	defer b.mu.Unlock()

	view := BattleView{
		Turn:   b.turn,
		Over:   b.over,
		Winner: b.winner,
		Phase:  b.phase.Current(),
	}

	for _, side := range sides {
		team := b.teams[side]
		view.Teams[side] = TeamView{
			ActiveIndex: team.ActiveIndex,
			Members:     lo.Map(team.Members, func(c *Combatant, _ int) CombatantView { return viewOf(c) }),
		}
	}

	remaining := func(timer Timer) int {
		e, _ := b.durations.Get(SIDE_NONE, timer, NO_OWNER)
		return e.Remaining
	}

	env := EnvironmentView{
		Weather:          b.env.Weather(),
		WeatherRemaining: remaining(TIMER_WEATHER),
		Field:            b.env.Field(),
		FieldRemaining:   remaining(TIMER_FIELD),
		Room:             b.env.Room(),
		RoomRemaining:    remaining(TIMER_ROOM),
		Auras:            b.env.Auras(),
		Disasters:        b.env.Disasters(),
	}
	for _, side := range sides {
		sideEnv := b.env.Side(side)
		env.Sides[side] = SideView{
			Hazards: lo.Map(sideEnv.Hazards(), func(h dex.Hazard, _ int) HazardView {
				return HazardView{Hazard: h, Layers: sideEnv.Layers(h)}
			}),
			Screens: lo.Map(sideEnv.Screens(), func(s dex.Screen, _ int) ScreenView {
				e, _ := b.durations.Get(side, screenTimers[s], NO_OWNER)
				return ScreenView{Screen: s, Remaining: e.Remaining}
			}),
		}
	}
	view.Environment = env

	return view
}

func viewOf(c *Combatant) CombatantView {
	return CombatantView{
		Name:       c.Name(),
		Species:    c.Template.ID,
		Form:       c.Form,
		Level:      c.Level,
		HP:         c.HP,
		MaxHP:      c.MaxHP,
		HPFraction: c.HPFraction(),
		Types:      slices.Clone(c.Types()),
		Ranks:      c.Ranks,
		Major:      c.Status,
		Volatiles:  c.Volatiles.List(),
		PP: lo.Map(c.Moves, func(m *dex.MoveDefinition, _ int) float64 {
			if m.PP == 0 {
				return 0
			}
			return float64(c.PP[m.ID]) / float64(m.PP)
		}),
		Moves:    lo.Map(c.Moves, func(m *dex.MoveDefinition, _ int) string { return m.Name }),
		Position: c.Position,
		Active:   c.Active,
		Fainted:  !c.Alive(),
		Ability:  c.Ability,
		Item:     c.Item,
	}
}

// Events returns a copy of the whole event log
func (b *BattleContext) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.events)
}
