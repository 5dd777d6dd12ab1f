package battle

import (
	"slices"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
)

// Default turn counts of timed field effects
const (
	WEATHER_TURNS = 5
	FIELD_TURNS   = 5
	ROOM_TURNS    = 5
	SCREEN_TURNS  = 5
)

type auraTag struct {
	Aura dex.Aura
	Side Side
}

type disasterTag struct {
	Disaster dex.Disaster
	Side     Side
}

// SideEnvironment holds what is laid on one side of the field
type SideEnvironment struct {
	hazards map[dex.Hazard]int
	screens []dex.Screen
}

func (s *SideEnvironment) Layers(h dex.Hazard) int {
	return s.hazards[h]
}

// AddHazard returns false once the hazard is at its maximum layers
func (s *SideEnvironment) AddHazard(h dex.Hazard) bool {
	if s.hazards == nil {
		s.hazards = make(map[dex.Hazard]int)
	}
	if s.hazards[h] >= h.MaxLayers() {
		return false
	}
	s.hazards[h]++
	return true
}

func (s *SideEnvironment) RemoveHazard(h dex.Hazard) {
	delete(s.hazards, h)
}

// ClearHazards removes every hazard and returns what was there
func (s *SideEnvironment) ClearHazards() []dex.Hazard {
	cleared := s.Hazards()
	s.hazards = nil
	return cleared
}

// Hazards returns the hazards present, in a stable order
func (s *SideEnvironment) Hazards() []dex.Hazard {
	hazards := lo.Keys(s.hazards)
	slices.Sort(hazards)
	return hazards
}

func (s *SideEnvironment) HasScreen(screen dex.Screen) bool {
	return slices.Contains(s.screens, screen)
}

func (s *SideEnvironment) Screens() []dex.Screen {
	return slices.Clone(s.screens)
}

func (s *SideEnvironment) setScreen(screen dex.Screen) bool {
	if screen == dex.SCREEN_NONE || s.HasScreen(screen) {
		return false
	}
	s.screens = append(s.screens, screen)
	return true
}

func (s *SideEnvironment) clearScreen(screen dex.Screen) bool {
	i := slices.Index(s.screens, screen)
	if i == -1 {
		return false
	}
	s.screens = slices.Delete(s.screens, i, i+1)
	return true
}

// Environment is the public and per side field state. Every timed part of it is
// mirrored in the DurationStore, so it is changed through BattleContext.
type Environment struct {
	weather   dex.Weather
	field     dex.Field
	room      dex.Room
	auras     []auraTag
	disasters []disasterTag
	sides     [2]SideEnvironment
}

func (e *Environment) Weather() dex.Weather { return e.weather }
func (e *Environment) Field() dex.Field     { return e.field }
func (e *Environment) Room() dex.Room       { return e.room }

func (e *Environment) SetWeather(w dex.Weather) { e.weather = w }
func (e *Environment) ClearWeather()            { e.weather = dex.WEATHER_NONE }
func (e *Environment) SetField(f dex.Field)     { e.field = f }
func (e *Environment) ClearField()              { e.field = dex.FIELD_NONE }
func (e *Environment) SetRoom(r dex.Room)       { e.room = r }
func (e *Environment) ClearRoom()               { e.room = dex.ROOM_NONE }

func (e *Environment) Side(s Side) *SideEnvironment {
	return &e.sides[s]
}

func (e *Environment) HasAura(a dex.Aura) bool {
	return lo.ContainsBy(e.auras, func(t auraTag) bool { return t.Aura == a })
}

func (e *Environment) AddAura(a dex.Aura, owner Side) {
	e.auras = append(e.auras, auraTag{Aura: a, Side: owner})
}

func (e *Environment) Auras() []dex.Aura {
	return lo.Uniq(lo.Map(e.auras, func(t auraTag, _ int) dex.Aura { return t.Aura }))
}

func (e *Environment) AddDisaster(d dex.Disaster, owner Side) {
	e.disasters = append(e.disasters, disasterTag{Disaster: d, Side: owner})
}

func (e *Environment) Disasters() []dex.Disaster {
	return lo.Uniq(lo.Map(e.disasters, func(t disasterTag, _ int) dex.Disaster { return t.Disaster }))
}

// DisasterLowers reports whether a disaster owned by the other side weakens stat for side
func (e *Environment) DisasterLowers(stat dex.Stat, side Side) bool {
	return lo.ContainsBy(e.disasters, func(t disasterTag) bool {
		return t.Side != side && t.Disaster.Lowers() == stat
	})
}

// RemoveTagsOf drops auras and disasters whose owner left the field
func (e *Environment) RemoveTagsOf(owner Side) {
	e.auras = lo.Reject(e.auras, func(t auraTag, _ int) bool { return t.Side == owner })
	e.disasters = lo.Reject(e.disasters, func(t disasterTag, _ int) bool { return t.Side == owner })
}
