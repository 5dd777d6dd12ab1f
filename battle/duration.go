package battle

import (
	"fmt"
	"slices"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
)

// Timer names a duration tracked effect
type Timer int

const (
	TIMER_WEATHER Timer = iota
	TIMER_FIELD
	TIMER_ROOM
	TIMER_REFLECT
	TIMER_LIGHT_SCREEN
	TIMER_AURORA_VEIL
	TIMER_CONFUSION
	TIMER_TAUNT
	TIMER_ENCORE
	TIMER_DISABLE
	TIMER_YAWN
	TIMER_TRAPPED
)

var timerNames = []string{
	"weather", "field", "room", "reflect", "light-screen", "aurora-veil",
	"confusion", "taunt", "encore", "disable", "yawn", "trapped",
}

func (t Timer) String() string {
	if t < 0 || int(t) >= len(timerNames) {
		return fmt.Sprintf("timer(%d)", int(t))
	}
	return timerNames[t]
}

// Default turn counts of volatile timers
const (
	TAUNT_TURNS   = 3
	ENCORE_TURNS  = 3
	DISABLE_TURNS = 4
	YAWN_TURNS    = 2
)

var volatileTimers = map[dex.Volatile]Timer{
	dex.VOLATILE_CONFUSION: TIMER_CONFUSION,
	dex.VOLATILE_TAUNT:     TIMER_TAUNT,
	dex.VOLATILE_ENCORE:    TIMER_ENCORE,
	dex.VOLATILE_DISABLE:   TIMER_DISABLE,
	dex.VOLATILE_YAWN:      TIMER_YAWN,
	dex.VOLATILE_TRAPPED:   TIMER_TRAPPED,
}

var screenTimers = map[dex.Screen]Timer{
	dex.SCREEN_REFLECT:     TIMER_REFLECT,
	dex.SCREEN_LIGHT:       TIMER_LIGHT_SCREEN,
	dex.SCREEN_AURORA_VEIL: TIMER_AURORA_VEIL,
}

// NO_OWNER marks timed effects that do not belong to a team slot
const NO_OWNER = -1

type TimedEffect struct {
	Timer     Timer
	Remaining int
	// Team slot the effect is attached to, NO_OWNER for field effects
	Owner int
}

// Expiry is a timed effect that ran out during a tick
type Expiry struct {
	Side   Side
	Effect TimedEffect
}

// DurationStore counts down public and per side effects. Public effects use SIDE_NONE.
type DurationStore struct {
	public []TimedEffect
	sides  [2][]TimedEffect
}

func (d *DurationStore) scope(side Side) *[]TimedEffect {
	if side == SIDE_NONE {
		return &d.public
	}
	return &d.sides[side]
}

func matches(timer Timer, owner int) func(TimedEffect) bool {
	return func(e TimedEffect) bool {
		return e.Timer == timer && e.Owner == owner
	}
}

// Set adds an effect or replaces the one with the same timer and owner
func (d *DurationStore) Set(side Side, e TimedEffect) {
	effects := d.scope(side)
	if i := slices.IndexFunc(*effects, matches(e.Timer, e.Owner)); i != -1 {
		(*effects)[i] = e
		return
	}
	*effects = append(*effects, e)
}

func (d *DurationStore) Get(side Side, timer Timer, owner int) (TimedEffect, bool) {
	return lo.Find(*d.scope(side), matches(timer, owner))
}

func (d *DurationStore) Remove(side Side, timer Timer, owner int) bool {
	effects := d.scope(side)
	i := slices.IndexFunc(*effects, matches(timer, owner))
	if i == -1 {
		return false
	}
	*effects = slices.Delete(*effects, i, i+1)
	return true
}

// RemoveOwner drops every effect attached to a team slot and returns them
func (d *DurationStore) RemoveOwner(side Side, owner int) []TimedEffect {
	effects := d.scope(side)
	removed := lo.Filter(*effects, func(e TimedEffect, _ int) bool { return e.Owner == owner })
	*effects = lo.Reject(*effects, func(e TimedEffect, _ int) bool { return e.Owner == owner })
	return removed
}

// Effects returns a copy of the effects in one scope
func (d *DurationStore) Effects(side Side) []TimedEffect {
	return slices.Clone(*d.scope(side))
}

// Tick decrements every effect once and removes the ones that reach zero.
// Expiries are returned public first, then side A, then side B.
func (d *DurationStore) Tick() []Expiry {
	var expired []Expiry

	for _, side := range []Side{SIDE_NONE, SIDE_A, SIDE_B} {
		effects := d.scope(side)
		kept := (*effects)[:0]
		for _, e := range *effects {
			e.Remaining--
			if e.Remaining <= 0 {
				e.Remaining = 0
				expired = append(expired, Expiry{Side: side, Effect: e})
				continue
			}
			kept = append(kept, e)
		}
		*effects = kept
	}

	return expired
}
