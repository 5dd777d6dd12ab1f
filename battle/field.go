package battle

import (
	"errors"
	"fmt"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
)

// Turn counts of binding and confusion are rolled in these ranges
const (
	TRAPPED_MIN_TURNS   = 4
	TRAPPED_MAX_TURNS   = 5
	CONFUSION_MIN_TURNS = 2
	CONFUSION_MAX_TURNS = 5
)

// Everything below keeps the DurationStore and the state it mirrors in step.
// Nothing else in the package writes timed state directly.

func (b *BattleContext) setWeather(w dex.Weather, turns int) bool {
	if w == dex.WEATHER_NONE || b.env.Weather() == w {
		return false
	}

	b.env.SetWeather(w)
	b.durations.Set(SIDE_NONE, TimedEffect{Timer: TIMER_WEATHER, Remaining: turns, Owner: NO_OWNER})
	b.emit(EVENT_WEATHER, SIDE_NONE, turns, "The weather became %s.", w)
	b.weatherChanged()
	return true
}

func (b *BattleContext) clearWeather() {
	if b.env.Weather() == dex.WEATHER_NONE {
		return
	}
	b.env.ClearWeather()
	b.durations.Remove(SIDE_NONE, TIMER_WEATHER, NO_OWNER)
	b.weatherChanged()
}

func (b *BattleContext) setField(f dex.Field, turns int) bool {
	if f == dex.FIELD_NONE || b.env.Field() == f {
		return false
	}

	b.env.SetField(f)
	b.durations.Set(SIDE_NONE, TimedEffect{Timer: TIMER_FIELD, Remaining: turns, Owner: NO_OWNER})
	b.emit(EVENT_FIELD, SIDE_NONE, turns, "The battlefield became %s terrain.", f)
	b.fieldChanged()
	return true
}

func (b *BattleContext) clearField() {
	if b.env.Field() == dex.FIELD_NONE {
		return
	}
	b.env.ClearField()
	b.durations.Remove(SIDE_NONE, TIMER_FIELD, NO_OWNER)
	b.fieldChanged()
}

// setRoom toggles: using a room move while it is up ends it
func (b *BattleContext) setRoom(r dex.Room, turns int) bool {
	if r == dex.ROOM_NONE {
		return false
	}

	if b.env.Room() == r {
		b.env.ClearRoom()
		b.durations.Remove(SIDE_NONE, TIMER_ROOM, NO_OWNER)
		b.emit(EVENT_ROOM, SIDE_NONE, 0, "The %s returned to normal.", r)
		return true
	}

	b.env.SetRoom(r)
	b.durations.Set(SIDE_NONE, TimedEffect{Timer: TIMER_ROOM, Remaining: turns, Owner: NO_OWNER})
	b.emit(EVENT_ROOM, SIDE_NONE, turns, "The dimensions were twisted into %s!", r)
	return true
}

func (b *BattleContext) setScreen(side Side, screen dex.Screen, turns int) bool {
	if screen == dex.SCREEN_AURORA_VEIL && b.weather() != dex.WEATHER_SNOW {
		return false
	}
	if !b.env.Side(side).setScreen(screen) {
		return false
	}

	b.durations.Set(side, TimedEffect{Timer: screenTimers[screen], Remaining: turns, Owner: NO_OWNER})
	b.emit(EVENT_SCREEN, side, turns, "%s raised team %s's defenses.", screen, side)
	return true
}

func (b *BattleContext) clearScreen(side Side, screen dex.Screen) bool {
	if !b.env.Side(side).clearScreen(screen) {
		return false
	}
	b.durations.Remove(side, screenTimers[screen], NO_OWNER)
	return true
}

// addVolatile applies a volatile status to an active combatant. Statuses with a
// timer get a DurationStore entry owned by the combatant's slot.
func (b *BattleContext) addVolatile(side Side, v dex.Volatile, turns int) bool {
	c := b.active(side)
	if !c.Alive() || b.immuneToVolatile(c, v) || !c.Volatiles.Add(v) {
		return false
	}

	if timer, ok := volatileTimers[v]; ok {
		b.durations.Set(side, TimedEffect{Timer: timer, Remaining: turns, Owner: b.teams[side].ActiveIndex})
	}
	return true
}

func (b *BattleContext) removeVolatile(side Side, v dex.Volatile) bool {
	c := b.active(side)
	if !c.Volatiles.Remove(v) {
		return false
	}

	if timer, ok := volatileTimers[v]; ok {
		b.durations.Remove(side, timer, b.teams[side].ActiveIndex)
	}

	switch v {
	case dex.VOLATILE_ENCORE:
		c.Encored = nil
	case dex.VOLATILE_DISABLE:
		c.Disabled = nil
	}
	return true
}

// dropOwner clears every timed state of a slot leaving the field
func (b *BattleContext) dropOwner(side Side, slot int) {
	c := b.teams[side].Members[slot]
	c.Volatiles.Clear()
	c.Encored = nil
	c.Disabled = nil
	b.durations.RemoveOwner(side, slot)
}

// tickDurations decrements every timed effect once and resolves the expiries in store order
func (b *BattleContext) tickDurations() {
	for _, expiry := range b.durations.Tick() {
		b.expire(expiry)
	}
}

// expire is the single place an expired effect is undone. It emits one EVENT_EXPIRE.
func (b *BattleContext) expire(expiry Expiry) {
	side, e := expiry.Side, expiry.Effect

	switch e.Timer {
	case TIMER_WEATHER:
		b.emit(EVENT_EXPIRE, SIDE_NONE, 0, "The %s stopped.", b.env.Weather())
		b.env.ClearWeather()
		b.weatherChanged()
	case TIMER_FIELD:
		b.emit(EVENT_EXPIRE, SIDE_NONE, 0, "The %s terrain faded.", b.env.Field())
		b.env.ClearField()
		b.fieldChanged()
	case TIMER_ROOM:
		b.emit(EVENT_EXPIRE, SIDE_NONE, 0, "The %s wore off.", b.env.Room())
		b.env.ClearRoom()
	case TIMER_REFLECT, TIMER_LIGHT_SCREEN, TIMER_AURORA_VEIL:
		screen, _ := lo.FindKey(screenTimers, e.Timer)
		b.env.Side(side).clearScreen(screen)
		b.emit(EVENT_EXPIRE, side, 0, "Team %s's %s wore off.", side, screen)
	default:
		v, _ := lo.FindKey(volatileTimers, e.Timer)
		c := b.teams[side].Members[e.Owner]
		c.Volatiles.Remove(v)
		switch v {
		case dex.VOLATILE_ENCORE:
			c.Encored = nil
		case dex.VOLATILE_DISABLE:
			c.Disabled = nil
		}
		b.emit(EVENT_EXPIRE, side, 0, "%s's %s ended.", c.Name(), v)

		if v == dex.VOLATILE_YAWN && c.Active {
			b.inflictStatus(side, dex.STATUS_SLEEP, SIDE_NONE)
		}
	}
}

var errDesync = errors.New("duration store out of sync")

// verifyDurations checks that every timed state has exactly one store entry and
// every store entry has its state. A non-nil result is an engine bug.
func (b *BattleContext) verifyDurations() error {
	public := b.durations.Effects(SIDE_NONE)
	check := func(timer Timer, present bool) error {
		_, ok := lo.Find(public, func(e TimedEffect) bool { return e.Timer == timer })
		if ok != present {
			return fmt.Errorf("%w: %s present=%t tracked=%t", errDesync, timer, present, ok)
		}
		return nil
	}

	if err := errors.Join(
		check(TIMER_WEATHER, b.env.Weather() != dex.WEATHER_NONE),
		check(TIMER_FIELD, b.env.Field() != dex.FIELD_NONE),
		check(TIMER_ROOM, b.env.Room() != dex.ROOM_NONE),
	); err != nil {
		return err
	}
	if len(public) != lo.Ternary(b.env.Weather() != dex.WEATHER_NONE, 1, 0)+
		lo.Ternary(b.env.Field() != dex.FIELD_NONE, 1, 0)+
		lo.Ternary(b.env.Room() != dex.ROOM_NONE, 1, 0) {
		return fmt.Errorf("%w: %d public entries", errDesync, len(public))
	}

	for _, side := range sides {
		tracked := b.durations.Effects(side)
		expected := 0

		for _, screen := range b.env.Side(side).Screens() {
			expected++
			if _, ok := b.durations.Get(side, screenTimers[screen], NO_OWNER); !ok {
				return fmt.Errorf("%w: side %s %s has no timer", errDesync, side, screen)
			}
		}

		for slot, c := range b.teams[side].Members {
			for _, v := range c.Volatiles.List() {
				timer, ok := volatileTimers[v]
				if !ok {
					continue
				}
				expected++
				if _, ok := b.durations.Get(side, timer, slot); !ok {
					return fmt.Errorf("%w: %s %s has no timer", errDesync, c.Name(), v)
				}
			}
			if !c.Alive() && (c.Status != dex.STATUS_NONE || c.Volatiles.Len() > 0) {
				return fmt.Errorf("%w: fainted %s still has statuses", errDesync, c.Name())
			}
		}

		if len(tracked) != expected {
			return fmt.Errorf("%w: side %s tracks %d entries, expected %d", errDesync, side, len(tracked), expected)
		}
	}

	return nil
}
