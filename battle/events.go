package battle

import "fmt"

type EventKind int

const (
	EVENT_MESSAGE EventKind = iota
	EVENT_TURN
	EVENT_MOVE
	EVENT_MISS
	EVENT_DAMAGE
	EVENT_HEAL
	EVENT_STATUS
	EVENT_CURE
	EVENT_STAT
	EVENT_SWITCH
	EVENT_FAINT
	EVENT_ABILITY
	EVENT_WEATHER
	EVENT_FIELD
	EVENT_ROOM
	EVENT_SCREEN
	EVENT_HAZARD
	EVENT_EXPIRE
	EVENT_FAILED
	EVENT_BATTLE_END
)

var eventKindNames = []string{
	"message", "turn", "move", "miss", "damage", "heal", "status", "cure", "stat", "switch",
	"faint", "ability", "weather", "field", "room", "screen", "hazard", "expire", "failed", "battle_end",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventKindNames[k]
}

// Event is one narrated step of a battle. Seq is unique and increasing within a battle.
type Event struct {
	Seq  int
	Turn int
	Kind EventKind
	// SIDE_NONE for events about the whole field
	Side Side
	// Team slot of the combatant the event is about, -1 if none
	Slot int
	// HP changed, stages changed or turns left depending on Kind
	Amount int
	Text   string
}

func (e Event) String() string {
	return fmt.Sprintf("[%d:%d] %s", e.Turn, e.Seq, e.Text)
}

// EventSink receives every event of a battle in order. Events are delivered
// after the battle's lock is released, so a sink may read the battle; calling
// SubmitTurn from a sink blocks forever.
type EventSink interface {
	Emit(Event)
}

// SinkFunc adapts a function into an EventSink
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) {
	f(e)
}

func (b *BattleContext) emit(kind EventKind, side Side, amount int, format string, args ...any) {
	slot := -1
	if side != SIDE_NONE {
		slot = b.teams[side].ActiveIndex
	}

	event := Event{
		Seq:    len(b.events),
		Turn:   b.turn,
		Kind:   kind,
		Side:   side,
		Slot:   slot,
		Amount: amount,
		Text:   fmt.Sprintf(format, args...),
	}

	b.events = append(b.events, event)
	b.logger.V(1).Info(event.Text, "kind", kind.String(), "turn", b.turn)
}

// deliver hands events to the sink. Callers must not hold mu.
func (b *BattleContext) deliver(events []Event) {
	if b.sink == nil {
		return
	}
	for _, e := range events {
		b.sink.Emit(e)
	}
}
