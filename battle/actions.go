package battle

import (
	"fmt"

	"github.com/nathanieltooley/duelcore/dex"
)

type ActionKind int

const (
	ACTION_NONE ActionKind = iota
	ACTION_MOVE
	ACTION_SWITCH
)

// Action is what a side does for one turn. Index is a move slot for ACTION_MOVE
// and a team slot for ACTION_SWITCH; it is unused for ACTION_NONE.
type Action struct {
	Kind  ActionKind
	Index int
}

func UseMove(index int) Action {
	return Action{Kind: ACTION_MOVE, Index: index}
}

func SwitchTo(index int) Action {
	return Action{Kind: ACTION_SWITCH, Index: index}
}

// None is submitted when the active combatant cannot choose: it is recharging,
// charging, locked into a move or has only struggle left
func None() Action {
	return Action{Kind: ACTION_NONE}
}

func (a Action) String() string {
	switch a.Kind {
	case ACTION_NONE:
		return "none"
	case ACTION_MOVE:
		return fmt.Sprintf("move(%d)", a.Index)
	case ACTION_SWITCH:
		return fmt.Sprintf("switch(%d)", a.Index)
	default:
		return fmt.Sprintf("action(%d, %d)", a.Kind, a.Index)
	}
}

// trapped reports whether the active combatant of side may not switch out voluntarily
func (b *BattleContext) trapped(side Side) bool {
	c := b.active(side)
	if c.HasType(dex.TYPE_GHOST) {
		return false
	}
	if c.Volatiles.Has(dex.VOLATILE_TRAPPED) {
		return true
	}

	foe := b.active(side.Opponent())
	if !foe.Alive() {
		return false
	}
	switch foe.Ability {
	case dex.ABILITY_SHADOW_TAG:
		return c.Ability != dex.ABILITY_SHADOW_TAG
	case dex.ABILITY_ARENA_TRAP:
		return c.grounded()
	}
	return false
}

// checkAction returns nil if the action is legal for side right now
func (b *BattleContext) checkAction(side Side, action Action) error {
	c := b.active(side)
	team := b.teams[side]
	reject := func(reason Reason) error {
		return &InvalidActionError{Side: side, Action: action, Reason: reason}
	}

	mustPass := c.committed() || !c.hasUsableMove()

	switch action.Kind {
	case ACTION_NONE:
		if !mustPass {
			return reject(REASON_NONE_NOT_ALLOWED)
		}
		return nil

	case ACTION_MOVE:
		if c.committed() {
			return reject(REASON_ACTION_REQUIRED)
		}
		if action.Index < 0 || action.Index >= len(c.Moves) {
			return reject(REASON_MOVE_OUT_OF_RANGE)
		}
		if reason, ok := c.usable(c.Moves[action.Index]); !ok {
			return reject(reason)
		}
		return nil

	case ACTION_SWITCH:
		if c.committed() {
			return reject(REASON_ACTION_REQUIRED)
		}
		if action.Index < 0 || action.Index >= len(team.Members) {
			return reject(REASON_SWITCH_OUT_OF_RANGE)
		}
		if action.Index == team.ActiveIndex {
			return reject(REASON_SWITCH_TARGET_ACTIVE)
		}
		if !team.Members[action.Index].Alive() {
			return reject(REASON_SWITCH_TARGET_FAINTED)
		}
		if b.trapped(side) {
			return reject(REASON_TRAPPED)
		}
		return nil

	default:
		return reject(REASON_UNKNOWN_KIND)
	}
}

// ValidActions lists every action SubmitTurn would accept for side. Moves come
// first in slot order, then switches in team order.
func (b *BattleContext) ValidActions(side Side) []Action {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.validActions(side)
}

func (b *BattleContext) validActions(side Side) []Action {
	if b.over {
		return nil
	}

	c := b.active(side)
	if c.committed() {
		return []Action{None()}
	}

	var actions []Action
	if !c.hasUsableMove() {
		actions = append(actions, None())
	}
	for i, move := range c.Moves {
		if _, ok := c.usable(move); ok {
			actions = append(actions, UseMove(i))
		}
	}
	if !b.trapped(side) {
		for _, i := range b.teams[side].Bench() {
			actions = append(actions, SwitchTo(i))
		}
	}

	return actions
}
