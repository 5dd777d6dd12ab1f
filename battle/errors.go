package battle

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction     = errors.New("invalid action")
	ErrIllegalTransition = errors.New("illegal state transition")
	ErrBattleOver        = errors.New("battle is over")
	ErrInvalidTeam       = errors.New("invalid team")
)

// Reason says why an action was rejected
type Reason int

const (
	REASON_UNKNOWN_KIND Reason = iota
	REASON_MOVE_OUT_OF_RANGE
	REASON_NO_PP
	REASON_MOVE_DISABLED
	REASON_TAUNTED
	REASON_ENCORED
	REASON_SWITCH_OUT_OF_RANGE
	REASON_SWITCH_TARGET_ACTIVE
	REASON_SWITCH_TARGET_FAINTED
	REASON_TRAPPED
	REASON_ACTION_REQUIRED
	REASON_NONE_NOT_ALLOWED
)

var reasonText = []string{
	"unknown action kind",
	"move index out of range",
	"move has no pp left",
	"move is disabled",
	"status moves are blocked by taunt",
	"locked in by encore",
	"switch index out of range",
	"switch target is already active",
	"switch target has fainted",
	"combatant is trapped",
	"combatant must continue its committed action",
	"combatant has a usable action",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonText) {
		return fmt.Sprintf("reason(%d)", int(r))
	}
	return reasonText[r]
}

// InvalidActionError is returned by SubmitTurn before anything in the battle changes
type InvalidActionError struct {
	Side   Side
	Action Action
	Reason Reason
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %s for side %s: %s", e.Action, e.Side, e.Reason)
}

func (e *InvalidActionError) Unwrap() error {
	return ErrInvalidAction
}
