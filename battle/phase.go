package battle

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/looplab/fsm"
)

// Turn phases
const (
	PHASE_AWAITING_ACTIONS       = "awaiting_actions"
	PHASE_ORDERING_DETERMINED    = "ordering_determined"
	PHASE_FIRST_ACTOR_RESOLVING  = "first_actor_resolving"
	PHASE_SECOND_ACTOR_RESOLVING = "second_actor_resolving"
	PHASE_END_OF_TURN            = "end_of_turn"
	PHASE_BATTLE_OVER            = "battle_over"
)

const (
	phaseOrder   = "order"
	phaseFirst   = "first"
	phaseSecond  = "second"
	phaseEndTurn = "end_turn"
	phaseNext    = "next"
	phaseFinish  = "finish"
)

func newPhaseMachine(logger logr.Logger) *fsm.FSM {
	return fsm.NewFSM(
		PHASE_AWAITING_ACTIONS,
		fsm.Events{
			{Name: phaseOrder, Src: []string{PHASE_AWAITING_ACTIONS}, Dst: PHASE_ORDERING_DETERMINED},
			{Name: phaseFirst, Src: []string{PHASE_ORDERING_DETERMINED}, Dst: PHASE_FIRST_ACTOR_RESOLVING},
			{Name: phaseSecond, Src: []string{PHASE_FIRST_ACTOR_RESOLVING}, Dst: PHASE_SECOND_ACTOR_RESOLVING},
			{Name: phaseEndTurn, Src: []string{PHASE_SECOND_ACTOR_RESOLVING}, Dst: PHASE_END_OF_TURN},
			{Name: phaseNext, Src: []string{PHASE_END_OF_TURN}, Dst: PHASE_AWAITING_ACTIONS},
			{
				Name: phaseFinish,
				Src: []string{
					PHASE_AWAITING_ACTIONS,
					PHASE_ORDERING_DETERMINED,
					PHASE_FIRST_ACTOR_RESOLVING,
					PHASE_SECOND_ACTOR_RESOLVING,
					PHASE_END_OF_TURN,
				},
				Dst: PHASE_BATTLE_OVER,
			},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.V(2).Info("phase", "from", e.Src, "to", e.Dst)
			},
		},
	)
}

// advance moves the turn machine forward by one event
func (b *BattleContext) advance(event string) error {
	if err := b.phase.Event(context.Background(), event); err != nil {
		return fmt.Errorf("%w: %s from %s: %w", ErrIllegalTransition, event, b.phase.Current(), err)
	}
	return nil
}
