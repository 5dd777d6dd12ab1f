package battle

import (
	"slices"
)

// TurnResult is everything that happened during one SubmitTurn call
type TurnResult struct {
	Turn       int
	Events     []Event
	BattleOver bool
	// SIDE_NONE while the battle goes on or when it ended in a draw
	Winner Side
}

// SubmitTurn resolves one full turn. Both actions are checked before anything
// changes; an *InvalidActionError leaves the battle untouched so the caller
// can resubmit.
func (b *BattleContext) SubmitTurn(actionA, actionB Action) (TurnResult, error) {
	b.sinkMu.Lock()
	defer b.sinkMu.Unlock()

	result, err := b.submitTurn(actionA, actionB)
	b.deliver(result.Events)
	return result, err
}

func (b *BattleContext) submitTurn(actionA, actionB Action) (TurnResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.over {
		return TurnResult{}, ErrBattleOver
	}
	if err := b.checkAction(SIDE_A, actionA); err != nil {
		return TurnResult{}, err
	}
	if err := b.checkAction(SIDE_B, actionB); err != nil {
		return TurnResult{}, err
	}

	start := len(b.events)
	if err := b.runTurn(actionA, actionB); err != nil {
		b.logger.Error(err, "turn aborted", "turn", b.turn)
		return b.result(start), err
	}

	return b.result(start), nil
}

func (b *BattleContext) runTurn(actionA, actionB Action) error {
	if err := b.advance(phaseOrder); err != nil {
		return err
	}

	b.turn++
	b.actions = [2]Action{actionA, actionB}
	b.acted = [2]bool{}
	b.panicked = [2]bool{}

	starters := [2]*Combatant{b.active(SIDE_A), b.active(SIDE_B)}
	for _, c := range starters {
		c.DamageTaken = 0
		c.DamageDealt = 0
	}

	b.emit(EVENT_TURN, SIDE_NONE, b.turn, "Turn %d", b.turn)

	order := b.calculateOrder(actionA, actionB)
	b.logger.V(1).Info("turn order", "turn", b.turn, "first", order[0].String(), "actionA", actionA.String(), "actionB", actionB.String())

	for i, event := range []string{phaseFirst, phaseSecond} {
		if err := b.advance(event); err != nil {
			return err
		}

		side := order[i]
		if b.active(side) == starters[side] {
			b.act(side)
		}
		b.acted[side] = true

		b.resolvePanic()
		if b.resolveFaints() {
			return nil
		}
	}

	if err := b.advance(phaseEndTurn); err != nil {
		return err
	}
	if b.endOfTurn() {
		return nil
	}

	return b.advance(phaseNext)
}

func (b *BattleContext) result(start int) TurnResult {
	result := TurnResult{
		Turn:       b.turn,
		Events:     slices.Clone(b.events[start:]),
		BattleOver: b.over,
		Winner:     SIDE_NONE,
	}
	if b.over {
		result.Winner = b.winner
	}
	return result
}
