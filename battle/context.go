package battle

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/nathanieltooley/duelcore/dex"
)

var sides = [2]Side{SIDE_A, SIDE_B}

// BattleContext owns every piece of mutable state of one battle.
// It is safe to call from several goroutines; turns are processed one at a time.
type BattleContext struct {
	ID uuid.UUID

	teams     [2]*Team
	env       Environment
	durations DurationStore
	turn      int

	rng    Rng
	seed   uint64
	events []Event
	sink   EventSink
	logger logr.Logger

	mu    sync.Mutex
	phase *fsm.FSM
	// held across a turn and the delivery of its events so sinks see turns in order
	sinkMu sync.Mutex

	over   bool
	winner Side

	// state of the turn being resolved
	actions  [2]Action
	acted    [2]bool
	panicked [2]bool
}

type Option func(*BattleContext)

// WithSeed seeds the battle's generator. It is ignored when WithRng is also given.
func WithSeed(seed uint64) Option {
	return func(b *BattleContext) {
		b.seed = seed
	}
}

// WithRng replaces the seeded generator
func WithRng(rng Rng) Option {
	return func(b *BattleContext) {
		b.rng = rng
	}
}

func WithEventSink(sink EventSink) Option {
	return func(b *BattleContext) {
		b.sink = sink
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(b *BattleContext) {
		b.logger = logger
	}
}

func WithID(id uuid.UUID) Option {
	return func(b *BattleContext) {
		b.ID = id
	}
}

// NewBattle validates both teams, sends out the first healthy member of each
// and resolves their appear abilities. The first call to SubmitTurn is turn 1.
func NewBattle(teamA, teamB []*Combatant, opts ...Option) (*BattleContext, error) {
	for _, c := range teamA {
		for _, other := range teamB {
			if c != nil && c == other {
				return nil, fmt.Errorf("%w: combatant %s is on both teams", ErrInvalidTeam, c.Name())
			}
		}
	}

	a, err := newTeam(SIDE_A.String(), teamA)
	if err != nil {
		return nil, err
	}
	b, err := newTeam(SIDE_B.String(), teamB)
	if err != nil {
		return nil, err
	}

	battle := &BattleContext{
		ID:     uuid.New(),
		teams:  [2]*Team{a, b},
		seed:   RandomSeed(),
		logger: internalLogger,
		winner: SIDE_NONE,
	}

	for _, opt := range opts {
		opt(battle)
	}

	if battle.rng == nil {
		battle.rng = NewRng(battle.seed)
	}
	battle.logger = battle.logger.WithValues("battle", battle.ID.String())
	battle.phase = newPhaseMachine(battle.logger)

	battle.logger.Info("battle created", "seed", battle.seed, "teamA", len(teamA), "teamB", len(teamB))

	for _, side := range sides {
		team := battle.teams[side]
		battle.enter(side, team.ActiveIndex, nil)
	}
	for _, side := range battle.speedOrder() {
		battle.appear(side)
	}
	battle.resolveFaints()
	battle.deliver(battle.events)

	return battle, nil
}

func (b *BattleContext) active(side Side) *Combatant {
	return b.teams[side].Active()
}

// sideOf finds which team a combatant is on
func (b *BattleContext) sideOf(c *Combatant) Side {
	for _, side := range sides {
		if b.active(side) == c {
			return side
		}
	}
	for _, side := range sides {
		for _, member := range b.teams[side].Members {
			if member == c {
				return side
			}
		}
	}
	return SIDE_NONE
}

func (b *BattleContext) Turn() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.turn
}

func (b *BattleContext) Seed() uint64 {
	return b.seed
}

// Over reports whether the battle ended and who won. SIDE_NONE is a draw.
func (b *BattleContext) Over() (bool, Side) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.over, b.winner
}

// Phase is the current state of the turn machine
func (b *BattleContext) Phase() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase.Current()
}

// weather is the weather in effect. Air lock suppresses it without clearing it.
func (b *BattleContext) weather() dex.Weather {
	for _, side := range sides {
		c := b.active(side)
		if c.Alive() && c.Ability == dex.ABILITY_AIR_LOCK {
			return dex.WEATHER_NONE
		}
	}
	return b.env.Weather()
}

// endBattle marks the battle finished. Both teams losing at once is a draw.
func (b *BattleContext) endBattle() {
	lostA, lostB := b.teams[SIDE_A].Lost(), b.teams[SIDE_B].Lost()

	switch {
	case lostA && lostB:
		b.winner = SIDE_NONE
		b.emit(EVENT_BATTLE_END, SIDE_NONE, 0, "The battle ended in a draw!")
	case lostA:
		b.winner = SIDE_B
		b.emit(EVENT_BATTLE_END, SIDE_NONE, 0, "Team %s won the battle!", SIDE_B)
	default:
		b.winner = SIDE_A
		b.emit(EVENT_BATTLE_END, SIDE_NONE, 0, "Team %s won the battle!", SIDE_A)
	}

	b.over = true
	if err := b.phase.Event(context.Background(), phaseFinish); err != nil && b.phase.Current() != PHASE_BATTLE_OVER {
		b.logger.Error(err, "could not finish battle")
	}
	b.logger.Info("battle over", "winner", b.winner.String(), "turns", b.turn)
}
