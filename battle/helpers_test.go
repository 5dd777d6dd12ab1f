package battle

import (
	"testing"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/stretchr/testify/require"
)

// fixedRng returns the same draw forever. 0.99 never crits and never fails an
// accuracy check below 100; 0 makes every chance succeed.
type fixedRng struct {
	value float64
}

func (r fixedRng) Float64() float64 {
	return r.value
}

func (r fixedRng) IntN(n int) int {
	return min(int(r.value*float64(n)), n-1)
}

// scriptedRng replays queued draws and falls back to a fixed draw when a queue is empty
type scriptedRng struct {
	floats   []float64
	ints     []int
	fallback fixedRng
}

func (r *scriptedRng) Float64() float64 {
	if len(r.floats) == 0 {
		return r.fallback.Float64()
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRng) IntN(n int) int {
	if len(r.ints) == 0 {
		return r.fallback.IntN(n)
	}
	i := r.ints[0]
	r.ints = r.ints[1:]
	return i % n
}

var noLuck = fixedRng{value: 0.99}

var flatBase = dex.BaseStats{HP: 100, Attack: 100, Defense: 100, SpAttack: 100, SpDefense: 100, Speed: 100}

// testSpecies is a level 50 template with every base stat at 100:
// 175 HP and 120 in every other stat
func testSpecies(name string, types ...dex.Type) *dex.SpeciesTemplate {
	return &dex.SpeciesTemplate{
		ID:    dex.SpeciesID(len(name)),
		Name:  name,
		Types: types,
		Base:  flatBase,
		Level: dex.DEFAULT_LEVEL,
	}
}

var nextMoveID dex.MoveID = 1000

func testMove(name string, power int, t dex.Type, category dex.Category) *dex.MoveDefinition {
	nextMoveID++
	return &dex.MoveDefinition{
		ID:       nextMoveID,
		Name:     name,
		Power:    power,
		Accuracy: 100,
		PP:       10,
		Type:     t,
		Category: category,
		Target:   dex.TARGET_OPPONENT,
	}
}

// harden is a harmless self targeted move for the side that should not interfere
func harden() *dex.MoveDefinition {
	move := testMove("harden", 0, dex.TYPE_NORMAL, dex.CATEGORY_STATUS)
	move.Target = dex.TARGET_SELF
	move.Effects = []dex.MoveEffect{{Target: dex.TARGET_SELF, Stats: []dex.StatDelta{{Stat: dex.STAT_DEFENSE, Stages: 1}}}}
	return move
}

func testCombatant(name string, ability dex.AbilityID, moves ...*dex.MoveDefinition) *Combatant {
	return NewCombatantBuilder(nil, testSpecies(name, dex.TYPE_NORMAL)).
		SetAbility(ability).
		SetMoves(moves...).
		MustBuild()
}

func newTestBattle(t *testing.T, teamA, teamB []*Combatant, rng Rng) *BattleContext {
	t.Helper()

	b, err := NewBattle(teamA, teamB, WithRng(rng))
	require.NoError(t, err)
	return b
}

// duel sets up a one on one battle between two fresh combatants
func duel(t *testing.T, a, b *Combatant) *BattleContext {
	t.Helper()
	return newTestBattle(t, []*Combatant{a}, []*Combatant{b}, noLuck)
}

func eventsOf(events []Event, kind EventKind) []Event {
	var found []Event
	for _, e := range events {
		if e.Kind == kind {
			found = append(found, e)
		}
	}
	return found
}
