package battle

import (
	"testing"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func speedDuel(t *testing.T, speedA, speedB int, movesA, movesB []*dex.MoveDefinition) *BattleContext {
	t.Helper()

	a := testCombatant("slowpoke", dex.ABILITY_NONE, movesA...)
	b := testCombatant("rapidash", dex.ABILITY_NONE, movesB...)
	a.Stats.Speed = speedA
	b.Stats.Speed = speedB

	return duel(t, a, b)
}

func TestFasterMovesFirst(t *testing.T) {
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)
	b := speedDuel(t, 50, 80, []*dex.MoveDefinition{tackle}, []*dex.MoveDefinition{tackle})

	assert.Equal(t, [2]Side{SIDE_B, SIDE_A}, b.calculateOrder(UseMove(0), UseMove(0)))

	require.True(t, b.setRoom(dex.ROOM_TRICK, ROOM_TURNS))
	assert.Equal(t, [2]Side{SIDE_A, SIDE_B}, b.calculateOrder(UseMove(0), UseMove(0)))
	assert.Less(t, b.Speed(b.active(SIDE_B)), b.Speed(b.active(SIDE_A)))

	// using the room again ends it
	require.True(t, b.setRoom(dex.ROOM_TRICK, ROOM_TURNS))
	assert.Equal(t, [2]Side{SIDE_B, SIDE_A}, b.calculateOrder(UseMove(0), UseMove(0)))
}

func TestFasterMovesFirstInTurn(t *testing.T) {
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)
	b := speedDuel(t, 50, 80, []*dex.MoveDefinition{tackle}, []*dex.MoveDefinition{tackle})

	result, err := b.SubmitTurn(UseMove(0), UseMove(0))
	require.NoError(t, err)

	moves := eventsOf(result.Events, EVENT_MOVE)
	require.Len(t, moves, 2)
	assert.Equal(t, SIDE_B, moves[0].Side)
	assert.Equal(t, SIDE_A, moves[1].Side)
}

func TestPriorityBeatsSpeed(t *testing.T) {
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)
	quick := testMove("quick-attack", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)
	quick.Priority = 1

	b := speedDuel(t, 10, 200, []*dex.MoveDefinition{quick}, []*dex.MoveDefinition{tackle})
	assert.Equal(t, [2]Side{SIDE_A, SIDE_B}, b.calculateOrder(UseMove(0), UseMove(0)))

	// trick room only reverses speed, never priority
	require.True(t, b.setRoom(dex.ROOM_TRICK, ROOM_TURNS))
	assert.Equal(t, [2]Side{SIDE_A, SIDE_B}, b.calculateOrder(UseMove(0), UseMove(0)))
}

func TestSwitchesGoFirst(t *testing.T) {
	quick := testMove("quick-attack", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)
	quick.Priority = 1
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)

	a := testCombatant("lead", dex.ABILITY_NONE, quick)
	a.Stats.Speed = 300
	b := testCombatant("slow", dex.ABILITY_NONE, tackle)
	b.Stats.Speed = 10
	bench := testCombatant("bench", dex.ABILITY_NONE, tackle)

	battle := newTestBattle(t, []*Combatant{a}, []*Combatant{b, bench}, noLuck)
	assert.Equal(t, [2]Side{SIDE_B, SIDE_A}, battle.calculateOrder(UseMove(0), SwitchTo(1)))
}

func TestPrankster(t *testing.T) {
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)

	a := testCombatant("whimsicott", dex.ABILITY_PRANKSTER, harden(), tackle)
	a.Stats.Speed = 10
	b := testCombatant("ninjask", dex.ABILITY_NONE, tackle)
	b.Stats.Speed = 300

	battle := duel(t, a, b)
	assert.Equal(t, [2]Side{SIDE_A, SIDE_B}, battle.calculateOrder(UseMove(0), UseMove(0)))
	assert.Equal(t, [2]Side{SIDE_B, SIDE_A}, battle.calculateOrder(UseMove(1), UseMove(0)))
}

func TestSpeedTiesNeverPutBothFirst(t *testing.T) {
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)

	firsts := map[Side]int{}
	for seed := range uint64(200) {
		a := testCombatant("a", dex.ABILITY_NONE, tackle)
		b := testCombatant("b", dex.ABILITY_NONE, tackle)
		battle, err := NewBattle([]*Combatant{a}, []*Combatant{b}, WithSeed(seed))
		require.NoError(t, err)

		order := battle.calculateOrder(UseMove(0), UseMove(0))
		require.NotEqual(t, order[0], order[1])
		firsts[order[0]]++
	}

	// both sides win some coin flips
	assert.Positive(t, firsts[SIDE_A])
	assert.Positive(t, firsts[SIDE_B])
}

func TestParalysisHalvesSpeed(t *testing.T) {
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)
	b := speedDuel(t, 100, 80, []*dex.MoveDefinition{tackle}, []*dex.MoveDefinition{tackle})

	require.True(t, b.inflictStatus(SIDE_A, dex.STATUS_PARA, SIDE_NONE))
	assert.Equal(t, 50.0, b.Speed(b.active(SIDE_A)))
	assert.Equal(t, [2]Side{SIDE_B, SIDE_A}, b.calculateOrder(UseMove(0), UseMove(0)))
}

func TestWeatherSpeedAbility(t *testing.T) {
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)

	a := testCombatant("kingdra", dex.ABILITY_SWIFT_SWIM, tackle)
	a.Stats.Speed = 60
	b := testCombatant("jolteon", dex.ABILITY_NONE, tackle)
	b.Stats.Speed = 100

	battle := duel(t, a, b)
	assert.Equal(t, [2]Side{SIDE_B, SIDE_A}, battle.calculateOrder(UseMove(0), UseMove(0)))

	require.True(t, battle.setWeather(dex.WEATHER_RAIN, WEATHER_TURNS))
	assert.Equal(t, 120.0, battle.Speed(battle.active(SIDE_A)))
	assert.Equal(t, [2]Side{SIDE_A, SIDE_B}, battle.calculateOrder(UseMove(0), UseMove(0)))
}
