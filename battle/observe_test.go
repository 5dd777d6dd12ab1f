package battle

import (
	"testing"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotAfterTurn(t *testing.T) {
	a := testCombatant("politoed", dex.ABILITY_DRIZZLE, harden())
	b := duel(t, a, testCombatant("b", dex.ABILITY_NONE, harden()))
	require.True(t, b.setScreen(SIDE_B, dex.SCREEN_REFLECT, SCREEN_TURNS))

	_, err := b.SubmitTurn(UseMove(0), UseMove(0))
	require.NoError(t, err)

	view := b.Snapshot()
	assert.Equal(t, 1, view.Turn)
	assert.False(t, view.Over)
	assert.Equal(t, PHASE_AWAITING_ACTIONS, view.Phase)

	active := view.Active(SIDE_A)
	assert.Equal(t, "politoed", active.Name)
	assert.True(t, active.Active)
	assert.False(t, active.Fainted)
	assert.Equal(t, []string{"harden"}, active.Moves)
	assert.InDelta(t, 0.9, active.PP[0], 1e-9)
	assert.Equal(t, 1, active.Ranks.Get(dex.STAT_DEFENSE))
	assert.Equal(t, 1.0, active.HPFraction)

	env := view.Environment
	assert.Equal(t, dex.WEATHER_RAIN, env.Weather)
	assert.Equal(t, WEATHER_TURNS-1, env.WeatherRemaining)
	assert.Equal(t, []ScreenView{{Screen: dex.SCREEN_REFLECT, Remaining: SCREEN_TURNS - 1}}, env.Sides[SIDE_B].Screens)
	assert.Empty(t, env.Sides[SIDE_A].Screens)
}

func TestSnapshotHazards(t *testing.T) {
	b := duel(t, testCombatant("a", dex.ABILITY_NONE, harden()), testCombatant("b", dex.ABILITY_NONE, harden()))
	side := b.env.Side(SIDE_B)

	for range 3 {
		require.True(t, side.AddHazard(dex.HAZARD_SPIKES))
	}
	assert.False(t, side.AddHazard(dex.HAZARD_SPIKES), "spikes stop at three layers")
	require.True(t, side.AddHazard(dex.HAZARD_STEALTH_ROCK))
	assert.False(t, side.AddHazard(dex.HAZARD_STEALTH_ROCK))

	assert.Equal(t, []HazardView{
		{Hazard: dex.HAZARD_STEALTH_ROCK, Layers: 1},
		{Hazard: dex.HAZARD_SPIKES, Layers: 3},
	}, b.Snapshot().Environment.Sides[SIDE_B].Hazards)
	assert.Empty(t, b.Snapshot().Environment.Sides[SIDE_A].Hazards)

	cleared := side.ClearHazards()
	assert.Equal(t, []dex.Hazard{dex.HAZARD_STEALTH_ROCK, dex.HAZARD_SPIKES}, cleared)
	assert.Empty(t, side.Hazards())
	assert.Zero(t, side.Layers(dex.HAZARD_SPIKES))
}

func TestSnapshotAurasAndDisasters(t *testing.T) {
	b := duel(t, testCombatant("xerneas", dex.ABILITY_FAIRY_AURA, harden()), testCombatant("chien-pao", dex.ABILITY_SWORD_OF_RUIN, harden()))

	env := b.Snapshot().Environment
	assert.Equal(t, []dex.Aura{dex.AURA_FAIRY}, env.Auras)
	assert.Equal(t, []dex.Disaster{dex.DISASTER_SWORD}, env.Disasters)

	// only the owner's opponent is weakened
	assert.True(t, b.env.DisasterLowers(dex.DISASTER_SWORD.Lowers(), SIDE_A))
	assert.False(t, b.env.DisasterLowers(dex.DISASTER_SWORD.Lowers(), SIDE_B))

	b.env.RemoveTagsOf(SIDE_B)
	assert.Empty(t, b.Snapshot().Environment.Disasters)
	assert.NotEmpty(t, b.Snapshot().Environment.Auras)
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	a := testCombatant("a", dex.ABILITY_NONE, harden())
	b := duel(t, a, testCombatant("b", dex.ABILITY_NONE, harden()))
	require.True(t, b.env.Side(SIDE_A).AddHazard(dex.HAZARD_SPIKES))
	require.True(t, b.inflictVolatile(SIDE_A, dex.VOLATILE_CONFUSION, 3))

	view := b.Snapshot()
	member := view.Teams[SIDE_A].Members[0]
	member.Types[0] = dex.TYPE_DRAGON
	member.PP[0] = 0
	member.Moves[0] = "splash"
	member.Volatiles[0] = dex.VOLATILE_TAUNT
	member.Ranks.Change(dex.STAT_ATTACK, 6)
	view.Environment.Sides[SIDE_A].Hazards[0].Layers = 3

	fresh := b.Snapshot()
	assert.NotEqual(t, view, fresh)
	assert.Equal(t, []dex.Type{dex.TYPE_NORMAL}, a.Types())
	assert.Equal(t, "harden", fresh.Active(SIDE_A).Moves[0])
	assert.Equal(t, 1.0, fresh.Active(SIDE_A).PP[0])
	assert.Equal(t, []dex.Volatile{dex.VOLATILE_CONFUSION}, fresh.Active(SIDE_A).Volatiles)
	assert.Equal(t, 0, a.Ranks.Get(dex.STAT_ATTACK))
	assert.Equal(t, 1, b.env.Side(SIDE_A).Layers(dex.HAZARD_SPIKES))
}

func TestEventsReturnsCopy(t *testing.T) {
	b := duel(t, testCombatant("a", dex.ABILITY_NONE, harden()), testCombatant("b", dex.ABILITY_NONE, harden()))
	_, err := b.SubmitTurn(UseMove(0), UseMove(0))
	require.NoError(t, err)

	events := b.Events()
	require.NotEmpty(t, events)
	first := events[0]

	events[0].Kind = EVENT_FAINT
	events = append(events, Event{Kind: EVENT_FAINT})

	fresh := b.Events()
	assert.Equal(t, first, fresh[0])
	assert.Len(t, fresh, len(events)-1)
}
