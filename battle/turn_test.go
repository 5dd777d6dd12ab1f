package battle

import (
	"testing"
	"time"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dexTeam(t *testing.T, names ...string) []*Combatant {
	t.Helper()

	d := dex.MustDefault()
	return lo.Map(names, func(name string, _ int) *Combatant {
		species, err := d.SpeciesByName(name)
		require.NoError(t, err)
		return NewCombatantBuilder(d, species).MustBuild()
	})
}

// playOut runs a battle between two reference agents and returns its log
func playOut(t *testing.T, b *BattleContext, maxTurns int) []Event {
	t.Helper()

	agentA, agentB := NewReferenceAgent(SIDE_A), NewReferenceAgent(SIDE_B)
	for range maxTurns {
		if over, _ := b.Over(); over {
			break
		}
		_, err := b.SubmitTurn(agentA.Choose(b), agentB.Choose(b))
		require.NoError(t, err)
		require.NoError(t, b.verifyDurations())
	}
	return b.Events()
}

func TestNewBattleValidatesTeams(t *testing.T) {
	c := testCombatant("a", dex.ABILITY_NONE, harden())
	other := testCombatant("b", dex.ABILITY_NONE, harden())

	_, err := NewBattle(nil, []*Combatant{other})
	assert.ErrorIs(t, err, ErrInvalidTeam)

	_, err = NewBattle([]*Combatant{c}, []*Combatant{c})
	assert.ErrorIs(t, err, ErrInvalidTeam)

	_, err = NewBattle([]*Combatant{c, c}, []*Combatant{other})
	assert.ErrorIs(t, err, ErrInvalidTeam)

	seven := lo.Times(MAX_TEAM_SIZE+1, func(i int) *Combatant {
		return testCombatant("filler", dex.ABILITY_NONE, harden())
	})
	_, err = NewBattle(seven, []*Combatant{other})
	assert.ErrorIs(t, err, ErrInvalidTeam)

	fainted := testCombatant("fainted", dex.ABILITY_NONE, harden())
	fainted.HP = 0
	_, err = NewBattle([]*Combatant{fainted}, []*Combatant{other})
	assert.ErrorIs(t, err, ErrInvalidTeam)

	// the lead is the first member able to battle
	b, err := NewBattle([]*Combatant{fainted, c}, []*Combatant{other})
	require.NoError(t, err)
	assert.Equal(t, 1, b.Snapshot().Teams[SIDE_A].ActiveIndex)
	assert.Equal(t, PHASE_AWAITING_ACTIONS, b.Phase())
	assert.Equal(t, 0, b.Turn())
}

func TestInvalidActionsChangeNothing(t *testing.T) {
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)
	fainted := testCombatant("fainted", dex.ABILITY_NONE, tackle)

	b := newTestBattle(t,
		[]*Combatant{testCombatant("lead", dex.ABILITY_NONE, tackle), fainted, testCombatant("bench", dex.ABILITY_NONE, tackle)},
		[]*Combatant{testCombatant("foe", dex.ABILITY_NONE, tackle)},
		noLuck,
	)
	fainted.HP = 0

	cases := []struct {
		action Action
		reason Reason
	}{
		{UseMove(1), REASON_MOVE_OUT_OF_RANGE},
		{UseMove(-1), REASON_MOVE_OUT_OF_RANGE},
		{SwitchTo(0), REASON_SWITCH_TARGET_ACTIVE},
		{SwitchTo(1), REASON_SWITCH_TARGET_FAINTED},
		{SwitchTo(3), REASON_SWITCH_OUT_OF_RANGE},
		{None(), REASON_NONE_NOT_ALLOWED},
		{Action{Kind: ActionKind(9)}, REASON_UNKNOWN_KIND},
	}

	before := b.Snapshot()
	events := len(b.Events())

	for _, c := range cases {
		t.Run(c.action.String(), func(t *testing.T) {
			_, err := b.SubmitTurn(c.action, UseMove(0))
			require.ErrorIs(t, err, ErrInvalidAction)

			var invalid *InvalidActionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, SIDE_A, invalid.Side)
			assert.Equal(t, c.reason, invalid.Reason)

			assert.Equal(t, before, b.Snapshot())
			assert.Len(t, b.Events(), events)
		})
	}

	// side B is checked as well
	_, err := b.SubmitTurn(UseMove(0), SwitchTo(0))
	var invalid *InvalidActionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, SIDE_B, invalid.Side)
	assert.Equal(t, before, b.Snapshot())
}

func TestInternalSwitchToActiveFails(t *testing.T) {
	lead := testCombatant("lead", dex.ABILITY_NONE, harden())
	fainted := testCombatant("fainted", dex.ABILITY_NONE, harden())
	b := newTestBattle(t, []*Combatant{lead, fainted}, []*Combatant{testCombatant("foe", dex.ABILITY_NONE, harden())}, noLuck)
	fainted.HP = 0

	before := b.Snapshot()
	assert.False(t, b.switchTo(SIDE_A, 0, false))
	assert.False(t, b.switchTo(SIDE_A, 1, false))
	assert.False(t, b.switchTo(SIDE_A, 5, false))

	assert.Equal(t, before, b.Snapshot())
	assert.Len(t, eventsOf(b.Events(), EVENT_FAILED), 3)
}

func TestBattleOver(t *testing.T) {
	nuke := testMove("nuke", 1000, dex.TYPE_TYPELESS, dex.CATEGORY_PHYSICAL)
	a := testCombatant("a", dex.ABILITY_NONE, nuke)
	a.Stats.Speed = 200

	b := duel(t, a, testCombatant("b", dex.ABILITY_NONE, nuke))

	result, err := b.SubmitTurn(UseMove(0), UseMove(0))
	require.NoError(t, err)
	assert.True(t, result.BattleOver)
	assert.Equal(t, SIDE_A, result.Winner)
	assert.Len(t, eventsOf(result.Events, EVENT_BATTLE_END), 1)
	// the loser never got to move
	assert.Len(t, eventsOf(result.Events, EVENT_MOVE), 1)

	over, winner := b.Over()
	assert.True(t, over)
	assert.Equal(t, SIDE_A, winner)
	assert.Equal(t, PHASE_BATTLE_OVER, b.Phase())
	assert.Empty(t, b.ValidActions(SIDE_A))

	_, err = b.SubmitTurn(UseMove(0), UseMove(0))
	assert.ErrorIs(t, err, ErrBattleOver)
	assert.Equal(t, 1, b.Turn())
}

func TestDraw(t *testing.T) {
	boom := testMove("explosion", 1000, dex.TYPE_TYPELESS, dex.CATEGORY_PHYSICAL)
	boom.SelfDestruct = true

	b := duel(t, testCombatant("a", dex.ABILITY_NONE, boom), testCombatant("b", dex.ABILITY_NONE, harden()))

	result, err := b.SubmitTurn(UseMove(0), UseMove(0))
	require.NoError(t, err)
	assert.True(t, result.BattleOver)
	assert.Equal(t, SIDE_NONE, result.Winner)
}

func TestFaintedLeadIsReplaced(t *testing.T) {
	nuke := testMove("nuke", 1000, dex.TYPE_TYPELESS, dex.CATEGORY_PHYSICAL)
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)

	attacker := testCombatant("attacker", dex.ABILITY_NONE, nuke)
	attacker.Stats.Speed = 200
	lead := testCombatant("lead", dex.ABILITY_NONE, tackle)
	reserve := testCombatant("reserve", dex.ABILITY_NONE, tackle)
	reserve.Stats.Speed = 300

	b := newTestBattle(t, []*Combatant{attacker}, []*Combatant{lead, reserve}, noLuck)

	result, err := b.SubmitTurn(UseMove(0), UseMove(0))
	require.NoError(t, err)
	assert.False(t, result.BattleOver)

	view := b.Snapshot()
	assert.Equal(t, 1, view.Teams[SIDE_B].ActiveIndex)
	assert.True(t, view.Teams[SIDE_B].Members[0].Fainted)
	assert.True(t, attacker.FullHP(), "replacement must not act in the turn it came in")

	faints := eventsOf(result.Events, EVENT_FAINT)
	require.Len(t, faints, 1)
	assert.Equal(t, 0, faints[0].Slot)

	switches := eventsOf(result.Events, EVENT_SWITCH)
	require.NotEmpty(t, switches)
	assert.Equal(t, 1, switches[len(switches)-1].Slot)
}

func TestEventsAreOrdered(t *testing.T) {
	b, err := NewBattle(
		dexTeam(t, "garchomp", "rotom-wash", "scizor"),
		dexTeam(t, "tyranitar", "gengar", "azumarill"),
		WithSeed(11),
	)
	require.NoError(t, err)

	var sunk []Event
	b.sink = SinkFunc(func(e Event) { sunk = append(sunk, e) })

	events := playOut(t, b, 100)
	require.NotEmpty(t, events)

	for i, e := range events {
		assert.Equal(t, i, e.Seq)
		if i > 0 {
			assert.GreaterOrEqual(t, e.Turn, events[i-1].Turn)
		}
	}
	assert.Equal(t, events[len(events)-len(sunk):], sunk)
}

func TestSameSeedSameBattle(t *testing.T) {
	run := func(seed uint64) []string {
		b, err := NewBattle(
			dexTeam(t, "venusaur", "charizard", "blastoise"),
			dexTeam(t, "pikachu", "gyarados", "snorlax"),
			WithSeed(seed),
		)
		require.NoError(t, err)
		assert.Equal(t, seed, b.Seed())

		return lo.Map(playOut(t, b, 150), func(e Event, _ int) string { return e.String() })
	}

	first := run(42)
	assert.Equal(t, first, run(42))
}

func TestStruggle(t *testing.T) {
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)
	a := testCombatant("a", dex.ABILITY_NONE, tackle)
	b := duel(t, a, testCombatant("b", dex.ABILITY_NONE, harden()))
	a.PP[tackle.ID] = 0

	assert.Equal(t, []Action{None()}, b.ValidActions(SIDE_A))

	_, err := b.SubmitTurn(UseMove(0), UseMove(0))
	var invalid *InvalidActionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, REASON_NO_PP, invalid.Reason)

	result, err := b.SubmitTurn(None(), UseMove(0))
	require.NoError(t, err)

	struggled, ok := lo.Find(eventsOf(result.Events, EVENT_MOVE), func(e Event) bool { return e.Side == SIDE_A })
	require.True(t, ok)
	assert.Contains(t, struggled.Text, "struggle")
	assert.Equal(t, 175-a.fraction(0.25), a.HP)
	assert.Less(t, b.active(SIDE_B).HP, 175)
}

func TestRechargeCommits(t *testing.T) {
	beam := testMove("hyper-beam", 150, dex.TYPE_NORMAL, dex.CATEGORY_SPECIAL)
	beam.Recharge = true
	a := testCombatant("a", dex.ABILITY_NONE, beam)
	b := duel(t, a, testCombatant("b", dex.ABILITY_NONE, harden()))

	_, err := b.SubmitTurn(UseMove(0), UseMove(0))
	require.NoError(t, err)
	require.True(t, a.Recharging)

	assert.Equal(t, []Action{None()}, b.ValidActions(SIDE_A))
	_, err = b.SubmitTurn(UseMove(0), UseMove(0))
	var invalid *InvalidActionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, REASON_ACTION_REQUIRED, invalid.Reason)

	hp := b.active(SIDE_B).HP
	_, err = b.SubmitTurn(None(), UseMove(0))
	require.NoError(t, err)
	assert.False(t, a.Recharging)
	assert.Equal(t, hp, b.active(SIDE_B).HP)
	assert.Equal(t, beam.PP-1, a.PP[beam.ID])
}

func TestChargeMove(t *testing.T) {
	dig := testMove("dig", 80, dex.TYPE_GROUND, dex.CATEGORY_PHYSICAL)
	dig.Charge = &dex.Charge{Position: dex.POSITION_UNDERGROUND}
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)

	a := testCombatant("a", dex.ABILITY_NONE, dig)
	a.Stats.Speed = 200
	foe := testCombatant("b", dex.ABILITY_NONE, tackle)
	b := duel(t, a, foe)

	_, err := b.SubmitTurn(UseMove(0), UseMove(0))
	require.NoError(t, err)
	assert.Equal(t, dig, a.Charging)
	assert.Equal(t, dex.POSITION_UNDERGROUND, a.Position)
	assert.True(t, a.FullHP(), "tackle cannot reach underground")
	assert.True(t, foe.FullHP())

	_, err = b.SubmitTurn(None(), UseMove(0))
	require.NoError(t, err)
	assert.Nil(t, a.Charging)
	assert.Equal(t, dex.POSITION_GROUNDED, a.Position)
	assert.Less(t, foe.HP, foe.MaxHP)
	assert.Equal(t, dig.PP-1, a.PP[dig.ID])
}

func TestSpeedBoostSkipsSwitchInTurn(t *testing.T) {
	lead := testCombatant("lead", dex.ABILITY_NONE, harden())
	ninjask := testCombatant("ninjask", dex.ABILITY_SPEED_BOOST, harden())
	b := newTestBattle(t, []*Combatant{ninjask, lead}, []*Combatant{testCombatant("foe", dex.ABILITY_NONE, harden())}, noLuck)

	_, err := b.SubmitTurn(UseMove(0), UseMove(0))
	require.NoError(t, err)
	assert.Equal(t, 1, ninjask.Ranks.Get(dex.STAT_SPEED))

	_, err = b.SubmitTurn(SwitchTo(1), UseMove(0))
	require.NoError(t, err)
	_, err = b.SubmitTurn(SwitchTo(0), UseMove(0))
	require.NoError(t, err)
	assert.Equal(t, 0, ninjask.Ranks.Get(dex.STAT_SPEED))

	_, err = b.SubmitTurn(UseMove(0), UseMove(0))
	require.NoError(t, err)
	assert.Equal(t, 1, ninjask.Ranks.Get(dex.STAT_SPEED))
}

func TestIntimidateOnEntry(t *testing.T) {
	b := duel(t, testCombatant("gyarados", dex.ABILITY_INTIMIDATE, harden()), testCombatant("b", dex.ABILITY_NONE, harden()))
	assert.Equal(t, -1, b.active(SIDE_B).Ranks.Get(dex.STAT_ATTACK))
	assert.Equal(t, 0, b.active(SIDE_A).Ranks.Get(dex.STAT_ATTACK))
}

func TestDrizzleSetsRain(t *testing.T) {
	b := duel(t, testCombatant("politoed", dex.ABILITY_DRIZZLE, harden()), testCombatant("b", dex.ABILITY_NONE, harden()))
	assert.Equal(t, dex.WEATHER_RAIN, b.Snapshot().Environment.Weather)
	assert.Equal(t, WEATHER_TURNS, b.Snapshot().Environment.WeatherRemaining)
	require.NoError(t, b.verifyDurations())
}

func TestStealthRockOnSwitchIn(t *testing.T) {
	lead := testCombatant("lead", dex.ABILITY_NONE, harden())
	flyer := NewCombatantBuilder(nil, testSpecies("charizard", dex.TYPE_FIRE, dex.TYPE_FLYING)).SetMoves(harden()).MustBuild()
	b := newTestBattle(t, []*Combatant{lead, flyer}, []*Combatant{testCombatant("foe", dex.ABILITY_NONE, harden())}, noLuck)
	require.True(t, b.env.Side(SIDE_A).AddHazard(dex.HAZARD_STEALTH_ROCK))

	_, err := b.SubmitTurn(SwitchTo(1), UseMove(0))
	require.NoError(t, err)

	// rock is 4x against fire/flying: half of max HP
	assert.Equal(t, flyer.MaxHP-flyer.fraction(0.5), flyer.HP)
}

func TestSinkMayReadBattle(t *testing.T) {
	var b *BattleContext
	seen, turns := 0, []int{}
	sink := SinkFunc(func(e Event) {
		seen++
		if b != nil {
			turns = append(turns, b.Turn())
			b.Snapshot()
		}
	})

	b, err := NewBattle(
		[]*Combatant{testCombatant("politoed", dex.ABILITY_DRIZZLE, harden())},
		[]*Combatant{testCombatant("b", dex.ABILITY_NONE, harden())},
		WithRng(noLuck),
		WithEventSink(sink),
	)
	require.NoError(t, err)
	assert.Equal(t, len(b.Events()), seen, "switch-in events reach the sink")

	done := make(chan error, 1)
	go func() {
		_, err := b.SubmitTurn(UseMove(0), UseMove(0))
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("SubmitTurn did not return")
	}

	assert.Equal(t, len(b.Events()), seen)
	require.NotEmpty(t, turns)
	for _, turn := range turns {
		assert.Equal(t, 1, turn)
	}
}

func TestPaybackDoublesWhenMovingLast(t *testing.T) {
	splash := testMove("splash", 0, dex.TYPE_NORMAL, dex.CATEGORY_STATUS)
	splash.Target = dex.TARGET_SELF

	cases := []struct {
		name   string
		speed  int
		damage int
	}{
		{"first", 200, 21},
		{"last", 50, 41},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			payback := testMove("payback", 50, dex.TYPE_DARK, dex.CATEGORY_PHYSICAL)
			payback.PowerIfLast = true

			user := testCombatant("user", dex.ABILITY_NONE, payback)
			user.Stats.Speed = c.speed
			foe := testCombatant("foe", dex.ABILITY_NONE, splash)
			b := duel(t, user, foe)

			_, err := b.SubmitTurn(UseMove(0), UseMove(0))
			require.NoError(t, err)
			assert.Equal(t, c.damage, foe.MaxHP-foe.HP)
		})
	}
}
