package battle

import (
	"testing"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scaryFace() *dex.MoveDefinition {
	move := testMove("scary-face", 0, dex.TYPE_NORMAL, dex.CATEGORY_STATUS)
	move.Effects = []dex.MoveEffect{{Target: dex.TARGET_OPPONENT, Stats: []dex.StatDelta{{Stat: dex.STAT_SPEED, Stages: -2}}}}
	return move
}

func tailWhip() *dex.MoveDefinition {
	move := testMove("tail-whip", 0, dex.TYPE_NORMAL, dex.CATEGORY_STATUS)
	move.Effects = []dex.MoveEffect{{Target: dex.TARGET_OPPONENT, Stats: []dex.StatDelta{{Stat: dex.STAT_DEFENSE, Stages: -1}}}}
	return move
}

func TestAttackMove(t *testing.T) {
	player := NewCombatantBuilder(nil, testSpecies("bulbasaur", dex.TYPE_GRASS)).SetMoves(harden()).MustBuild()
	ai := testCombatant("charizard", dex.ABILITY_NONE,
		testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL),
		testMove("ember", 40, dex.TYPE_FIRE, dex.CATEGORY_SPECIAL),
		tailWhip(),
		scaryFace(),
	)
	ai.Stats.Speed = 300

	b := duel(t, player, ai)
	assert.Equal(t, UseMove(1), NewReferenceAgent(SIDE_B).Choose(b))
}

func TestSlowMove(t *testing.T) {
	player := testCombatant("bulbasaur", dex.ABILITY_NONE, harden())
	player.Stats.Speed = 300
	ai := testCombatant("charmander", dex.ABILITY_NONE,
		testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL),
		testMove("ember", 40, dex.TYPE_FIRE, dex.CATEGORY_SPECIAL),
		tailWhip(),
		scaryFace(),
	)

	b := duel(t, player, ai)
	assert.Equal(t, UseMove(3), NewReferenceAgent(SIDE_B).Choose(b))

	// nothing left to slow down
	player.Ranks.Change(dex.STAT_SPEED, MIN_STAGE)
	ai.Stats.Speed = 1
	assert.NotEqual(t, UseMove(3), NewReferenceAgent(SIDE_B).Choose(b))
}

func TestStatusWhenFoeIsHealthy(t *testing.T) {
	wave := testMove("thunder-wave", 0, dex.TYPE_ELECTRIC, dex.CATEGORY_STATUS)
	wave.Accuracy = 90
	wave.Effects = []dex.MoveEffect{{Target: dex.TARGET_OPPONENT, Status: dex.STATUS_PARA}}

	foe := testCombatant("foe", dex.ABILITY_NONE, harden())
	ai := testCombatant("pikachu", dex.ABILITY_NONE, testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL), wave)
	b := duel(t, ai, foe)
	agent := NewReferenceAgent(SIDE_A)

	assert.Equal(t, UseMove(1), agent.Choose(b))

	foe.Status = dex.STATUS_BURN
	assert.Equal(t, UseMove(0), agent.Choose(b))

	foe.Status = dex.STATUS_NONE
	foe.HP = foe.MaxHP / 2
	assert.Equal(t, UseMove(0), agent.Choose(b))

	// electric types cannot be paralyzed
	foe.HP = foe.MaxHP
	foe.TypeOverride = []dex.Type{dex.TYPE_ELECTRIC}
	assert.Equal(t, UseMove(0), agent.Choose(b))
}

func TestPrefersSureKO(t *testing.T) {
	blast := testMove("blast", 120, dex.TYPE_NORMAL, dex.CATEGORY_SPECIAL)
	blast.Accuracy = 50

	foe := testCombatant("foe", dex.ABILITY_NONE, harden())
	ai := testCombatant("ai", dex.ABILITY_NONE, blast, testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL))
	b := duel(t, ai, foe)
	agent := NewReferenceAgent(SIDE_A)

	assert.Equal(t, UseMove(0), agent.Choose(b), "more expected damage at full HP")

	foe.HP = 10
	assert.Equal(t, UseMove(1), agent.Choose(b), "both knock out, tackle never misses")
}

func TestSwitchesToCounter(t *testing.T) {
	punch := testMove("close-combat", 120, dex.TYPE_FIGHTING, dex.CATEGORY_PHYSICAL)
	foe := NewCombatantBuilder(nil, testSpecies("machamp", dex.TYPE_FIGHTING)).SetMoves(punch).MustBuild()

	lead := testCombatant("snorlax", dex.ABILITY_NONE, testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL))
	neutral := NewCombatantBuilder(nil, testSpecies("dragonite", dex.TYPE_DRAGON)).
		SetMoves(testMove("dragon-claw", 80, dex.TYPE_DRAGON, dex.CATEGORY_PHYSICAL)).
		MustBuild()
	counter := NewCombatantBuilder(nil, testSpecies("alakazam", dex.TYPE_PSYCHIC)).
		SetMoves(testMove("psychic", 90, dex.TYPE_PSYCHIC, dex.CATEGORY_SPECIAL)).
		MustBuild()

	b := newTestBattle(t, []*Combatant{lead, neutral, counter}, []*Combatant{foe}, noLuck)

	assert.Equal(t, 2, b.BestSwitchCandidate(SIDE_A))
	assert.Equal(t, SwitchTo(2), NewReferenceAgent(SIDE_A).Choose(b))

	// without a strong counter it stays in and attacks
	counter.HP = 0
	assert.Equal(t, 1, b.BestSwitchCandidate(SIDE_A))
	assert.Equal(t, UseMove(0), NewReferenceAgent(SIDE_A).Choose(b))
}

func TestBestSwitchCandidateTieBreaks(t *testing.T) {
	tackle := testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL)
	first := testCombatant("first", dex.ABILITY_NONE, tackle)
	second := testCombatant("second", dex.ABILITY_NONE, tackle)
	third := testCombatant("third", dex.ABILITY_NONE, tackle)

	b := newTestBattle(t, []*Combatant{testCombatant("lead", dex.ABILITY_NONE, tackle), first, second, third},
		[]*Combatant{testCombatant("foe", dex.ABILITY_NONE, tackle)}, noLuck)

	assert.Equal(t, 1, b.BestSwitchCandidate(SIDE_A))

	first.HP = 10
	assert.Equal(t, 2, b.BestSwitchCandidate(SIDE_A))

	first.HP, second.HP, third.HP = 0, 0, 0
	assert.Equal(t, -1, b.BestSwitchCandidate(SIDE_A))
}

func TestAgentOnlyReads(t *testing.T) {
	surf := testMove("surf", 90, dex.TYPE_WATER, dex.CATEGORY_SPECIAL)
	foe := testCombatant("vaporeon", dex.ABILITY_WATER_ABSORB, harden())
	ai := testCombatant("ai", dex.ABILITY_NONE, surf, scaryFace(), testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL))
	foe.HP = 50

	b := duel(t, ai, foe)
	before := b.Snapshot()
	events := len(b.Events())

	choice := NewReferenceAgent(SIDE_A).Choose(b)
	assert.Equal(t, UseMove(2), choice, "surf would be absorbed")
	assert.Equal(t, before, b.Snapshot())
	assert.Len(t, b.Events(), events)
}

func TestAgentFollowsCommitments(t *testing.T) {
	a := testCombatant("a", dex.ABILITY_NONE, testMove("tackle", 40, dex.TYPE_NORMAL, dex.CATEGORY_PHYSICAL))
	b := duel(t, a, testCombatant("b", dex.ABILITY_NONE, harden()))
	agent := NewReferenceAgent(SIDE_A)

	a.Recharging = true
	assert.Equal(t, None(), agent.Choose(b))

	a.Recharging = false
	for id := range a.PP {
		a.PP[id] = 0
	}
	assert.Equal(t, None(), agent.Choose(b))
}

func TestAgentsFinishBattles(t *testing.T) {
	for seed := range uint64(5) {
		b, err := NewBattle(
			dexTeam(t, "dragonite", "ferrothorn", "toxapex", "iron-hands"),
			dexTeam(t, "corviknight", "rillaboom", "chien-pao", "tapu-koko"),
			WithSeed(seed),
		)
		require.NoError(t, err)

		playOut(t, b, 1000)

		over, _ := b.Over()
		assert.True(t, over, "seed %d", seed)
	}
}
