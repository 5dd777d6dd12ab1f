package dex

import (
	"testing"
	"testing/fstest"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivenessValues(t *testing.T) {
	allowed := []float64{0, 0.25, 0.5, 1, 2, 4}

	for _, attack := range AllTypes() {
		for _, first := range AllTypes() {
			single := Effectiveness(attack, first)
			assert.Contains(t, allowed, single, "%s vs %s", attack, first)

			for _, second := range AllTypes() {
				if second == first {
					continue
				}

				dual := Effectiveness(attack, first, second)
				assert.Contains(t, allowed, dual, "%s vs %s/%s", attack, first, second)
				assert.Equal(t, Matchup(attack, first)*Matchup(attack, second), dual)
			}
		}
	}
}

func TestEffectivenessKnownMatchups(t *testing.T) {
	cases := []struct {
		attack    Type
		defenders []Type
		expected  float64
	}{
		{TYPE_GROUND, []Type{TYPE_FLYING}, 0},
		{TYPE_ELECTRIC, []Type{TYPE_WATER, TYPE_FLYING}, 4},
		{TYPE_FIRE, []Type{TYPE_WATER, TYPE_DRAGON}, 0.25},
		{TYPE_ICE, []Type{TYPE_DRAGON, TYPE_GROUND}, 4},
		{TYPE_FIGHTING, []Type{TYPE_GHOST}, 0},
		{TYPE_TYPELESS, []Type{TYPE_GHOST}, 1},
		{TYPE_NORMAL, []Type{TYPE_NORMAL}, 1},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, Effectiveness(c.attack, c.defenders...), "%s vs %v", c.attack, c.defenders)
	}
}

func TestDefaultLoads(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	require.NotEmpty(t, d.AllSpecies())
	require.NotEmpty(t, d.AllMoves())

	for _, species := range d.AllSpecies() {
		assert.NotEmpty(t, species.Types, species.Name)
		assert.Equal(t, DEFAULT_LEVEL, species.Level, species.Name)
		assert.Len(t, d.MovesOf(species), len(species.Moves), species.Name)
	}
}

func TestDefaultForms(t *testing.T) {
	d := MustDefault()

	darm, err := d.SpeciesByName("Darmanitan")
	require.NoError(t, err)
	require.Equal(t, FORM_BASE, darm.Form)

	zen, ok := d.Form(darm.ID, "zen")
	require.True(t, ok)

	assert.Equal(t, "darmanitan-zen", zen.Name)
	assert.True(t, zen.HasType(TYPE_PSYCHIC))
	assert.False(t, darm.HasType(TYPE_PSYCHIC))
	assert.Equal(t, darm.Moves, zen.Moves)
	assert.Equal(t, ABILITY_ZEN_MODE, zen.Ability)
	assert.Greater(t, zen.Base.SpAttack, darm.Base.SpAttack)
}

func TestMoveRecordsResolve(t *testing.T) {
	d := MustDefault()

	solar, err := d.MoveByName("solar-beam")
	require.NoError(t, err)
	require.NotNil(t, solar.Charge)
	assert.Equal(t, WEATHER_SUN, solar.Charge.InstantWeather)

	closeCombat, err := d.MoveByName("close-combat")
	require.NoError(t, err)
	require.Len(t, closeCombat.Demerits, 1)
	assert.Equal(t, TARGET_SELF, closeCombat.Demerits[0].Target)
	assert.Equal(t, []StatDelta{{STAT_DEFENSE, -1}, {STAT_SPDEF, -1}}, closeCombat.Demerits[0].Stats)

	swordsDance, err := d.MoveByName("swords-dance")
	require.NoError(t, err)
	assert.Equal(t, TARGET_SELF, swordsDance.Effects[0].Target)

	metalBurst, err := d.MoveByName("metal-burst")
	require.NoError(t, err)
	assert.Equal(t, CATEGORY_STATUS, metalBurst.Counter.Category)

	psyshock, err := d.MoveByName("psyshock")
	require.NoError(t, err)
	assert.True(t, psyshock.DefenseOverride)
	assert.Equal(t, STAT_DEFENSE, psyshock.DefenseStat)

	earthquake, err := d.MoveByName("earthquake")
	require.NoError(t, err)
	assert.True(t, earthquake.CanReach(POSITION_UNDERGROUND))
	assert.False(t, earthquake.CanReach(POSITION_AIRBORNE))
	assert.True(t, earthquake.CanReach(POSITION_GROUNDED))

	_, err = d.MoveByName("not-a-move")
	assert.ErrorIs(t, err, ErrUnknownMove)

	_, err = d.SpeciesByName("missingno")
	assert.ErrorIs(t, err, ErrUnknownSpecies)
}

func TestLoadRejectsBadData(t *testing.T) {
	goodMoves := "moves:\n  - {id: 1, name: tackle, power: 40, accuracy: 100, pp: 35, type: normal, category: physical}\n"

	cases := map[string]fstest.MapFS{
		"unknown type": {
			"moves.yaml":   {Data: []byte("moves:\n  - {id: 1, name: tackle, type: plastic, category: physical}\n")},
			"species.yaml": {Data: []byte("species: []\n")},
		},
		"unknown move on species": {
			"moves.yaml":   {Data: []byte(goodMoves)},
			"species.yaml": {Data: []byte("species:\n  - {id: 1, name: a, types: [normal], moves: [splash]}\n")},
		},
		"three types": {
			"moves.yaml":   {Data: []byte(goodMoves)},
			"species.yaml": {Data: []byte("species:\n  - {id: 1, name: a, types: [normal, fire, water]}\n")},
		},
		"duplicate move": {
			"moves.yaml":   {Data: []byte(goodMoves + "  - {id: 1, name: pound, type: normal, category: physical}\n")},
			"species.yaml": {Data: []byte("species: []\n")},
		},
		"missing species file": {
			"moves.yaml": {Data: []byte(goodMoves)},
		},
		"bad chance": {
			"moves.yaml":   {Data: []byte("moves:\n  - id: 1\n    name: a\n    type: normal\n    category: status\n    effects:\n      - {chance: 2, status: burn}\n")},
			"species.yaml": {Data: []byte("species: []\n")},
		},
	}

	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(fsys)
			assert.Error(t, err)
		})
	}
}

func TestAbilityNames(t *testing.T) {
	def := AbilityDefinition{ID: ABILITY_ROUGH_SKIN, Name: "rough-skin", Hooks: HOOK_DEFENSE_AFTER | HOOK_UTIL}
	assert.True(t, def.Has(HOOK_UTIL))
	assert.False(t, def.Has(HOOK_APPEAR))

	names := lo.Map(AllAbilities(), func(a AbilityID, _ int) string { return a.String() })
	assert.Equal(t, len(names), len(lo.Uniq(names)))

	for _, a := range AllAbilities() {
		parsed, err := ParseAbility(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Thunder Punch", DisplayName("thunder-punch"))
	assert.Equal(t, "Porygon Z", DisplayName("porygon-z"))
}
