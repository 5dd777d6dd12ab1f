package battle

import (
	"testing"

	"github.com/nathanieltooley/duelcore/dex"
	"github.com/stretchr/testify/assert"
)

func TestAbilityInfo(t *testing.T) {
	cases := []struct {
		ability dex.AbilityID
		hook    dex.AbilityHook
	}{
		{dex.ABILITY_INTIMIDATE, dex.HOOK_APPEAR},
		{dex.ABILITY_ADAPTABILITY, dex.HOOK_OFFENSE_BEFORE},
		{dex.ABILITY_LEVITATE, dex.HOOK_DEFENSE_BEFORE},
		{dex.ABILITY_ROUGH_SKIN, dex.HOOK_DEFENSE_AFTER},
		{dex.ABILITY_MOXIE, dex.HOOK_OFFENSE_AFTER},
		{dex.ABILITY_REGENERATOR, dex.HOOK_UTIL},
		{dex.ABILITY_SPEED_BOOST, dex.HOOK_UTIL},
		{dex.ABILITY_SKILL_LINK, dex.HOOK_UTIL},
	}

	for _, c := range cases {
		info := AbilityInfo(c.ability)
		assert.Equal(t, c.ability, info.ID)
		assert.Equal(t, c.ability.String(), info.Name)
		assert.True(t, info.Has(c.hook), "%s", c.ability)
	}

	assert.Zero(t, AbilityInfo(dex.ABILITY_NONE).Hooks)
}

func TestEveryAbilityHasAHook(t *testing.T) {
	for _, a := range dex.AllAbilities() {
		assert.NotZero(t, AbilityInfo(a).Hooks, "%s", a)
	}

	for id := range appearHooks {
		assert.True(t, AbilityInfo(id).Has(dex.HOOK_APPEAR), "%s", id)
	}
	for id := range defenseAfterHooks {
		assert.True(t, AbilityInfo(id).Has(dex.HOOK_DEFENSE_AFTER), "%s", id)
	}
}
