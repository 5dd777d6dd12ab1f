package battle

import (
	"slices"

	"github.com/nathanieltooley/duelcore/dex"
)

// StatusSet is an insertion ordered set of volatile statuses
type StatusSet struct {
	items []dex.Volatile
}

func (s *StatusSet) Has(v dex.Volatile) bool {
	return slices.Contains(s.items, v)
}

// Add returns false if the status was already present
func (s *StatusSet) Add(v dex.Volatile) bool {
	if v == dex.VOLATILE_NONE || s.Has(v) {
		return false
	}
	s.items = append(s.items, v)
	return true
}

// Remove returns false if the status was not present
func (s *StatusSet) Remove(v dex.Volatile) bool {
	i := slices.Index(s.items, v)
	if i == -1 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

func (s *StatusSet) List() []dex.Volatile {
	return slices.Clone(s.items)
}

func (s *StatusSet) Len() int {
	return len(s.items)
}

func (s *StatusSet) Clear() {
	s.items = nil
}

// statusImmunity reports whether a combatant cannot receive a major status
type statusImmunity func(b *BattleContext, c *Combatant) bool

func hasAnyType(types ...dex.Type) statusImmunity {
	return func(_ *BattleContext, c *Combatant) bool {
		for _, t := range types {
			if c.HasType(t) {
				return true
			}
		}
		return false
	}
}

func hasAnyAbility(abilities ...dex.AbilityID) statusImmunity {
	return func(_ *BattleContext, c *Combatant) bool {
		return slices.Contains(abilities, c.Ability)
	}
}

func underWeather(w dex.Weather) statusImmunity {
	return func(b *BattleContext, _ *Combatant) bool {
		return b.weather() == w
	}
}

func onTerrain(f dex.Field) statusImmunity {
	return func(b *BattleContext, c *Combatant) bool {
		return b.env.Field() == f && c.grounded()
	}
}

var majorImmunities = map[dex.Status][]statusImmunity{
	dex.STATUS_BURN: {
		hasAnyType(dex.TYPE_FIRE),
		hasAnyAbility(dex.ABILITY_WATER_VEIL),
	},
	dex.STATUS_PARA: {
		hasAnyType(dex.TYPE_ELECTRIC),
		hasAnyAbility(dex.ABILITY_LIMBER),
	},
	dex.STATUS_POISON: {
		hasAnyType(dex.TYPE_POISON, dex.TYPE_STEEL),
		hasAnyAbility(dex.ABILITY_IMMUNITY),
	},
	dex.STATUS_TOXIC: {
		hasAnyType(dex.TYPE_POISON, dex.TYPE_STEEL),
		hasAnyAbility(dex.ABILITY_IMMUNITY),
	},
	dex.STATUS_FROZEN: {
		hasAnyType(dex.TYPE_ICE),
		hasAnyAbility(dex.ABILITY_MAGMA_ARMOR),
		underWeather(dex.WEATHER_SUN),
	},
	dex.STATUS_SLEEP: {
		hasAnyAbility(dex.ABILITY_INSOMNIA, dex.ABILITY_VITAL_SPIRIT, dex.ABILITY_SWEET_VEIL),
		onTerrain(dex.FIELD_ELECTRIC),
	},
}

var volatileImmunities = map[dex.Volatile][]statusImmunity{
	dex.VOLATILE_CONFUSION:  {hasAnyAbility(dex.ABILITY_OWN_TEMPO)},
	dex.VOLATILE_TAUNT:      {hasAnyAbility(dex.ABILITY_OBLIVIOUS)},
	dex.VOLATILE_FLINCH:     {hasAnyAbility(dex.ABILITY_INNER_FOCUS)},
	dex.VOLATILE_LEECH_SEED: {hasAnyType(dex.TYPE_GRASS)},
	dex.VOLATILE_TRAPPED:    {hasAnyType(dex.TYPE_GHOST)},
	dex.VOLATILE_YAWN: {
		hasAnyAbility(dex.ABILITY_INSOMNIA, dex.ABILITY_VITAL_SPIRIT, dex.ABILITY_SWEET_VEIL),
		onTerrain(dex.FIELD_ELECTRIC),
		onTerrain(dex.FIELD_MISTY),
	},
}

// immuneToStatus checks the immunity table for a major status. Misty terrain
// protects grounded combatants from every major status.
func (b *BattleContext) immuneToStatus(c *Combatant, status dex.Status) bool {
	if onTerrain(dex.FIELD_MISTY)(b, c) {
		return true
	}

	for _, immune := range majorImmunities[status] {
		if immune(b, c) {
			return true
		}
	}
	return false
}

func (b *BattleContext) immuneToVolatile(c *Combatant, v dex.Volatile) bool {
	for _, immune := range volatileImmunities[v] {
		if immune(b, c) {
			return true
		}
	}
	return false
}
