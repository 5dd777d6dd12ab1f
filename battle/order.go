package battle

import (
	"github.com/nathanieltooley/duelcore/dex"
	"github.com/samber/lo"
)

var weatherSpeedAbilities = map[dex.AbilityID]dex.Weather{
	dex.ABILITY_SWIFT_SWIM:  dex.WEATHER_RAIN,
	dex.ABILITY_CHLOROPHYLL: dex.WEATHER_SUN,
	dex.ABILITY_SAND_RUSH:   dex.WEATHER_SANDSTORM,
	dex.ABILITY_SLUSH_RUSH:  dex.WEATHER_SNOW,
}

// stat returns a computed stat with its stage applied
func (b *BattleContext) stat(c *Combatant, stat dex.Stat) float64 {
	value := float64(c.rawStat(stat)) * RankMultiplier(c.Ranks.Get(stat))
	if c.Boosted == stat {
		value *= lo.Ternary(stat == dex.STAT_SPEED, 1.5, 1.3)
	}
	return value
}

// Speed is the effective speed used for ordering. It is negated under trick room.
func (b *BattleContext) Speed(c *Combatant) float64 {
	speed := b.stat(c, dex.STAT_SPEED)

	if c.Status == dex.STATUS_PARA {
		speed *= 0.5
	}
	if w, ok := weatherSpeedAbilities[c.Ability]; ok && b.weather() == w {
		speed *= 2
	}
	if b.env.Room() == dex.ROOM_TRICK {
		speed = -speed
	}

	return speed
}

// priority is the move's priority after ability and terrain adjustments
func (b *BattleContext) priority(c *Combatant, move *dex.MoveDefinition) int {
	p := move.Priority

	switch {
	case c.Ability == dex.ABILITY_PRANKSTER && move.Category == dex.CATEGORY_STATUS:
		p++
	case c.Ability == dex.ABILITY_GALE_WINGS && move.Type == dex.TYPE_FLYING && c.FullHP():
		p++
	case c.Ability == dex.ABILITY_TRIAGE && move.Heal:
		p += 3
	}

	if move.HighPriorityInTerrain != dex.FIELD_NONE && b.env.Field() == move.HighPriorityInTerrain && c.grounded() {
		p++
	}

	return p
}

// moveFor resolves the move an action will use, nil for switches
func (b *BattleContext) moveFor(side Side, action Action) *dex.MoveDefinition {
	c := b.active(side)

	switch action.Kind {
	case ACTION_MOVE:
		return c.Moves[action.Index]
	case ACTION_NONE:
		switch {
		case c.Recharging:
			return nil
		case c.Charging != nil:
			return c.Charging
		case c.Locked != nil:
			return c.Locked
		default:
			return dex.Struggle
		}
	default:
		return nil
	}
}

// speedOrder returns both sides fastest first, ties broken randomly
func (b *BattleContext) speedOrder() [2]Side {
	speedA, speedB := b.Speed(b.active(SIDE_A)), b.Speed(b.active(SIDE_B))
	if speedA > speedB || (speedA == speedB && b.rng.IntN(2) == 0) {
		return [2]Side{SIDE_A, SIDE_B}
	}
	return [2]Side{SIDE_B, SIDE_A}
}

// calculateOrder decides who acts first this turn. Switches go before moves,
// then higher priority, then higher speed, then a coin flip.
func (b *BattleContext) calculateOrder(actionA, actionB Action) [2]Side {
	switchA, switchB := actionA.Kind == ACTION_SWITCH, actionB.Kind == ACTION_SWITCH
	switch {
	case switchA && !switchB:
		return [2]Side{SIDE_A, SIDE_B}
	case switchB && !switchA:
		return [2]Side{SIDE_B, SIDE_A}
	case switchA && switchB:
		return b.speedOrder()
	}

	priorityA, priorityB := 0, 0
	if move := b.moveFor(SIDE_A, actionA); move != nil {
		priorityA = b.priority(b.active(SIDE_A), move)
	}
	if move := b.moveFor(SIDE_B, actionB); move != nil {
		priorityB = b.priority(b.active(SIDE_B), move)
	}

	switch {
	case priorityA > priorityB:
		return [2]Side{SIDE_A, SIDE_B}
	case priorityB > priorityA:
		return [2]Side{SIDE_B, SIDE_A}
	default:
		return b.speedOrder()
	}
}
