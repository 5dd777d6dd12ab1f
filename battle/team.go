package battle

import (
	"fmt"

	"github.com/samber/lo"
)

const MAX_TEAM_SIZE = 6

type Side int

const (
	SIDE_NONE Side = iota - 1
	SIDE_A
	SIDE_B
)

func (s Side) Opponent() Side {
	switch s {
	case SIDE_A:
		return SIDE_B
	case SIDE_B:
		return SIDE_A
	default:
		return SIDE_NONE
	}
}

func (s Side) String() string {
	switch s {
	case SIDE_A:
		return "A"
	case SIDE_B:
		return "B"
	default:
		return "none"
	}
}

// Team is a fixed roster with exactly one active member
type Team struct {
	Name        string
	Members     []*Combatant
	ActiveIndex int
}

func newTeam(name string, members []*Combatant) (*Team, error) {
	if len(members) == 0 || len(members) > MAX_TEAM_SIZE {
		return nil, fmt.Errorf("%w: team %s has %d members", ErrInvalidTeam, name, len(members))
	}

	if lo.Contains(members, nil) {
		return nil, fmt.Errorf("%w: team %s has a nil member", ErrInvalidTeam, name)
	}

	if len(lo.Uniq(members)) != len(members) {
		return nil, fmt.Errorf("%w: team %s lists the same combatant twice", ErrInvalidTeam, name)
	}

	_, lead, ok := lo.FindIndexOf(members, func(c *Combatant) bool { return c.Alive() })
	if !ok {
		return nil, fmt.Errorf("%w: team %s has nobody able to battle", ErrInvalidTeam, name)
	}

	for _, c := range members {
		c.Active = false
	}

	team := &Team{Name: name, Members: members, ActiveIndex: lead}
	team.Active().Active = true

	return team, nil
}

func (t *Team) Active() *Combatant {
	return t.Members[t.ActiveIndex]
}

// Lost reports whether every member has fainted
func (t *Team) Lost() bool {
	return !lo.SomeBy(t.Members, func(c *Combatant) bool { return c.Alive() })
}

// Bench returns the indexes of alive members that are not active
func (t *Team) Bench() []int {
	bench := make([]int, 0, len(t.Members))
	for i, c := range t.Members {
		if i != t.ActiveIndex && c.Alive() {
			bench = append(bench, i)
		}
	}
	return bench
}
