package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nathanieltooley/duelcore/battle"
	"github.com/nathanieltooley/duelcore/dex"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type battleResult struct {
	ID       uuid.UUID
	Seed     uint64
	Finished bool
	Winner   battle.Side
	Turns    int
	Events   []battle.Event
}

type report struct {
	Battles    int
	WinsA      int
	WinsB      int
	Draws      int
	Unfinished int
	MeanTurns  float64
}

func buildMember(d *dex.Dex, m MemberConfig) (*battle.Combatant, error) {
	species, err := d.SpeciesByName(m.Species)
	if err != nil {
		return nil, err
	}

	builder := battle.NewCombatantBuilder(d, species)
	if m.Nickname != "" {
		builder.SetNickname(m.Nickname)
	}
	if m.Level != 0 {
		builder.SetLevel(m.Level)
	}
	if m.Ability != "" {
		ability, err := dex.ParseAbility(m.Ability)
		if err != nil {
			return nil, err
		}
		builder.SetAbility(ability)
	}
	if m.Item != "" {
		item, err := dex.ParseItem(m.Item)
		if err != nil {
			return nil, err
		}
		builder.SetItem(item)
	}
	if len(m.Moves) > 0 {
		moves := make([]*dex.MoveDefinition, 0, len(m.Moves))
		for _, name := range m.Moves {
			move, err := d.MoveByName(name)
			if err != nil {
				return nil, err
			}
			moves = append(moves, move)
		}
		builder.SetMoves(moves...)
	}

	return builder.Build()
}

// buildTeam makes fresh combatants, every battle needs its own
func buildTeam(d *dex.Dex, members []MemberConfig) ([]*battle.Combatant, error) {
	team := make([]*battle.Combatant, 0, len(members))
	for i, m := range members {
		c, err := buildMember(d, m)
		if err != nil {
			return nil, fmt.Errorf("member %d (%s): %w", i, m.Species, err)
		}
		team = append(team, c)
	}
	return team, nil
}

// runBattle plays one battle between two reference agents
func runBattle(ctx context.Context, d *dex.Dex, cfg Config, seed uint64) (battleResult, error) {
	teamA, err := buildTeam(d, cfg.TeamA)
	if err != nil {
		return battleResult{}, fmt.Errorf("team_a: %w", err)
	}
	teamB, err := buildTeam(d, cfg.TeamB)
	if err != nil {
		return battleResult{}, fmt.Errorf("team_b: %w", err)
	}

	b, err := battle.NewBattle(teamA, teamB, battle.WithSeed(seed))
	if err != nil {
		return battleResult{}, err
	}

	agentA, agentB := battle.NewReferenceAgent(battle.SIDE_A), battle.NewReferenceAgent(battle.SIDE_B)
	for range cfg.MaxTurns {
		if over, _ := b.Over(); over {
			break
		}
		if err := ctx.Err(); err != nil {
			return battleResult{}, err
		}

		if _, err := b.SubmitTurn(agentA.Choose(b), agentB.Choose(b)); err != nil {
			return battleResult{}, fmt.Errorf("battle %s turn %d: %w", b.ID, b.Turn()+1, err)
		}
	}

	over, winner := b.Over()
	return battleResult{
		ID:       b.ID,
		Seed:     seed,
		Finished: over,
		Winner:   winner,
		Turns:    b.Turn(),
		Events:   b.Events(),
	}, nil
}

// simulate runs cfg.Battles battles, at most cfg.Parallel at a time.
// Battle i is seeded with cfg.Seed+i so a run is reproducible.
func simulate(ctx context.Context, d *dex.Dex, cfg Config, logger zerolog.Logger) ([]battleResult, error) {
	results := make([]battleResult, cfg.Battles)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)

	for i := range cfg.Battles {
		seed := cfg.Seed + uint64(i)
		g.Go(func() error {
			result, err := runBattle(ctx, d, cfg, seed)
			if err != nil {
				return err
			}

			logger.Debug().
				Str("battle", result.ID.String()).
				Uint64("seed", seed).
				Int("turns", result.Turns).
				Bool("finished", result.Finished).
				Str("winner", result.Winner.String()).
				Msg("battle done")

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func summarize(results []battleResult) report {
	r := report{Battles: len(results)}

	finished := lo.Filter(results, func(result battleResult, _ int) bool {
		return result.Finished
	})
	r.Unfinished = len(results) - len(finished)

	for _, result := range finished {
		switch result.Winner {
		case battle.SIDE_A:
			r.WinsA++
		case battle.SIDE_B:
			r.WinsB++
		default:
			r.Draws++
		}
	}

	if len(finished) > 0 {
		r.MeanTurns = float64(lo.SumBy(finished, func(result battleResult) int { return result.Turns })) / float64(len(finished))
	}

	return r
}
