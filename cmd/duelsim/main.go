// duelsim plays batches of battles between two reference agents and reports the results
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nathanieltooley/duelcore/battle"
	"github.com/nathanieltooley/duelcore/dex"
	"github.com/nathanieltooley/duelcore/replay"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const (
	DEFAULT_CONFIG_PATH = "duelsim.yaml"
	DEFAULT_TERM_WIDTH  = 80
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "duelsim:", err)
		os.Exit(1)
	}
}

// parseConfig loads the config file named by -config and applies the flags given on top of it
func parseConfig(args []string, stderr io.Writer) (Config, error) {
	flags := flag.NewFlagSet("duelsim", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configPath := flags.String("config", DEFAULT_CONFIG_PATH, "path to the YAML config")
	seed := flags.Uint64("seed", 0, "seed of the first battle")
	battles := flags.Int("battles", 0, "number of battles to play")
	parallel := flags.Int("parallel", 0, "battles played at once")
	replayFirst := flags.Bool("replay", false, "replay the first battle when done")
	replaySpeed := flags.Duration("replay-speed", 0, "delay between replayed events")
	logLevel := flags.String("log-level", "", "trace, debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return cfg, err
	}

	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "battles":
			cfg.Battles = *battles
		case "parallel":
			cfg.Parallel = *parallel
		case "replay":
			cfg.Replay = *replayFirst
		case "replay-speed":
			cfg.ReplaySpeed = *replaySpeed
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	setInternalLoggers(&logger)

	start := time.Now()
	d, err := dex.Default()
	if err != nil {
		return fmt.Errorf("loading data set: %w", err)
	}
	logger.Info().
		Int("species", len(d.AllSpecies())).
		Int("moves", len(d.AllMoves())).
		Dur("took", time.Since(start)).
		Msg("loaded data set")

	logger.Info().
		Uint64("seed", cfg.Seed).
		Int("battles", cfg.Battles).
		Int("parallel", cfg.Parallel).
		Msg("starting simulation")

	start = time.Now()
	results, err := simulate(ctx, d, cfg, logger)
	if err != nil {
		return err
	}

	logReport(logger, summarize(results), time.Since(start))

	if cfg.Replay && len(results) > 0 {
		return showReplay(results[0].Events, cfg.ReplaySpeed, stdout)
	}
	return nil
}

func logReport(logger zerolog.Logger, r report, took time.Duration) {
	logger.Info().
		Int("battles", r.Battles).
		Int("wins_a", r.WinsA).
		Int("wins_b", r.WinsB).
		Int("draws", r.Draws).
		Int("unfinished", r.Unfinished).
		Float64("mean_turns", r.MeanTurns).
		Dur("took", took).
		Msg("simulation done")
}

// showReplay plays the log interactively on a terminal and prints it otherwise
func showReplay(events []battle.Event, speed time.Duration, stdout io.Writer) error {
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return replay.Run(events, speed)
	}

	width := DEFAULT_TERM_WIDTH
	if f, ok := stdout.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	return replay.Print(stdout, events, width)
}
