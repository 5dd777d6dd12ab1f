package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nathanieltooley/duelcore/battle"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds everything a simulation run needs
type Config struct {
	LogLevel string    `yaml:"log_level"`
	Log      LogConfig `yaml:"log"`

	Seed     uint64 `yaml:"seed"`
	Battles  int    `yaml:"battles"`
	Parallel int    `yaml:"parallel"`
	// Battles still going after this many turns are counted as unfinished
	MaxTurns int `yaml:"max_turns"`

	Replay bool `yaml:"replay"`
	// Delay between revealed events, zero steps with the keyboard
	ReplaySpeed time.Duration `yaml:"replay_speed"`

	TeamA []MemberConfig `yaml:"team_a"`
	TeamB []MemberConfig `yaml:"team_b"`
}

// LogConfig controls the rolling log file. Nothing is written to disk when Dir is empty.
type LogConfig struct {
	Dir     string `yaml:"dir"`
	Name    string `yaml:"name"`
	MaxSize int64  `yaml:"max_size"` // bytes
	MaxLogs int    `yaml:"max_logs"`
}

// MemberConfig describes one team member. Empty fields keep the species' defaults.
type MemberConfig struct {
	Species  string   `yaml:"species"`
	Nickname string   `yaml:"nickname"`
	Level    int      `yaml:"level"`
	Ability  string   `yaml:"ability"`
	Item     string   `yaml:"item"`
	Moves    []string `yaml:"moves"`
}

func members(species ...string) []MemberConfig {
	team := make([]MemberConfig, 0, len(species))
	for _, s := range species {
		team = append(team, MemberConfig{Species: s})
	}
	return team
}

// DefaultConfig returns Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Log: LogConfig{
			Name:    "duelsim",
			MaxSize: 2.5 * mb,
			MaxLogs: 2,
		},
		Seed:        1,
		Battles:     100,
		Parallel:    4,
		MaxTurns:    1000,
		ReplaySpeed: 600 * time.Millisecond,
		TeamA:       members("dragonite", "ferrothorn", "toxapex", "iron-hands"),
		TeamB:       members("corviknight", "rillaboom", "chien-pao", "tapu-koko"),
	}
}

// LoadConfig overlays the YAML file at path on the defaults.
// A missing file returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Battles < 1 {
		return fmt.Errorf("battles must be at least 1, got %d", c.Battles)
	}
	if c.Parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", c.Parallel)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("max_turns must be at least 1, got %d", c.MaxTurns)
	}
	if c.ReplaySpeed < 0 {
		return fmt.Errorf("replay_speed cannot be negative, got %s", c.ReplaySpeed)
	}
	if c.Log.Dir != "" && (c.Log.MaxSize <= 0 || c.Log.MaxLogs < 1) {
		return fmt.Errorf("log: max_size and max_logs must be positive")
	}

	teams := []struct {
		name    string
		members []MemberConfig
	}{{"team_a", c.TeamA}, {"team_b", c.TeamB}}

	for _, t := range teams {
		name, team := t.name, t.members
		if len(team) == 0 || len(team) > battle.MAX_TEAM_SIZE {
			return fmt.Errorf("%s must have 1 to %d members, got %d", name, battle.MAX_TEAM_SIZE, len(team))
		}
		for i, m := range team {
			if m.Species == "" {
				return fmt.Errorf("%s[%d]: species is required", name, i)
			}
			if len(m.Moves) > battle.MAX_MOVES {
				return fmt.Errorf("%s[%d]: at most %d moves, got %d", name, i, battle.MAX_MOVES, len(m.Moves))
			}
		}
	}

	return nil
}
