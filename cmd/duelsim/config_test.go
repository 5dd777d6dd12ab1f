package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "duelsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 99
battles: 3
replay_speed: 250ms
team_b:
  - species: gengar
    level: 60
    ability: levitate
    item: focus-sash
    moves: [shadow-ball]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 3, cfg.Battles)
	assert.Equal(t, 250*time.Millisecond, cfg.ReplaySpeed)
	assert.Equal(t, DefaultConfig().Parallel, cfg.Parallel)
	assert.Equal(t, DefaultConfig().TeamA, cfg.TeamA)
	assert.Equal(t, []MemberConfig{{
		Species: "gengar",
		Level:   60,
		Ability: "levitate",
		Item:    "focus-sash",
		Moves:   []string{"shadow-ball"},
	}}, cfg.TeamB)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]string{
		"bad yaml":        "battles: [",
		"no battles":      "battles: 0",
		"no parallelism":  "parallel: -1",
		"bad level":       "log_level: loud",
		"negative speed":  "replay_speed: -1s",
		"empty team":      "team_a: []",
		"no species":      "team_b: [{level: 50}]",
		"too many moves":  "team_a: [{species: pikachu, moves: [a, b, c, d, e]}]",
		"too many member": "team_a: [{species: a}, {species: b}, {species: c}, {species: d}, {species: e}, {species: f}, {species: g}]",
		"bad log file":    "log: {dir: logs, max_size: 0}",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "seed: 5\nbattles: 10\nparallel: 2\n")

	cfg, err := parseConfig([]string{"-config", path, "-battles", "4", "-replay", "-log-level", "debug"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), cfg.Seed, "not given on the command line")
	assert.Equal(t, 4, cfg.Battles)
	assert.Equal(t, 2, cfg.Parallel)
	assert.True(t, cfg.Replay)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = parseConfig([]string{"-config", path, "-parallel", "0"}, io.Discard)
	assert.Error(t, err)

	_, err = parseConfig([]string{"-unknown"}, io.Discard)
	assert.Error(t, err)
}
