package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/galaxies/internal/game/combat"
	"github.com/udisondev/galaxies/internal/model"
	"github.com/udisondev/galaxies/internal/sim"
)

func TestParseFlags(t *testing.T) {
	t.Setenv("GALAXIES_CONFIG", "/etc/galaxies.yaml")

	f, err := parseFlags([]string{"-dt", "0.5", "-max-rounds", "10", "-seed", "3", "-encounter", "orc-camp"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/galaxies.yaml", f.configPath)
	assert.Equal(t, 0.5, f.step)
	assert.Equal(t, 10, f.maxRounds)
	assert.Equal(t, uint64(3), f.seed)
	assert.Equal(t, "orc-camp", f.encounter)

	f, err = parseFlags([]string{"-config", "local.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "local.yaml", f.configPath)

	_, err = parseFlags([]string{"-unknown"})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestPrintReports(t *testing.T) {
	var buf bytes.Buffer
	printReports(&buf, []sim.Report{{
		Encounter: "duel/1",
		Outcome:   combat.OutcomePlayersWon,
		Rounds:    4,
		Elapsed:   4,
		Entries:   9,
		Survivors: []sim.Survivor{{ID: "warrior-1", Kind: model.KindPlayer, Level: 2, Health: 80}},
	}})

	out := buf.String()
	assert.Contains(t, out, "players_won")
	assert.Contains(t, out, "warrior-1")
	assert.Contains(t, out, "rounds=4")
}
