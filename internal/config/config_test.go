package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSimulator_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadSimulator(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSimulator(), cfg)
}

func TestLoadSimulator_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := `
log_level: debug
combat:
  log_capacity: 50
  default_enemy_damage: 15
archive:
  batch_size: 8
  flush_interval: 2s
  redis:
    enabled: true
    stream: test:combat
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadSimulator(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.Combat.LogCapacity)
	assert.Equal(t, 15.0, cfg.Combat.DefaultEnemyDamage)
	// untouched keys keep defaults
	assert.Equal(t, 1.0, cfg.Combat.TickInterval)
	assert.Equal(t, 32, cfg.Combat.MaxEffectsPerTarget)
	assert.Equal(t, 8, cfg.Archive.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.Archive.FlushInterval)
	assert.True(t, cfg.Archive.Redis.Enabled)
	assert.Equal(t, "test:combat", cfg.Archive.Redis.Stream)
	assert.False(t, cfg.Archive.Database.Enabled)
}

func TestLoadSimulator_InvalidCombat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("combat:\n  tick_interval: -1\n"), 0o600))

	_, err := LoadSimulator(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCombat))
}

func TestLoadSimulator_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("combat: [unterminated"), 0o600))

	_, err := LoadSimulator(path)
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "h", Port: 5433, DBName: "db", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5433/db?sslmode=disable", d.DSN())
}

func TestCombat_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Combat)
	}{
		{"zero tick", func(c *Combat) { c.TickInterval = 0 }},
		{"zero log capacity", func(c *Combat) { c.LogCapacity = 0 }},
		{"zero effect cap", func(c *Combat) { c.MaxEffectsPerTarget = 0 }},
		{"block factor above one", func(c *Combat) { c.BlockDamageFactor = 1.5 }},
		{"resistance cap above one", func(c *Combat) { c.MaxLevelResistance = 2 }},
		{"negative min damage", func(c *Combat) { c.MinDamage = -1 }},
		{"zero level threshold", func(c *Combat) { c.ExperiencePerLevel = 0 }},
		{"negative level-up stats", func(c *Combat) { c.LevelUpStats.Strength = -1 }},
	}

	require.NoError(t, DefaultCombat().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCombat()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidCombat)
		})
	}
}
