package combat

import (
	"testing"
	"time"

	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/dice"
	"github.com/udisondev/galaxies/internal/game/effect"
	"github.com/udisondev/galaxies/internal/game/stats"
	"github.com/udisondev/galaxies/internal/model"
	"github.com/udisondev/galaxies/internal/uuid"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// newResolver wires a resolver with a fresh effect manager and log.
func newResolver(t *testing.T, rng dice.Source) *Resolver {
	t.Helper()
	cfg := config.DefaultCombat()
	r := NewResolver(cfg, rng, effect.NewManager(cfg, uuid.NewSequentialGenerator("fx")), NewLog(cfg.LogCapacity))
	r.SetClock(func() time.Time { return fixedNow })
	return r
}

// spawned creates a character with full health and mana.
func spawned(id string, kind model.Kind, level int32, base model.PrimaryStats) *model.Character {
	c := model.NewCharacter(id, id, kind, level, base)
	stats.Spawn(c)
	return c
}

// withHealth creates a character whose health is set explicitly.
func withHealth(id string, kind model.Kind, level int32, base model.PrimaryStats, health float64) *model.Character {
	c := model.NewCharacter(id, id, kind, level, base)
	c.SetHealth(health, stats.Derive(c).MaxHealth)
	return c
}
