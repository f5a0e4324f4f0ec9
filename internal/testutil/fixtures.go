package testutil

import (
	"github.com/udisondev/galaxies/internal/game/stats"
	"github.com/udisondev/galaxies/internal/model"
)

// Spawned создаёт персонажа с полными health и mana.
func Spawned(id string, kind model.Kind, level int32, base model.PrimaryStats) *model.Character {
	c := model.NewCharacter(id, id, kind, level, base)
	stats.Spawn(c)
	return c
}

// Wounded sets c's health to share of its derived maximum.
func Wounded(c *model.Character, share float64) *model.Character {
	maxHealth := stats.Derive(c).MaxHealth
	c.SetHealth(maxHealth*share, maxHealth)
	return c
}
