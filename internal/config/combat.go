package config

import (
	"errors"
	"fmt"

	"github.com/udisondev/galaxies/internal/model"
)

// ErrInvalidCombat is returned for combat tuning that cannot drive a simulation.
var ErrInvalidCombat = errors.New("invalid combat config")

// Combat holds combat resolution tuning.
// Zero values mean "not set" when merged over DefaultCombat by YAML decoding.
type Combat struct {
	// TickInterval is the simulation time between periodic effect ticks.
	TickInterval float64 `yaml:"tick_interval"`
	// LogCapacity bounds the combat log; oldest entries are evicted first.
	LogCapacity int `yaml:"log_capacity"`
	// MaxEffectsPerTarget bounds concurrent status effects on one character.
	MaxEffectsPerTarget int `yaml:"max_effects_per_target"`

	// DefaultEnemyDamage replaces an ability damage of 0.
	DefaultEnemyDamage float64 `yaml:"default_enemy_damage"`
	// BlockDamageFactor is the share of enemy base damage that passes a block.
	BlockDamageFactor float64 `yaml:"block_damage_factor"`
	// ResistancePerLevel and MaxLevelResistance shape the target-level
	// resistance applied to player attacks.
	ResistancePerLevel float64 `yaml:"resistance_per_level"`
	MaxLevelResistance float64 `yaml:"max_level_resistance"`
	// SkillLevelBonus and EnemyLevelBonus scale damage per level.
	SkillLevelBonus float64 `yaml:"skill_level_bonus"`
	EnemyLevelBonus float64 `yaml:"enemy_level_bonus"`
	// MinDamage is the floor for non-avoided hits.
	MinDamage float64 `yaml:"min_damage"`

	// Progression
	ExperiencePerKill  int64              `yaml:"experience_per_kill"`
	ExperiencePerLevel int64              `yaml:"experience_per_level"` // threshold is level × this
	LevelUpStats       model.PrimaryStats `yaml:"level_up_stats"`
}

// DefaultCombat returns the standard combat tuning.
func DefaultCombat() Combat {
	return Combat{
		TickInterval:        1,
		LogCapacity:         1000,
		MaxEffectsPerTarget: 32,
		DefaultEnemyDamage:  10,
		BlockDamageFactor:   0.1,
		ResistancePerLevel:  0.02,
		MaxLevelResistance:  0.8,
		SkillLevelBonus:     0.1,
		EnemyLevelBonus:     0.1,
		MinDamage:           1,
		ExperiencePerKill:   10,
		ExperiencePerLevel:  100,
		LevelUpStats:        model.PrimaryStats{Vitality: 2},
	}
}

// Validate rejects tuning that would stall ticks or break invariants.
func (c Combat) Validate() error {
	switch {
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval must be positive, got %v", ErrInvalidCombat, c.TickInterval)
	case c.LogCapacity <= 0:
		return fmt.Errorf("%w: log_capacity must be positive, got %d", ErrInvalidCombat, c.LogCapacity)
	case c.MaxEffectsPerTarget <= 0:
		return fmt.Errorf("%w: max_effects_per_target must be positive, got %d", ErrInvalidCombat, c.MaxEffectsPerTarget)
	case c.BlockDamageFactor < 0 || c.BlockDamageFactor > 1:
		return fmt.Errorf("%w: block_damage_factor must be within [0, 1], got %v", ErrInvalidCombat, c.BlockDamageFactor)
	case c.MaxLevelResistance < 0 || c.MaxLevelResistance > 1:
		return fmt.Errorf("%w: max_level_resistance must be within [0, 1], got %v", ErrInvalidCombat, c.MaxLevelResistance)
	case c.MinDamage < 0:
		return fmt.Errorf("%w: min_damage must not be negative, got %v", ErrInvalidCombat, c.MinDamage)
	case c.ExperiencePerLevel <= 0:
		return fmt.Errorf("%w: experience_per_level must be positive, got %d", ErrInvalidCombat, c.ExperiencePerLevel)
	}
	if err := c.LevelUpStats.Validate("level_up_stats"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCombat, err)
	}
	return nil
}
