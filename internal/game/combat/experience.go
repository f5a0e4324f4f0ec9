package combat

import (
	"log/slog"

	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/game/stats"
	"github.com/udisondev/galaxies/internal/model"
)

// RewardExperience awards kill experience to player and handles level-up.
// Reaching level × ExperiencePerLevel raises the level by one, resets
// experience, adds LevelUpStats to base stats and restores health and mana.
// Returns true if the player levelled up.
func RewardExperience(player *model.Character, cfg config.Combat) bool {
	if player == nil || cfg.ExperiencePerKill <= 0 {
		return false
	}
	player.AddExperience(cfg.ExperiencePerKill)

	threshold := int64(player.Level()) * cfg.ExperiencePerLevel
	if player.Experience() < threshold {
		return false
	}

	oldLevel := player.Level()
	player.SetExperience(0)
	player.GainLevel(cfg.LevelUpStats)
	stats.Spawn(player)

	slog.Debug("level up",
		"player", player.ID(),
		"oldLevel", oldLevel,
		"newLevel", player.Level())
	return true
}
