package combat

import (
	"testing"

	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/game/stats"
	"github.com/udisondev/galaxies/internal/model"
)

func TestRewardExperience(t *testing.T) {
	cfg := config.DefaultCombat()

	tests := []struct {
		name      string
		level     int32
		startXP   int64
		wantLevel int32
		wantXP    int64
		levelUp   bool
	}{
		{"below threshold", 1, 0, 1, 10, false},
		{"reaches threshold", 1, 90, 2, 0, true},
		{"higher level needs more", 3, 280, 3, 290, false},
		{"exactly at higher threshold", 3, 290, 4, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := spawned("hero", model.KindPlayer, tt.level, model.PrimaryStats{})
			p.AddExperience(tt.startXP)
			p.SetHealth(1, stats.Derive(p).MaxHealth)

			if got := RewardExperience(p, cfg); got != tt.levelUp {
				t.Errorf("RewardExperience() = %v, want %v", got, tt.levelUp)
			}
			if p.Level() != tt.wantLevel {
				t.Errorf("level = %d, want %d", p.Level(), tt.wantLevel)
			}
			if p.Experience() != tt.wantXP {
				t.Errorf("experience = %d, want %d", p.Experience(), tt.wantXP)
			}
			if tt.levelUp && p.Health() != stats.Derive(p).MaxHealth {
				t.Errorf("health = %v, want full after level-up", p.Health())
			}
		})
	}
}

func TestRewardExperience_Disabled(t *testing.T) {
	cfg := config.DefaultCombat()
	cfg.ExperiencePerKill = 0
	p := spawned("hero", model.KindPlayer, 1, model.PrimaryStats{})

	if RewardExperience(p, cfg) {
		t.Error("no experience configured, no level-up expected")
	}
	if p.Experience() != 0 {
		t.Errorf("experience = %d, want 0", p.Experience())
	}
}
