package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/galaxies/internal/game/combat"
	"github.com/udisondev/galaxies/internal/model"
)

func TestNewRecord(t *testing.T) {
	at := time.Date(2025, 3, 1, 15, 0, 0, 0, time.FixedZone("X", 3*3600))
	r := NewRecord(combat.Entry{
		Seq: 4, Encounter: "enc", Type: combat.EventEnemyAttack,
		AttackerID: "orc", TargetID: "hero", ActionID: "smash",
		Damage: 9, Blocked: true, Timestamp: at,
		Effects: []model.SkillEffect{model.StunEffect{}, model.SlowEffect{}},
	})

	assert.Equal(t, "enemy_attack", r.Type)
	assert.Equal(t, []string{"stun", "slow"}, r.Effects)
	assert.Equal(t, time.UTC, r.Timestamp.Location())
	assert.True(t, r.Timestamp.Equal(at))
	assert.True(t, r.Blocked)

	assert.Nil(t, NewRecord(combat.Entry{}).Effects)
}
