package effect

import (
	"github.com/udisondev/galaxies/internal/game/stats"
	"github.com/udisondev/galaxies/internal/model"
)

// periodic reports whether eff acts on every tick rather than only by its presence.
func periodic(eff model.SkillEffect) bool {
	switch eff.(type) {
	case model.DamageEffect, model.DOTEffect, model.HOTEffect:
		return true
	}
	return false
}

// tick applies one periodic application and returns the health delta magnitude.
func tick(target *model.Character, eff model.SkillEffect) float64 {
	switch e := eff.(type) {
	case model.DamageEffect:
		return drain(target, e.Value)
	case model.DOTEffect:
		return drain(target, e.Value)
	case model.HOTEffect:
		return heal(target, e.Value)
	}
	return 0
}

func drain(target *model.Character, value float64) float64 {
	if !positive(value) {
		return 0
	}
	before := target.Health()
	return before - target.TakeDamage(value)
}

// heal restores health up to the target's derived maximum.
func heal(target *model.Character, value float64) float64 {
	if !positive(value) || target.IsDead() {
		return 0
	}
	before := target.Health()
	target.SetHealth(before+value, stats.Derive(target).MaxHealth)
	return target.Health() - before
}
