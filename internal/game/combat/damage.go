package combat

import (
	"math"

	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/game/stats"
	"github.com/udisondev/galaxies/internal/model"
)

// StatBonus returns the attribute contribution to a skill's base damage.
//
//	attack:  STR×2 + AGI×1.5
//	magic:   INT×3 + DIV×2
//	defense: VIT×2 + ABY×1.5
//	support: 0
func StatBonus(total model.PrimaryStats, t model.SkillType) float64 {
	switch t {
	case model.SkillAttack:
		return total.Strength*2 + total.Agility*1.5
	case model.SkillMagic:
		return total.Intelligence*3 + total.DivinePower*2
	case model.SkillDefense:
		return total.Vitality*2 + total.AbyssResistance*1.5
	default:
		return 0
	}
}

// BaseDamage = weapon attack + skill damage + stat bonus.
// Negative or non-finite skill damage counts as 0.
func BaseDamage(weaponAttack, skillDamage, statBonus float64) float64 {
	return nonNegative(weaponAttack) + nonNegative(skillDamage) + statBonus
}

// SkillDamage scales base damage by skill level: base × (1 + level×bonus).
func SkillDamage(base float64, level int32, levelBonus float64) float64 {
	if level < 0 {
		level = 0
	}
	return base * (1 + float64(level)*levelBonus)
}

// LevelResistance = min(cap, level × perLevel), never below 0.
func LevelResistance(level int32, cfg config.Combat) float64 {
	r := float64(level) * cfg.ResistancePerLevel
	return math.Max(0, math.Min(cfg.MaxLevelResistance, r))
}

// Mitigate applies a resistance ratio: max(floor, damage × (1 − resistance)).
func Mitigate(damage, resistance, floor float64) float64 {
	v := damage * (1 - resistance)
	if math.IsNaN(v) {
		return floor
	}
	return math.Max(floor, v)
}

// EnemyBaseDamage = abilityDamage × (1 + level×bonus) + attack.
// abilityDamage 0 is replaced by cfg.DefaultEnemyDamage.
func EnemyBaseDamage(abilityDamage float64, level int32, attack float64, cfg config.Combat) float64 {
	if !(abilityDamage > 0) || math.IsInf(abilityDamage, 0) {
		abilityDamage = cfg.DefaultEnemyDamage
	}
	if level < 0 {
		level = 0
	}
	return abilityDamage*(1+float64(level)*cfg.EnemyLevelBonus) + nonNegative(attack)
}

// TargetDefense is the mitigation ratio of an enemy hit:
// clamp(VIT×0.01 + armor.defense + armor.physicalResistance, 0, 0.8).
// VIT is the target's total vitality.
func TargetDefense(target *model.Character) float64 {
	armor := target.Equipment().ArmorStats()
	v := stats.TotalStats(target).Vitality*0.01 + nonNegative(armor.Defense) + nonNegative(armor.PhysicalResistance)
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(stats.MaxResistance, v))
}

// BlockedDamage is the share of enemy base damage that passes a block.
func BlockedDamage(base float64, cfg config.Combat) float64 {
	return nonNegative(base * cfg.BlockDamageFactor)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
