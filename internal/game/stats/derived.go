package stats

import (
	"math"

	"github.com/udisondev/galaxies/internal/model"
)

// Derived stat ranges.
const (
	MinCriticalChance = 0.05
	MaxCriticalChance = 0.95
	MinDodgeChance    = 0.05
	MaxDodgeChance    = 0.75
	MaxBlockChance    = 0.5
	MinSpeed          = 0.5
	MaxSpeed          = 2.0
	MaxResistance     = 0.8
)

// DerivedStats are combat values computed from total stats and equipment.
// Never persisted.
type DerivedStats struct {
	AttackPower        float64
	Defense            float64
	CriticalChance     float64
	CriticalMultiplier float64
	DodgeChance        float64
	BlockChance        float64

	MaxHealth          float64
	MaxMana            float64
	HealthRegeneration float64
	ManaRegeneration   float64

	MovementSpeed float64
	AttackSpeed   float64
	CastSpeed     float64

	DivineResistance   float64
	AbyssResistance    float64
	PhysicalResistance float64
	MagicalResistance  float64
}

// Derive computes derived stats. Missing equipment slots contribute zero.
func Derive(c model.Combatant) DerivedStats {
	t := TotalStats(c)
	eq := c.Equipment()
	if eq == nil {
		eq = &model.Equipment{}
	}
	weapon := eq.WeaponStats()
	armor := eq.ArmorStats()
	accessory := eq.AccessoryStats()

	return DerivedStats{
		AttackPower:        AttackPower(t, weapon),
		Defense:            Defense(t, armor),
		CriticalChance:     CriticalChance(t, weapon),
		CriticalMultiplier: CriticalMultiplier(t, weapon),
		DodgeChance:        DodgeChance(t, armor),
		BlockChance:        BlockChance(t, armor),

		MaxHealth:          MaxHealth(t, armor),
		MaxMana:            MaxMana(t, accessory),
		HealthRegeneration: HealthRegeneration(t),
		ManaRegeneration:   ManaRegeneration(t),

		MovementSpeed: MovementSpeed(t, armor, SpeedFactor(c.StatusEffects())),
		AttackSpeed:   AttackSpeed(t, weapon),
		CastSpeed:     CastSpeed(t),

		DivineResistance:   DivineResistance(t, armor),
		AbyssResistance:    t.AbyssResistance,
		PhysicalResistance: PhysicalResistance(t, armor),
		MagicalResistance:  MagicalResistance(t, armor),
	}
}

// AttackPower = max(1, STR×2 + weapon.attack + DIV×1.5).
func AttackPower(t model.PrimaryStats, weapon model.ItemStats) float64 {
	return atLeast(t.Strength*2+weapon.Attack+t.DivinePower*1.5, 1)
}

// Defense = max(0, VIT×1.5 + armor.defense + ABY×0.5).
func Defense(t model.PrimaryStats, armor model.ItemStats) float64 {
	return atLeast(t.Vitality*1.5+armor.Defense+t.AbyssResistance*0.5, 0)
}

// CriticalChance = clamp(0.05 + AGI×0.001 + weapon.critChance, 0.05, 0.95).
func CriticalChance(t model.PrimaryStats, weapon model.ItemStats) float64 {
	return clamp(0.05+t.Agility*0.001+weapon.CriticalChance, MinCriticalChance, MaxCriticalChance)
}

// CriticalMultiplier = max(1, 1.5 + STR×0.01 + weapon.critMultiplier).
func CriticalMultiplier(t model.PrimaryStats, weapon model.ItemStats) float64 {
	return atLeast(1.5+t.Strength*0.01+weapon.CriticalMultiplier, 1)
}

// DodgeChance = clamp(0.05 + AGI×0.002 + armor.dodgeChance, 0.05, 0.75).
func DodgeChance(t model.PrimaryStats, armor model.ItemStats) float64 {
	return clamp(0.05+t.Agility*0.002+armor.DodgeChance, MinDodgeChance, MaxDodgeChance)
}

// BlockChance = clamp(VIT×0.001 + armor.blockChance, 0, 0.5).
func BlockChance(t model.PrimaryStats, armor model.ItemStats) float64 {
	return clamp(t.Vitality*0.001+armor.BlockChance, 0, MaxBlockChance)
}

// MaxHealth = max(1, 100 + VIT×10 + STR×5 + armor.health).
func MaxHealth(t model.PrimaryStats, armor model.ItemStats) float64 {
	return atLeast(100+t.Vitality*10+t.Strength*5+armor.Health, 1)
}

// MaxMana = max(0, 50 + INT×8 + DIV×5 + accessory.mana).
func MaxMana(t model.PrimaryStats, accessory model.ItemStats) float64 {
	return atLeast(50+t.Intelligence*8+t.DivinePower*5+accessory.Mana, 0)
}

// HealthRegeneration = max(0, 1 + VIT×0.1 + DIV×0.05) per time unit.
func HealthRegeneration(t model.PrimaryStats) float64 {
	return atLeast(1+t.Vitality*0.1+t.DivinePower*0.05, 0)
}

// ManaRegeneration = max(0, 2 + INT×0.2 + DIV×0.1) per time unit.
func ManaRegeneration(t model.PrimaryStats) float64 {
	return atLeast(2+t.Intelligence*0.2+t.DivinePower*0.1, 0)
}

// MovementSpeed = clamp((1 + AGI×0.01 + armor.movementSpeed) × slowFactor, 0.5, 2).
func MovementSpeed(t model.PrimaryStats, armor model.ItemStats, slowFactor float64) float64 {
	return clamp((1+t.Agility*0.01+armor.MovementSpeed)*slowFactor, MinSpeed, MaxSpeed)
}

// AttackSpeed = clamp(1 + AGI×0.01 + weapon.attackSpeed, 0.5, 2).
func AttackSpeed(t model.PrimaryStats, weapon model.ItemStats) float64 {
	return clamp(1+t.Agility*0.01+weapon.AttackSpeed, MinSpeed, MaxSpeed)
}

// CastSpeed = clamp(1 + INT×0.01 + DIV×0.005, 0.5, 2).
func CastSpeed(t model.PrimaryStats) float64 {
	return clamp(1+t.Intelligence*0.01+t.DivinePower*0.005, MinSpeed, MaxSpeed)
}

// DivineResistance = clamp(DIV×0.5 + armor.divineResistance, 0, 0.8).
func DivineResistance(t model.PrimaryStats, armor model.ItemStats) float64 {
	return clamp(t.DivinePower*0.5+armor.DivineResistance, 0, MaxResistance)
}

// PhysicalResistance = clamp(VIT×0.01 + armor.physicalResistance, 0, 0.8).
func PhysicalResistance(t model.PrimaryStats, armor model.ItemStats) float64 {
	return clamp(t.Vitality*0.01+armor.PhysicalResistance, 0, MaxResistance)
}

// MagicalResistance = clamp(INT×0.01 + armor.magicalResistance, 0, 0.8).
func MagicalResistance(t model.PrimaryStats, armor model.ItemStats) float64 {
	return clamp(t.Intelligence*0.01+armor.MagicalResistance, 0, MaxResistance)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func atLeast(v, lo float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, v)
}
