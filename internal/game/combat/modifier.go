package combat

import "github.com/udisondev/galaxies/internal/model"

// DamageModifier adjusts skill damage after the level bonus and before
// target resistance. Linked gems on the attacker's weapon plug in here.
type DamageModifier interface {
	ModifyDamage(damage float64, attacker *model.Character, skill *model.Skill) float64
}

// DamageModifierFunc adapts a function to DamageModifier.
type DamageModifierFunc func(damage float64, attacker *model.Character, skill *model.Skill) float64

// ModifyDamage implements DamageModifier.
func (f DamageModifierFunc) ModifyDamage(damage float64, attacker *model.Character, skill *model.Skill) float64 {
	return f(damage, attacker, skill)
}

// LinkedGemModifier scales damage by PerLink for every linked gem slot on
// the attacker's weapon: damage × (1 + PerLink × links). Links beyond the
// weapon's gem slots are ignored.
type LinkedGemModifier struct {
	PerLink float64
}

// ModifyDamage implements DamageModifier.
func (m LinkedGemModifier) ModifyDamage(damage float64, attacker *model.Character, _ *model.Skill) float64 {
	weapon := attacker.Equipment().Weapon()
	if weapon == nil || m.PerLink <= 0 {
		return damage
	}
	links := int32(len(weapon.LinkedSlots))
	if links > weapon.GemSlots {
		links = weapon.GemSlots
	}
	return damage * (1 + m.PerLink*float64(links))
}

// applyModifiers runs the chain in order. An empty chain is the identity.
func applyModifiers(chain []DamageModifier, damage float64, attacker *model.Character, skill *model.Skill) float64 {
	for _, m := range chain {
		damage = m.ModifyDamage(damage, attacker, skill)
	}
	return damage
}
