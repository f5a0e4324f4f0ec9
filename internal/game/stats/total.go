// Package stats resolves total primary stats and derived combat stats.
//
// Every function here is a pure function of the character snapshot it
// receives: no hidden state, no mutation, safe to call concurrently for
// different characters.
package stats

import (
	"errors"
	"math"

	"github.com/udisondev/galaxies/internal/model"
)

// skillBuffShare is the fraction of a skill's buff magnitude granted to
// strength and agility.
const skillBuffShare = 0.1

// TotalStats aggregates base, equipment, skill and active-buff stats in that
// order. Base and item values that are negative or non-finite count as 0;
// the result never goes below 0.
func TotalStats(c model.Combatant) model.PrimaryStats {
	total := c.BaseStats().Sanitize()
	total = total.Add(EquipmentStats(c.Equipment()))
	total = total.Add(SkillStats(c.Skills()))
	total = total.Add(BuffStats(c.StatusEffects()))
	return floorTotal(total)
}

// floorTotal clamps negatives to 0 and saturates overflow at MaxFloat64.
func floorTotal(s model.PrimaryStats) model.PrimaryStats {
	f := func(v float64) float64 {
		switch {
		case math.IsNaN(v) || v < 0:
			return 0
		case math.IsInf(v, 1):
			return math.MaxFloat64
		}
		return v
	}
	return model.PrimaryStats{
		Strength:        f(s.Strength),
		Agility:         f(s.Agility),
		Intelligence:    f(s.Intelligence),
		Vitality:        f(s.Vitality),
		DivinePower:     f(s.DivinePower),
		AbyssResistance: f(s.AbyssResistance),
	}
}

// EquipmentStats sums primary bonuses of weapon, armor and accessory.
func EquipmentStats(eq *model.Equipment) model.PrimaryStats {
	var sum model.PrimaryStats
	if eq == nil {
		return sum
	}
	for _, it := range eq.Items() {
		sum = sum.Add(it.Stats.PrimaryStats.Sanitize())
	}
	return sum
}

// SkillStats sums the passive contribution of learned skills: each buff
// effect grants 10% of its magnitude to strength and agility.
func SkillStats(skills []*model.Skill) model.PrimaryStats {
	var sum model.PrimaryStats
	for _, s := range skills {
		if s == nil {
			continue
		}
		for _, eff := range s.Effects {
			if b, ok := eff.(model.BuffEffect); ok {
				sum.Strength += b.Value * skillBuffShare
				sum.Agility += b.Value * skillBuffShare
			}
		}
	}
	return sum
}

// BuffStats sums stat contributions of active buff and debuff instances.
func BuffStats(active []*model.StatusEffectInstance) model.PrimaryStats {
	var sum model.PrimaryStats
	for _, inst := range active {
		if inst == nil || inst.IsExpired() {
			continue
		}
		switch e := inst.Effect.(type) {
		case model.BuffEffect:
			sum = sum.Add(e.Stats.Sanitize())
		case model.DebuffEffect:
			sum = sum.Sub(e.Stats.Sanitize())
		}
	}
	return sum
}

// SpeedFactor is the product of (1 - value) over active slow instances.
// Each slow is an independent multiplier, so expiry order does not matter.
func SpeedFactor(active []*model.StatusEffectInstance) float64 {
	factor := 1.0
	for _, inst := range active {
		if inst == nil || inst.IsExpired() {
			continue
		}
		if s, ok := inst.Effect.(model.SlowEffect); ok {
			factor *= clamp(1-s.Value, 0, 1)
		}
	}
	return factor
}

// Validate reports negative or non-finite base stats and item bonuses.
// TotalStats clamps such values; Validate lets callers reject them instead.
func Validate(c model.Combatant) error {
	var errs []error
	if err := c.BaseStats().Validate("base stats"); err != nil {
		errs = append(errs, err)
	}
	if eq := c.Equipment(); eq != nil {
		for _, it := range eq.Items() {
			if err := it.Stats.Validate("item " + it.ID); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
