package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/galaxies/internal/model"
)

func tens() model.PrimaryStats {
	return model.PrimaryStats{Strength: 10, Agility: 10, Intelligence: 10, Vitality: 10}
}

func TestDerive_BaselineCharacter(t *testing.T) {
	c := model.NewCharacter("p1", "Hero", model.KindPlayer, 1, tens())

	d := Derive(c)

	assert.Equal(t, 20.0, d.AttackPower, "attackPower = max(1, 10*2 + 0 + 0)")
	assert.Equal(t, 250.0, d.MaxHealth, "maxHealth = 100 + 10*10 + 10*5")
	assert.InDelta(t, 15.0, d.Defense, 1e-9)
	assert.InDelta(t, 0.06, d.CriticalChance, 1e-9)
	assert.InDelta(t, 1.6, d.CriticalMultiplier, 1e-9)
	assert.InDelta(t, 0.07, d.DodgeChance, 1e-9)
	assert.InDelta(t, 0.01, d.BlockChance, 1e-9)
	assert.InDelta(t, 130.0, d.MaxMana, 1e-9)
	assert.InDelta(t, 2.0, d.HealthRegeneration, 1e-9)
	assert.InDelta(t, 4.0, d.ManaRegeneration, 1e-9)
	assert.InDelta(t, 1.1, d.MovementSpeed, 1e-9)
	assert.InDelta(t, 1.1, d.AttackSpeed, 1e-9)
	assert.InDelta(t, 1.1, d.CastSpeed, 1e-9)
	assert.InDelta(t, 0.0, d.DivineResistance, 1e-9)
	assert.InDelta(t, 0.1, d.PhysicalResistance, 1e-9)
	assert.InDelta(t, 0.1, d.MagicalResistance, 1e-9)
}

func TestDerive_ClampsExtremeInputs(t *testing.T) {
	huge := model.PrimaryStats{
		Strength: 1e12, Agility: 1e12, Intelligence: 1e12,
		Vitality: 1e12, DivinePower: 1e12, AbyssResistance: 1e12,
	}
	armor := model.NewItem("a1", "Plate", model.SlotArmor, model.ItemStats{
		DodgeChance: 50, BlockChance: 50, MovementSpeed: 50,
		DivineResistance: 50, PhysicalResistance: 50, MagicalResistance: 50,
	})
	weapon := model.NewItem("w1", "Blade", model.SlotWeapon, model.ItemStats{
		CriticalChance: 50, AttackSpeed: 50,
	})

	tests := []struct {
		name  string
		build func() *model.Character
	}{
		{"zero stats", func() *model.Character {
			return model.NewCharacter("z", "Zero", model.KindPlayer, 1, model.PrimaryStats{})
		}},
		{"huge stats", func() *model.Character {
			return model.NewCharacter("h", "Huge", model.KindPlayer, 1, huge)
		}},
		{"huge stats with gear", func() *model.Character {
			c := model.NewCharacter("g", "Geared", model.KindPlayer, 1, huge)
			_, err := c.Equipment().Equip(armor)
			require.NoError(t, err)
			_, err = c.Equipment().Equip(weapon)
			require.NoError(t, err)
			return c
		}},
		{"max float stats", func() *model.Character {
			m := math.MaxFloat64
			return model.NewCharacter("m", "Max", model.KindPlayer, 1, model.PrimaryStats{
				Strength: m, Agility: m, Intelligence: m, Vitality: m, DivinePower: m, AbyssResistance: m,
			})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Derive(tt.build())

			assertRange(t, "criticalChance", d.CriticalChance, 0.05, 0.95)
			assertRange(t, "dodgeChance", d.DodgeChance, 0.05, 0.75)
			assertRange(t, "blockChance", d.BlockChance, 0, 0.5)
			assertRange(t, "movementSpeed", d.MovementSpeed, 0.5, 2.0)
			assertRange(t, "attackSpeed", d.AttackSpeed, 0.5, 2.0)
			assertRange(t, "castSpeed", d.CastSpeed, 0.5, 2.0)
			assertRange(t, "divineResistance", d.DivineResistance, 0, 0.8)
			assertRange(t, "physicalResistance", d.PhysicalResistance, 0, 0.8)
			assertRange(t, "magicalResistance", d.MagicalResistance, 0, 0.8)
			assert.GreaterOrEqual(t, d.CriticalMultiplier, 1.0)
			assert.GreaterOrEqual(t, d.MaxHealth, 1.0)
			assert.GreaterOrEqual(t, d.MaxMana, 0.0)
			assert.GreaterOrEqual(t, d.AttackPower, 1.0)
		})
	}
}

func assertRange(t *testing.T, name string, v, lo, hi float64) {
	t.Helper()
	if math.IsNaN(v) || v < lo || v > hi {
		t.Errorf("%s = %v, want within [%v, %v]", name, v, lo, hi)
	}
}

func TestDerive_PureAndIdempotent(t *testing.T) {
	c := model.NewCharacter("p1", "Hero", model.KindPlayer, 3, tens())
	_, err := c.Equipment().Equip(model.NewItem("w", "Sword", model.SlotWeapon, model.ItemStats{Attack: 12}))
	require.NoError(t, err)
	c.LearnSkill(&model.Skill{ID: "s", Effects: []model.SkillEffect{model.BuffEffect{Value: 20}}})
	c.AddStatusEffect(&model.StatusEffectInstance{
		ID: "b1", Remaining: 5,
		Effect: model.BuffEffect{Stats: model.PrimaryStats{Vitality: 4}},
	})
	c.SetHealth(42, 1000)

	baseBefore := c.BaseStats()
	effectsBefore := len(c.StatusEffects())

	first := Derive(c)
	second := Derive(c)

	assert.Equal(t, first, second)
	assert.Equal(t, baseBefore, c.BaseStats())
	assert.Equal(t, effectsBefore, len(c.StatusEffects()))
	assert.Equal(t, 42.0, c.Health())
	assert.Equal(t, TotalStats(c), TotalStats(c))
}

func TestTotalStats_AggregationLayers(t *testing.T) {
	c := model.NewCharacter("p1", "Hero", model.KindPlayer, 1, tens())

	_, err := c.Equipment().Equip(model.NewItem("w", "Sword", model.SlotWeapon, model.ItemStats{
		PrimaryStats: model.PrimaryStats{Strength: 3},
	}))
	require.NoError(t, err)
	_, err = c.Equipment().Equip(model.NewItem("a", "Mail", model.SlotArmor, model.ItemStats{
		PrimaryStats: model.PrimaryStats{Vitality: 5},
	}))
	require.NoError(t, err)
	_, err = c.Equipment().Equip(model.NewItem("r", "Ring", model.SlotAccessory, model.ItemStats{
		PrimaryStats: model.PrimaryStats{Intelligence: 2, DivinePower: 1},
	}))
	require.NoError(t, err)

	// Skill layer: 10% of buff magnitude to STR and AGI; non-buff effects ignored.
	c.LearnSkill(&model.Skill{ID: "war-cry", Effects: []model.SkillEffect{
		model.BuffEffect{Value: 30},
		model.DOTEffect{Value: 100, Duration: 3},
	}})

	// Buff layer.
	c.AddStatusEffect(&model.StatusEffectInstance{
		ID: "buff", Remaining: 2,
		Effect: model.BuffEffect{Stats: model.PrimaryStats{Agility: 4}},
	})
	c.AddStatusEffect(&model.StatusEffectInstance{
		ID: "debuff", Remaining: 2,
		Effect: model.DebuffEffect{Stats: model.PrimaryStats{Intelligence: 1}},
	})

	got := TotalStats(c)

	assert.InDelta(t, 10+3+3.0, got.Strength, 1e-9)
	assert.InDelta(t, 10+3+4.0, got.Agility, 1e-9)
	assert.InDelta(t, 10+2-1.0, got.Intelligence, 1e-9)
	assert.InDelta(t, 15.0, got.Vitality, 1e-9)
	assert.InDelta(t, 1.0, got.DivinePower, 1e-9)
	assert.InDelta(t, 0.0, got.AbyssResistance, 1e-9)
}

func TestTotalStats_DebuffNeverBelowZero(t *testing.T) {
	c := model.NewCharacter("p1", "Hero", model.KindPlayer, 1, model.PrimaryStats{Strength: 2})
	c.AddStatusEffect(&model.StatusEffectInstance{
		ID: "curse", Remaining: 1,
		Effect: model.DebuffEffect{Stats: model.PrimaryStats{Strength: 50}},
	})

	if got := TotalStats(c).Strength; got != 0 {
		t.Errorf("strength = %v, want 0", got)
	}
}

func TestTotalStats_ExpiredInstancesIgnored(t *testing.T) {
	c := model.NewCharacter("p1", "Hero", model.KindPlayer, 1, model.PrimaryStats{})
	c.AddStatusEffect(&model.StatusEffectInstance{
		ID: "old", Remaining: 0,
		Effect: model.BuffEffect{Stats: model.PrimaryStats{Strength: 50}},
	})

	if got := TotalStats(c).Strength; got != 0 {
		t.Errorf("strength = %v, want 0", got)
	}
}

func TestTotalStats_InvalidInputsClamped(t *testing.T) {
	c := model.NewCharacter("p1", "Hero", model.KindPlayer, 1, model.PrimaryStats{
		Strength: math.NaN(), Agility: -5, Vitality: math.Inf(1), Intelligence: 4,
	})
	_, err := c.Equipment().Equip(model.NewItem("w", "Cursed", model.SlotWeapon, model.ItemStats{
		PrimaryStats: model.PrimaryStats{Intelligence: -10},
		Attack:       math.NaN(),
	}))
	require.NoError(t, err)

	total := TotalStats(c)
	assert.Equal(t, 0.0, total.Strength)
	assert.Equal(t, 0.0, total.Agility)
	assert.Equal(t, 0.0, total.Vitality)
	assert.Equal(t, 4.0, total.Intelligence)

	d := Derive(c)
	assert.False(t, math.IsNaN(d.AttackPower))
	assert.Equal(t, 1.0, d.AttackPower)

	err = Validate(c)
	require.Error(t, err)
	var invalid *model.InvalidStatInputError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, err.Error(), "agility=-5")
	assert.Contains(t, err.Error(), "item w")
}

func TestValidate_CleanCharacter(t *testing.T) {
	c := model.NewCharacter("p1", "Hero", model.KindPlayer, 1, tens())
	assert.NoError(t, Validate(c))
}

func TestDerive_EquipmentSlotsFeedTheirFormulas(t *testing.T) {
	c := model.NewCharacter("p1", "Hero", model.KindPlayer, 1, model.PrimaryStats{})
	_, err := c.Equipment().Equip(model.NewItem("w", "Axe", model.SlotWeapon, model.ItemStats{
		Attack: 30, CriticalChance: 0.1, CriticalMultiplier: 0.5, AttackSpeed: 0.2,
		// armor-only bonuses on a weapon are not read
		Defense: 99, Health: 99,
	}))
	require.NoError(t, err)
	_, err = c.Equipment().Equip(model.NewItem("a", "Robe", model.SlotArmor, model.ItemStats{
		Defense: 8, Health: 40, DodgeChance: 0.1, BlockChance: 0.2,
		MovementSpeed: 0.3, DivineResistance: 0.25, PhysicalResistance: 0.15, MagicalResistance: 0.35,
	}))
	require.NoError(t, err)
	_, err = c.Equipment().Equip(model.NewItem("r", "Amulet", model.SlotAccessory, model.ItemStats{Mana: 70}))
	require.NoError(t, err)

	d := Derive(c)

	assert.InDelta(t, 30.0, d.AttackPower, 1e-9)
	assert.InDelta(t, 0.15, d.CriticalChance, 1e-9)
	assert.InDelta(t, 2.0, d.CriticalMultiplier, 1e-9)
	assert.InDelta(t, 1.2, d.AttackSpeed, 1e-9)
	assert.InDelta(t, 8.0, d.Defense, 1e-9)
	assert.InDelta(t, 140.0, d.MaxHealth, 1e-9)
	assert.InDelta(t, 0.15, d.DodgeChance, 1e-9)
	assert.InDelta(t, 0.2, d.BlockChance, 1e-9)
	assert.InDelta(t, 1.3, d.MovementSpeed, 1e-9)
	assert.InDelta(t, 0.25, d.DivineResistance, 1e-9)
	assert.InDelta(t, 0.15, d.PhysicalResistance, 1e-9)
	assert.InDelta(t, 0.35, d.MagicalResistance, 1e-9)
	assert.InDelta(t, 120.0, d.MaxMana, 1e-9)
}

func TestSpeedFactor_SlowsComposeIndependently(t *testing.T) {
	c := model.NewCharacter("e1", "Orc", model.KindEnemy, 1, model.PrimaryStats{Agility: 50})
	before := Derive(c).MovementSpeed

	c.AddStatusEffect(&model.StatusEffectInstance{ID: "s1", Remaining: 3, Effect: model.SlowEffect{Value: 0.2, Duration: 3}})
	c.AddStatusEffect(&model.StatusEffectInstance{ID: "s2", Remaining: 5, Effect: model.SlowEffect{Value: 0.5, Duration: 5}})
	assert.InDelta(t, 1.5*0.8*0.5, Derive(c).MovementSpeed, 1e-9)

	// Expiry order does not matter: removing the first restores exactly the other's factor.
	c.RemoveStatusEffect("s1")
	assert.InDelta(t, 1.5*0.5, Derive(c).MovementSpeed, 1e-9)

	c.RemoveStatusEffect("s2")
	assert.Equal(t, before, Derive(c).MovementSpeed)
}

func TestSpeedFactor_FullSlowClampsToFloor(t *testing.T) {
	c := model.NewCharacter("e1", "Orc", model.KindEnemy, 1, model.PrimaryStats{})
	c.AddStatusEffect(&model.StatusEffectInstance{ID: "s", Remaining: 1, Effect: model.SlowEffect{Value: 2}})

	assert.Equal(t, MinSpeed, Derive(c).MovementSpeed)
}

func TestRegenerate(t *testing.T) {
	c := model.NewCharacter("p1", "Hero", model.KindPlayer, 1, tens())
	Spawn(c)
	d := Derive(c)
	require.Equal(t, d.MaxHealth, c.Health())
	require.Equal(t, d.MaxMana, c.Mana())

	c.SetHealth(100, d.MaxHealth)
	c.SetMana(0, d.MaxMana)
	Regenerate(c, 2)

	assert.InDelta(t, 100+2*d.HealthRegeneration, c.Health(), 1e-9)
	assert.InDelta(t, 2*d.ManaRegeneration, c.Mana(), 1e-9)

	Regenerate(c, 1e6)
	assert.Equal(t, d.MaxHealth, c.Health())
	assert.Equal(t, d.MaxMana, c.Mana())

	c.SetHealth(0, d.MaxHealth)
	Regenerate(c, 10)
	assert.Equal(t, 0.0, c.Health(), "dead characters do not regenerate")
}

func TestSummarize(t *testing.T) {
	c := model.NewCharacter("p1", "Hero", model.KindPlayer, 7, tens())
	c.AddExperience(1500)

	s := Summarize(c)

	assert.Equal(t, tens(), s.Base)
	assert.Equal(t, TotalStats(c), s.Total)
	assert.Equal(t, Derive(c), s.Derived)
	assert.Equal(t, int32(7), s.Level)
	assert.Equal(t, int64(1500), s.Experience)
}
