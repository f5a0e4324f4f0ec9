package stats

import "github.com/udisondev/galaxies/internal/model"

// Summary is a read-only snapshot for character sheets and combat UIs.
type Summary struct {
	Base       model.PrimaryStats
	Total      model.PrimaryStats
	Derived    DerivedStats
	Level      int32
	Experience int64
}

// Summarize builds a Summary for c.
func Summarize(c *model.Character) Summary {
	return Summary{
		Base:       c.BaseStats(),
		Total:      TotalStats(c),
		Derived:    Derive(c),
		Level:      c.Level(),
		Experience: c.Experience(),
	}
}

// Spawn fills health and mana to their derived maxima.
func Spawn(c *model.Character) {
	d := Derive(c)
	c.SetHealth(d.MaxHealth, d.MaxHealth)
	c.SetMana(d.MaxMana, d.MaxMana)
}

// Regenerate restores health and mana for dt time units, clamped to maxima.
// Dead characters do not regenerate.
func Regenerate(c *model.Character, dt float64) {
	if dt <= 0 || c.IsDead() {
		return
	}
	d := Derive(c)
	c.SetHealth(c.Health()+d.HealthRegeneration*dt, d.MaxHealth)
	c.SetMana(c.Mana()+d.ManaRegeneration*dt, d.MaxMana)
}
