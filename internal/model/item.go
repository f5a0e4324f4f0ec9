package model

import "fmt"

// Slot identifies an equipment slot.
type Slot int8

const (
	SlotWeapon Slot = iota
	SlotArmor
	SlotAccessory
)

// String returns human-readable slot name.
func (s Slot) String() string {
	switch s {
	case SlotWeapon:
		return "weapon"
	case SlotArmor:
		return "armor"
	case SlotAccessory:
		return "accessory"
	default:
		return "unknown"
	}
}

// ParseSlot converts a slot name to Slot.
func ParseSlot(name string) (Slot, error) {
	switch name {
	case "weapon":
		return SlotWeapon, nil
	case "armor":
		return SlotArmor, nil
	case "accessory":
		return SlotAccessory, nil
	default:
		return 0, fmt.Errorf("unknown equipment slot %q", name)
	}
}

// ItemStats is the fixed bonus record an item grants while equipped.
// Primary stats feed the total-stat aggregation; the rest feed derived formulas.
type ItemStats struct {
	PrimaryStats `yaml:",inline"`

	Attack             float64 `yaml:"attack"`
	Defense            float64 `yaml:"defense"`
	Health             float64 `yaml:"health"`
	Mana               float64 `yaml:"mana"`
	CriticalChance     float64 `yaml:"critical_chance"`
	CriticalMultiplier float64 `yaml:"critical_multiplier"`
	DodgeChance        float64 `yaml:"dodge_chance"`
	BlockChance        float64 `yaml:"block_chance"`
	MovementSpeed      float64 `yaml:"movement_speed"`
	AttackSpeed        float64 `yaml:"attack_speed"`
	DivineResistance   float64 `yaml:"divine_resistance"`
	PhysicalResistance float64 `yaml:"physical_resistance"`
	MagicalResistance  float64 `yaml:"magical_resistance"`
}

// Sanitize replaces negative and non-finite bonuses with 0.
func (s ItemStats) Sanitize() ItemStats {
	return ItemStats{
		PrimaryStats:       s.PrimaryStats.Sanitize(),
		Attack:             nonNegative(s.Attack),
		Defense:            nonNegative(s.Defense),
		Health:             nonNegative(s.Health),
		Mana:               nonNegative(s.Mana),
		CriticalChance:     nonNegative(s.CriticalChance),
		CriticalMultiplier: nonNegative(s.CriticalMultiplier),
		DodgeChance:        nonNegative(s.DodgeChance),
		BlockChance:        nonNegative(s.BlockChance),
		MovementSpeed:      nonNegative(s.MovementSpeed),
		AttackSpeed:        nonNegative(s.AttackSpeed),
		DivineResistance:   nonNegative(s.DivineResistance),
		PhysicalResistance: nonNegative(s.PhysicalResistance),
		MagicalResistance:  nonNegative(s.MagicalResistance),
	}
}

// Validate returns *InvalidStatInputError if any bonus is negative or non-finite.
func (s ItemStats) Validate(source string) error {
	var bad []string
	if err := s.PrimaryStats.Validate(source); err != nil {
		bad = append(bad, err.(*InvalidStatInputError).Fields...)
	}
	check := func(name string, v float64) {
		if !validValue(v) {
			bad = append(bad, fmt.Sprintf("%s=%v", name, v))
		}
	}
	check("attack", s.Attack)
	check("defense", s.Defense)
	check("health", s.Health)
	check("mana", s.Mana)
	check("criticalChance", s.CriticalChance)
	check("criticalMultiplier", s.CriticalMultiplier)
	check("dodgeChance", s.DodgeChance)
	check("blockChance", s.BlockChance)
	check("movementSpeed", s.MovementSpeed)
	check("attackSpeed", s.AttackSpeed)
	check("divineResistance", s.DivineResistance)
	check("physicalResistance", s.PhysicalResistance)
	check("magicalResistance", s.MagicalResistance)

	if len(bad) == 0 {
		return nil
	}
	return &InvalidStatInputError{Source: source, Fields: bad}
}

// Item — конкретный предмет экипировки.
// An item is owned by at most one Equipment slot at a time.
type Item struct {
	ID          string
	Name        string
	Slot        Slot
	Level       int32
	Stats       ItemStats
	GemSlots    int32
	LinkedSlots []int32

	owner *Equipment
}

// NewItem creates an unequipped item.
func NewItem(id, name string, slot Slot, stats ItemStats) *Item {
	return &Item{
		ID:    id,
		Name:  name,
		Slot:  slot,
		Stats: stats,
	}
}

// IsEquipped reports whether the item currently sits in an equipment slot.
func (it *Item) IsEquipped() bool {
	return it.owner != nil
}
