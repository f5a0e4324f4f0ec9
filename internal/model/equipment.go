package model

import (
	"errors"
	"fmt"
)

var (
	ErrItemEquipped = errors.New("item already equipped elsewhere")
	ErrWrongSlot    = errors.New("item does not fit slot")
)

// Equipment holds up to three slots: weapon, armor, accessory.
// The zero value is an empty loadout.
type Equipment struct {
	weapon    *Item
	armor     *Item
	accessory *Item
}

// Weapon returns the equipped weapon or nil.
func (e *Equipment) Weapon() *Item { return e.weapon }

// Armor returns the equipped armor or nil.
func (e *Equipment) Armor() *Item { return e.armor }

// Accessory returns the equipped accessory or nil.
func (e *Equipment) Accessory() *Item { return e.accessory }

// Get returns the item in slot or nil.
func (e *Equipment) Get(slot Slot) *Item {
	switch slot {
	case SlotWeapon:
		return e.weapon
	case SlotArmor:
		return e.armor
	case SlotAccessory:
		return e.accessory
	default:
		return nil
	}
}

// Equip puts item into its slot and returns the previously equipped item
// (released, may be nil). Equipping an item owned by another loadout fails.
func (e *Equipment) Equip(item *Item) (*Item, error) {
	if item == nil {
		return nil, fmt.Errorf("equip: nil item")
	}
	if item.owner != nil && item.owner != e {
		return nil, fmt.Errorf("equip %s: %w", item.ID, ErrItemEquipped)
	}
	if item.owner == e && e.Get(item.Slot) == item {
		return nil, nil
	}

	prev := e.Unequip(item.Slot)
	switch item.Slot {
	case SlotWeapon:
		e.weapon = item
	case SlotArmor:
		e.armor = item
	case SlotAccessory:
		e.accessory = item
	default:
		return prev, fmt.Errorf("equip %s into %s: %w", item.ID, item.Slot, ErrWrongSlot)
	}
	item.owner = e
	return prev, nil
}

// Unequip empties slot and returns the released item (nil if empty).
func (e *Equipment) Unequip(slot Slot) *Item {
	var prev *Item
	switch slot {
	case SlotWeapon:
		prev, e.weapon = e.weapon, nil
	case SlotArmor:
		prev, e.armor = e.armor, nil
	case SlotAccessory:
		prev, e.accessory = e.accessory, nil
	}
	if prev != nil {
		prev.owner = nil
	}
	return prev
}

// Items returns equipped items in aggregation order: weapon, armor, accessory.
func (e *Equipment) Items() []*Item {
	items := make([]*Item, 0, 3)
	for _, it := range []*Item{e.weapon, e.armor, e.accessory} {
		if it != nil {
			items = append(items, it)
		}
	}
	return items
}

// WeaponStats returns weapon bonuses or zero when no weapon is equipped.
func (e *Equipment) WeaponStats() ItemStats { return slotStats(e.weapon) }

// ArmorStats returns armor bonuses or zero when no armor is equipped.
func (e *Equipment) ArmorStats() ItemStats { return slotStats(e.armor) }

// AccessoryStats returns accessory bonuses or zero when nothing is equipped.
func (e *Equipment) AccessoryStats() ItemStats { return slotStats(e.accessory) }

func slotStats(it *Item) ItemStats {
	if it == nil {
		return ItemStats{}
	}
	return it.Stats.Sanitize()
}
