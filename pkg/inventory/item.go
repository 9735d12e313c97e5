package inventory

import "github.com/google/uuid"

// ItemType is the closed set of item kinds.
type ItemType string

const (
	TypeWeapon     ItemType = "weapon"
	TypeArmor      ItemType = "armor"
	TypeAccessory  ItemType = "accessory"
	TypeConsumable ItemType = "consumable"
	TypeKey        ItemType = "key"
	TypeMisc       ItemType = "misc"
)

func (t ItemType) IsValid() bool {
	switch t {
	case TypeWeapon, TypeArmor, TypeAccessory, TypeConsumable, TypeKey, TypeMisc:
		return true
	}
	return false
}

// EquipSlot is an equipment slot.
type EquipSlot string

const (
	SlotWeapon    EquipSlot = "weapon"
	SlotArmor     EquipSlot = "armor"
	SlotAccessory EquipSlot = "accessory"
)

// Effect is what happens when a consumable is used.
type Effect struct {
	Stat        string `json:"stat"` // "hp", "might", "wit", "spirit"
	Amount      int    `json:"amount"`
	Duration    int    `json:"duration"` // 0 = instant, >0 = turns
	Description string `json:"description,omitempty"`
}

// Item is a thing the player can carry, equip or use.
type Item struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Type           ItemType `json:"item_type"`
	Value          int      `json:"value"` // gold value
	Effect         *Effect  `json:"effect,omitempty"`
	EquipStatBonus int      `json:"equip_stat_bonus,omitempty"`
}

// NewItem creates an item with a fresh id.
func NewItem(name string, itemType ItemType, value int) *Item {
	return &Item{
		ID:    uuid.NewString(),
		Name:  name,
		Type:  itemType,
		Value: value,
	}
}

// IsEquippable reports whether the item goes in an equipment slot.
func (i *Item) IsEquippable() bool {
	switch i.Type {
	case TypeWeapon, TypeArmor, TypeAccessory:
		return true
	}
	return false
}

// IsConsumable reports whether the item is used up on use.
func (i *Item) IsConsumable() bool {
	return i.Type == TypeConsumable
}

// IsKeyItem reports whether the item bypasses inventory slots.
func (i *Item) IsKeyItem() bool {
	return i.Type == TypeKey
}

// Slot returns the equipment slot this item fits, if any.
func (i *Item) Slot() (EquipSlot, bool) {
	switch i.Type {
	case TypeWeapon:
		return SlotWeapon, true
	case TypeArmor:
		return SlotArmor, true
	case TypeAccessory:
		return SlotAccessory, true
	}
	return "", false
}
