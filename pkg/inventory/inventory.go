package inventory

import "fmt"

// DefaultMaxSlots is the default inventory capacity.
const DefaultMaxSlots = 10

// Healer receives healing from consumables. Satisfied by character.Character.
type Healer interface {
	Heal(amount int)
}

// Inventory is slot-limited item storage with equipment slots and gold.
// Key items live outside the slot limit.
type Inventory struct {
	Items    []*Item              `json:"items"`
	MaxSlots int                  `json:"max_slots"`
	Equipped map[EquipSlot]*Item  `json:"equipped"`
	Gold     int                  `json:"gold"`
	KeyItems []*Item              `json:"key_items,omitempty"`
}

// New creates an empty inventory.
func New(maxSlots int) *Inventory {
	if maxSlots <= 0 {
		maxSlots = DefaultMaxSlots
	}
	return &Inventory{
		MaxSlots: maxSlots,
		Equipped: map[EquipSlot]*Item{},
	}
}

// UsedSlots is the number of occupied inventory slots.
func (inv *Inventory) UsedSlots() int {
	return len(inv.Items)
}

// FreeSlots is the number of open inventory slots.
func (inv *Inventory) FreeSlots() int {
	return inv.MaxSlots - inv.UsedSlots()
}

// CanCarry reports whether there is room for another item.
func (inv *Inventory) CanCarry() bool {
	return inv.UsedSlots() < inv.MaxSlots
}

// AddItem stores an item. Key items always fit; others need a free slot.
func (inv *Inventory) AddItem(item *Item) bool {
	if item.IsKeyItem() {
		inv.KeyItems = append(inv.KeyItems, item)
		return true
	}
	if !inv.CanCarry() {
		return false
	}
	inv.Items = append(inv.Items, item)
	return true
}

// RemoveItem removes an item by id and returns it, or nil.
func (inv *Inventory) RemoveItem(itemID string) *Item {
	for i, item := range inv.Items {
		if item.ID == itemID {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return item
		}
	}
	for i, item := range inv.KeyItems {
		if item.ID == itemID {
			inv.KeyItems = append(inv.KeyItems[:i], inv.KeyItems[i+1:]...)
			return item
		}
	}
	return nil
}

// GetItem finds an item by id without removing it.
func (inv *Inventory) GetItem(itemID string) *Item {
	for _, item := range inv.Items {
		if item.ID == itemID {
			return item
		}
	}
	for _, item := range inv.KeyItems {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// HasItem reports whether the inventory contains an item.
func (inv *Inventory) HasItem(itemID string) bool {
	return inv.GetItem(itemID) != nil
}

// EquipItem equips an item from inventory, swapping out anything already in
// its slot. Reports whether the equip happened.
func (inv *Inventory) EquipItem(itemID string) bool {
	item := inv.GetItem(itemID)
	if item == nil || !item.IsEquippable() {
		return false
	}
	slot, ok := item.Slot()
	if !ok {
		return false
	}

	if current := inv.Equipped[slot]; current != nil {
		inv.Items = append(inv.Items, current)
	}

	inv.RemoveItem(itemID)
	if inv.Equipped == nil {
		inv.Equipped = map[EquipSlot]*Item{}
	}
	inv.Equipped[slot] = item
	return true
}

// UnequipItem moves a slot's item back into inventory. Returns nil when the
// slot is empty or there is no room.
func (inv *Inventory) UnequipItem(slot EquipSlot) *Item {
	item := inv.Equipped[slot]
	if item == nil {
		return nil
	}
	if !inv.CanCarry() {
		return nil
	}
	inv.Equipped[slot] = nil
	inv.Items = append(inv.Items, item)
	return item
}

// GetEquipped returns the item in a slot, or nil.
func (inv *Inventory) GetEquipped(slot EquipSlot) *Item {
	return inv.Equipped[slot]
}

// AddGold adds gold and returns the new total.
func (inv *Inventory) AddGold(amount int) int {
	inv.Gold += amount
	return inv.Gold
}

// SpendGold deducts gold if affordable. Reports whether the spend happened.
func (inv *Inventory) SpendGold(amount int) bool {
	if amount > inv.Gold {
		return false
	}
	inv.Gold -= amount
	return true
}

// CanAfford reports whether the inventory holds at least amount gold.
func (inv *Inventory) CanAfford(amount int) bool {
	return inv.Gold >= amount
}

// TotalEquipBonus sums the stat bonus of everything equipped.
func (inv *Inventory) TotalEquipBonus() int {
	total := 0
	for _, item := range inv.Equipped {
		if item != nil {
			total += item.EquipStatBonus
		}
	}
	return total
}

// UseItem consumes an item, applying its effect to the target when one is
// given. Returns a description of what happened.
func (inv *Inventory) UseItem(itemID string, target Healer) string {
	item := inv.GetItem(itemID)
	if item == nil {
		return "Item not found."
	}
	if !item.IsConsumable() {
		return fmt.Sprintf("%s cannot be used.", item.Name)
	}

	inv.RemoveItem(itemID)

	if target != nil && item.Effect != nil {
		effect := item.Effect
		if effect.Stat == "hp" {
			target.Heal(effect.Amount)
			if effect.Description != "" {
				return fmt.Sprintf("Used %s. %s", item.Name, effect.Description)
			}
			return fmt.Sprintf("Used %s. Restored %d HP.", item.Name, effect.Amount)
		}
		if effect.Description != "" {
			return fmt.Sprintf("Used %s. %s", item.Name, effect.Description)
		}
		return fmt.Sprintf("Used %s. +%d %s.", item.Name, effect.Amount, effect.Stat)
	}

	return fmt.Sprintf("Used %s.", item.Name)
}
