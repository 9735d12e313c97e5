package inventory

import (
	"strings"
	"testing"
)

type fakeHealer struct {
	healed int
}

func (f *fakeHealer) Heal(amount int) {
	f.healed += amount
}

func TestAddItemSlotLimit(t *testing.T) {
	inv := New(2)

	if !inv.AddItem(NewItem("Sword", TypeWeapon, 10)) {
		t.Fatal("expected first add to succeed")
	}
	if !inv.AddItem(NewItem("Shield", TypeArmor, 8)) {
		t.Fatal("expected second add to succeed")
	}
	if inv.AddItem(NewItem("Rock", TypeMisc, 0)) {
		t.Error("expected add past capacity to fail")
	}
	if inv.FreeSlots() != 0 {
		t.Errorf("FreeSlots = %d, want 0", inv.FreeSlots())
	}
}

func TestKeyItemsBypassSlots(t *testing.T) {
	inv := New(1)
	inv.AddItem(NewItem("Sword", TypeWeapon, 10))

	key := NewItem("Rusty Key", TypeKey, 0)
	if !inv.AddItem(key) {
		t.Fatal("expected key item to bypass slot limit")
	}
	if inv.UsedSlots() != 1 {
		t.Errorf("UsedSlots = %d, want 1 (key items do not occupy slots)", inv.UsedSlots())
	}
	if !inv.HasItem(key.ID) {
		t.Error("expected key item to be findable by id")
	}
}

func TestRemoveItem(t *testing.T) {
	inv := New(5)
	item := NewItem("Potion", TypeConsumable, 5)
	inv.AddItem(item)

	got := inv.RemoveItem(item.ID)
	if got == nil || got.ID != item.ID {
		t.Fatalf("RemoveItem returned %v, want %s", got, item.ID)
	}
	if inv.HasItem(item.ID) {
		t.Error("item still present after removal")
	}
	if inv.RemoveItem("nope") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestEquipSwapsCurrent(t *testing.T) {
	inv := New(5)
	old := NewItem("Rusty Sword", TypeWeapon, 2)
	shiny := NewItem("Shiny Sword", TypeWeapon, 20)
	inv.AddItem(old)
	inv.AddItem(shiny)

	if !inv.EquipItem(old.ID) {
		t.Fatal("expected equip to succeed")
	}
	if !inv.EquipItem(shiny.ID) {
		t.Fatal("expected second equip to succeed")
	}

	if got := inv.GetEquipped(SlotWeapon); got == nil || got.ID != shiny.ID {
		t.Errorf("equipped weapon = %v, want %s", got, shiny.ID)
	}
	if !inv.HasItem(old.ID) {
		t.Error("swapped-out item should be back in inventory")
	}
}

func TestEquipRejectsNonEquippable(t *testing.T) {
	inv := New(5)
	potion := NewItem("Potion", TypeConsumable, 5)
	inv.AddItem(potion)

	if inv.EquipItem(potion.ID) {
		t.Error("expected equip of consumable to fail")
	}
	if inv.EquipItem("missing") {
		t.Error("expected equip of unknown id to fail")
	}
}

func TestUnequipNeedsRoom(t *testing.T) {
	inv := New(1)
	sword := NewItem("Sword", TypeWeapon, 10)
	inv.AddItem(sword)
	inv.EquipItem(sword.ID)

	inv.AddItem(NewItem("Rock", TypeMisc, 0))

	if got := inv.UnequipItem(SlotWeapon); got != nil {
		t.Error("expected unequip to fail with no free slot")
	}
	if inv.GetEquipped(SlotWeapon) == nil {
		t.Error("item should remain equipped after failed unequip")
	}

	inv2 := New(2)
	inv2.AddItem(sword)
	inv2.EquipItem(sword.ID)
	if got := inv2.UnequipItem(SlotWeapon); got == nil || got.ID != sword.ID {
		t.Errorf("UnequipItem = %v, want %s", got, sword.ID)
	}
	if inv2.GetEquipped(SlotWeapon) != nil {
		t.Error("slot should be empty after unequip")
	}
}

func TestGold(t *testing.T) {
	inv := New(5)
	inv.AddGold(100)

	if !inv.CanAfford(100) {
		t.Error("expected to afford 100")
	}
	if inv.CanAfford(101) {
		t.Error("did not expect to afford 101")
	}
	if !inv.SpendGold(60) {
		t.Fatal("expected spend to succeed")
	}
	if inv.SpendGold(50) {
		t.Error("expected overspend to fail")
	}
	if inv.Gold != 40 {
		t.Errorf("Gold = %d, want 40", inv.Gold)
	}
}

func TestTotalEquipBonus(t *testing.T) {
	inv := New(5)
	sword := NewItem("Sword", TypeWeapon, 10)
	sword.EquipStatBonus = 2
	ring := NewItem("Ring", TypeAccessory, 30)
	ring.EquipStatBonus = 1
	inv.AddItem(sword)
	inv.AddItem(ring)
	inv.EquipItem(sword.ID)
	inv.EquipItem(ring.ID)

	if got := inv.TotalEquipBonus(); got != 3 {
		t.Errorf("TotalEquipBonus = %d, want 3", got)
	}
}

func TestUseItem(t *testing.T) {
	inv := New(5)
	potion := NewItem("Healing Potion", TypeConsumable, 5)
	potion.Effect = &Effect{Stat: "hp", Amount: 1}
	inv.AddItem(potion)

	target := &fakeHealer{}
	msg := inv.UseItem(potion.ID, target)
	if !strings.Contains(msg, "Used Healing Potion") {
		t.Errorf("unexpected message %q", msg)
	}
	if target.healed != 1 {
		t.Errorf("healed = %d, want 1", target.healed)
	}
	if inv.HasItem(potion.ID) {
		t.Error("consumable should be removed after use")
	}

	if msg := inv.UseItem("missing", target); msg != "Item not found." {
		t.Errorf("message for missing item = %q", msg)
	}

	sword := NewItem("Sword", TypeWeapon, 10)
	inv.AddItem(sword)
	if msg := inv.UseItem(sword.ID, target); !strings.Contains(msg, "cannot be used") {
		t.Errorf("message for non-consumable = %q", msg)
	}
	if !inv.HasItem(sword.ID) {
		t.Error("non-consumable should not be removed")
	}
}
