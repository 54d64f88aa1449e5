package component

import "github.com/emberwild/worldcore/internal/core/ecs"

// InventoryCapacity is the fixed number of slots per inventory.
const InventoryCapacity = 256

// Inventory is a fixed-capacity ordered slot sequence. ecs.NullEntity marks
// an empty slot. An item appears in at most one slot across all inventories.
type Inventory struct {
	Slots [InventoryCapacity]ecs.EntityID
}

// FirstEmpty returns the lowest empty slot index, or -1 when full.
func (inv *Inventory) FirstEmpty() int {
	for i, s := range inv.Slots {
		if s.IsZero() {
			return i
		}
	}
	return -1
}

// IndexOf returns the slot holding item, or -1.
func (inv *Inventory) IndexOf(item ecs.EntityID) int {
	if item.IsZero() {
		return -1
	}
	for i, s := range inv.Slots {
		if s == item {
			return i
		}
	}
	return -1
}

// Count returns the number of occupied slots.
func (inv *Inventory) Count() int {
	n := 0
	for _, s := range inv.Slots {
		if !s.IsZero() {
			n++
		}
	}
	return n
}

// Items returns the occupied slots in slot order.
func (inv *Inventory) Items() []ecs.EntityID {
	out := make([]ecs.EntityID, 0, 8)
	for _, s := range inv.Slots {
		if !s.IsZero() {
			out = append(out, s)
		}
	}
	return out
}

// Carried marks an item that currently sits in Holder's inventory.
type Carried struct {
	Holder ecs.EntityID
	Slot   int
}
