package world

import (
	"fmt"
	"strings"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/emberwild/worldcore/internal/core/event"
	"go.uber.org/zap"
)

// AddToInventory moves item from the world into holder's first empty slot,
// creating the inventory on first use. Ineligible items are skipped with a
// warning and a full inventory leaves the item where it is; neither is an
// error. Returns true when the item was stored.
func (s *State) AddToInventory(holder, item ecs.EntityID) (bool, error) {
	if !s.ECS.Alive(holder) {
		return false, fmt.Errorf("add to inventory: holder %s: %w", holder, ecs.ErrUnknownEntity)
	}
	if !s.ECS.Alive(item) {
		return false, fmt.Errorf("add to inventory: item %s: %w", item, ecs.ErrUnknownEntity)
	}
	if holder == item || s.Carried.Has(item) {
		s.log.Warn("pickup skipped",
			zap.String("holder", s.EntityName(holder)),
			zap.String("item", s.EntityName(item)),
			zap.Error(ErrPickupIneligible),
		)
		return false, nil
	}
	if t := s.TypeOf(item); t == nil || !t.Pickup || t.Kind() != component.KindItem {
		s.log.Warn("pickup skipped",
			zap.String("holder", s.EntityName(holder)),
			zap.String("item", s.EntityName(item)),
			zap.Error(ErrPickupIneligible),
		)
		return false, nil
	}

	inv, ok := s.Inventories.Get(holder)
	if !ok {
		inv = &component.Inventory{}
		if err := s.Inventories.Add(holder, inv); err != nil {
			return false, err
		}
	}
	slot := inv.FirstEmpty()
	if slot < 0 {
		s.log.Debug("pickup skipped",
			zap.String("holder", s.EntityName(holder)),
			zap.Error(ErrInventoryFull),
		)
		return false, nil
	}

	if err := s.Carried.Add(item, &component.Carried{Holder: holder, Slot: slot}); err != nil {
		return false, err
	}
	inv.Slots[slot] = item
	s.leaveWorld(item)

	event.Emit(s.bus, event.ItemPickedUp{HolderID: holder, ItemID: item})
	s.log.Info("item picked up",
		zap.String("holder", s.EntityName(holder)),
		zap.String("item", s.EntityName(item)),
		zap.Int("slot", slot),
	)
	return true, nil
}

// PickupFocused picks up whatever holder is currently focused on.
func (s *State) PickupFocused(holder ecs.EntityID) (bool, error) {
	f, ok := s.Foci.Get(holder)
	if !ok || !f.Focused() {
		s.verbose("pickup requested without focus", zap.Stringer("holder", holder))
		return false, nil
	}
	return s.AddToInventory(holder, f.Target)
}

// GetInventory returns a copy of holder's slots. ok is false when the
// holder has never held anything.
func (s *State) GetInventory(holder ecs.EntityID) ([component.InventoryCapacity]ecs.EntityID, bool) {
	inv, ok := s.Inventories.Get(holder)
	if !ok {
		return [component.InventoryCapacity]ecs.EntityID{}, false
	}
	return inv.Slots, true
}

// DropItem takes the item out of holder's slot and places it back into the
// world at the holder's feet. The slot is left untouched when placement fails.
func (s *State) DropItem(holder ecs.EntityID, slot int) (ecs.EntityID, error) {
	if !s.ECS.Alive(holder) {
		return ecs.NullEntity, fmt.Errorf("drop: holder %s: %w", holder, ecs.ErrUnknownEntity)
	}
	inv, ok := s.Inventories.Get(holder)
	if !ok || slot < 0 || slot >= component.InventoryCapacity || inv.Slots[slot].IsZero() {
		return ecs.NullEntity, fmt.Errorf("drop %s slot %d: %w", holder, slot, ErrEmptySlot)
	}
	item := inv.Slots[slot]
	box, ok := s.lastKnownBox(holder)
	if !ok {
		return ecs.NullEntity, fmt.Errorf("drop %s: %w", holder, ErrMissingSpatialState)
	}

	w, h := s.dimensions(item)
	cx, cy := box.Center()
	x := clamp(cx-w/2, 0, s.opts.Width()-w)
	y := clamp(cy-h/2, 0, s.opts.Height()-h)
	if err := s.enterWorld(item, x, y); err != nil {
		return ecs.NullEntity, fmt.Errorf("drop %s slot %d: %w", holder, slot, err)
	}
	s.detachFromHolder(item)
	s.log.Info("item dropped", zap.String("holder", s.EntityName(holder)), zap.String("item", s.EntityName(item)))
	return item, nil
}

// ListInventory renders holder's occupied slots, one per line.
func (s *State) ListInventory(holder ecs.EntityID) string {
	inv, ok := s.Inventories.Get(holder)
	if !ok || inv.Count() == 0 {
		return "(empty)"
	}
	var b strings.Builder
	for i, item := range inv.Slots {
		if item.IsZero() {
			continue
		}
		fmt.Fprintf(&b, "%3d  %s\n", i, s.EntityName(item))
	}
	return b.String()
}
