package world

import (
	"fmt"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/emberwild/worldcore/internal/core/event"
	"github.com/emberwild/worldcore/internal/spatial"
	"go.uber.org/zap"
)

// DestroyEntity runs the destroy transaction for id and returns the item
// entities spawned as loot or spilled from its inventory.
//
//  1. resolve the last known box (ErrMissingSpatialState aborts here)
//  2. roll loot and spawn drops around the box centre, spill held items
//  3. drop the spatial index entry
//  4. reset every Focus pointing at id
//  5. release the handle
//
// A carried item has no world presence; destroying it only clears its
// inventory slot.
func (s *State) DestroyEntity(id ecs.EntityID) ([]ecs.EntityID, error) {
	if !s.ECS.Alive(id) {
		return nil, fmt.Errorf("destroy %s: %w", id, ecs.ErrUnknownEntity)
	}
	ident, ok := s.Identities.Get(id)
	if !ok {
		return nil, fmt.Errorf("destroy %s: %w", id, ErrMissingSpatialState)
	}
	name := s.EntityName(id)

	if s.Carried.Has(id) {
		s.detachFromHolder(id)
		s.clearFocusOn(id)
		delete(s.pendingDestroy, id)
		if err := s.ECS.ReleaseEntity(id); err != nil {
			return nil, fmt.Errorf("destroy %s: %w", id, err)
		}
		event.Emit(s.bus, event.EntityRemoved{EntityID: id})
		s.log.Debug("carried item destroyed", zap.String("entity", name))
		return nil, nil
	}

	box, ok := s.lastKnownBox(id)
	if !ok {
		return nil, fmt.Errorf("destroy %s: %w", name, ErrMissingSpatialState)
	}

	var spawned []ecs.EntityID
	for _, itemID := range s.loot.Roll(ident.TypeID, s.rng) {
		x, y := s.dropPoint(box, itemID)
		drop, err := s.CreateEntity(component.KindItem, x, y, itemID)
		if err != nil {
			s.log.Error("spawn drop", zap.String("from", name), zap.String("item", itemID), zap.Error(err))
			continue
		}
		spawned = append(spawned, drop)
	}
	spawned = append(spawned, s.spillInventory(id, box)...)

	s.leaveWorld(id)
	delete(s.pendingDestroy, id)
	if err := s.ECS.ReleaseEntity(id); err != nil {
		return spawned, fmt.Errorf("destroy %s: %w", name, err)
	}
	event.Emit(s.bus, event.EntityRemoved{EntityID: id})

	s.log.Info("entity destroyed",
		zap.String("entity", name),
		zap.Int("drops", len(spawned)),
	)
	return spawned, nil
}

// MarkForDestruction queues an EntityDestroyed event for id unless one is
// already pending. Returns true if an event was emitted.
func (s *State) MarkForDestruction(id ecs.EntityID) bool {
	if !s.ECS.Alive(id) {
		return false
	}
	if _, pending := s.pendingDestroy[id]; pending {
		return false
	}
	s.pendingDestroy[id] = struct{}{}
	event.Emit(s.bus, event.EntityDestroyed{EntityID: id})
	s.verbose("entity marked for destruction", zap.Stringer("entity", id))
	return true
}

// lastKnownBox prefers the index entry and falls back to the position and
// type dimensions of movers that were pulled out of the index.
func (s *State) lastKnownBox(id ecs.EntityID) (spatial.Box, bool) {
	if e, ok := s.Index.Get(id); ok {
		return e.Box, true
	}
	pos, ok := s.Positions.Get(id)
	if !ok {
		return spatial.Box{}, false
	}
	w, h := s.dimensions(id)
	return spatial.BoxAt(pos.X, pos.Y, w, h), true
}

// dropPoint picks the top-left corner for an item of itemID whose centre
// lies uniformly within the spread square around the centre of from. The
// result keeps the whole item inside the world.
func (s *State) dropPoint(from spatial.Box, itemID string) (float64, float64) {
	w, h := s.opts.CellSize, s.opts.CellSize
	if t := s.types.Get(itemID); t != nil {
		w, h = t.Width, t.Height
	}
	if pw, ph, ok := s.presenter.Dimensions(itemID); ok {
		w, h = pw, ph
	}
	r := s.opts.SpreadRadius
	cx, cy := from.Center()
	x := cx + (s.rng.Float64()*2-1)*r - w/2
	y := cy + (s.rng.Float64()*2-1)*r - h/2
	return clamp(x, 0, s.opts.Width()-w), clamp(y, 0, s.opts.Height()-h)
}

// spillInventory puts every item held by id back into the world around box.
func (s *State) spillInventory(id ecs.EntityID, box spatial.Box) []ecs.EntityID {
	inv, ok := s.Inventories.Get(id)
	if !ok {
		return nil
	}
	var out []ecs.EntityID
	for _, item := range inv.Items() {
		s.detachFromHolder(item)
		ident, _ := s.Identities.Get(item)
		typeID := ""
		if ident != nil {
			typeID = ident.TypeID
		}
		x, y := s.dropPoint(box, typeID)
		if err := s.enterWorld(item, x, y); err != nil {
			s.log.Error("spill held item", zap.Stringer("holder", id), zap.Stringer("item", item), zap.Error(err))
			continue
		}
		out = append(out, item)
	}
	return out
}

// detachFromHolder clears the inventory slot holding item, if any.
func (s *State) detachFromHolder(item ecs.EntityID) {
	c, ok := s.Carried.Get(item)
	if !ok {
		return
	}
	if inv, ok := s.Inventories.Get(c.Holder); ok && inv.Slots[c.Slot] == item {
		inv.Slots[c.Slot] = ecs.NullEntity
	}
	s.Carried.Remove(item)
}

// clearFocusOn resets every Focus targeting id. Linear in the number of
// focus-capable entities.
func (s *State) clearFocusOn(id ecs.EntityID) {
	s.Foci.Each(func(holder ecs.EntityID, f *component.Focus) {
		if f.Target == id {
			f.Clear()
			s.verbose("focus cleared", zap.Stringer("holder", holder), zap.Stringer("target", id))
		}
	})
}

// dimensions returns the width and height id was built with.
func (s *State) dimensions(id ecs.EntityID) (float64, float64) {
	if c, ok := s.Colliders.Get(id); ok {
		return c.Width(), c.Height()
	}
	t := s.TypeOf(id)
	if t == nil {
		return s.opts.CellSize, s.opts.CellSize
	}
	if w, h, ok := s.presenter.Dimensions(t.ID); ok {
		return w, h
	}
	return t.Width, t.Height
}
