package world

import (
	"fmt"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/emberwild/worldcore/internal/data"
	"github.com/emberwild/worldcore/internal/spatial"
	"go.uber.org/zap"
)

// CreateEntity allocates a handle for typeID at (x, y), attaches the
// component set for kind and indexes its collider.
//
//	creature:     Identity, Position, Velocity, Focus, Collider, Health (if typed)
//	item:         Identity, Collider
//	staticObject: Identity, Collider, Health (if typed)
func (s *State) CreateEntity(kind component.Kind, x, y float64, typeID string) (ecs.EntityID, error) {
	t := s.types.Get(typeID)
	if t == nil {
		return ecs.NullEntity, fmt.Errorf("create %s %q: %w", kind, typeID, ErrUnknownType)
	}
	if t.Kind() != kind {
		return ecs.NullEntity, fmt.Errorf("create %s %q (type is %s): %w", kind, typeID, t.Kind(), ErrKindMismatch)
	}

	w, h := t.Width, t.Height
	if pw, ph, ok := s.presenter.Dimensions(typeID); ok {
		w, h = pw, ph
	}

	id := s.ECS.CreateEntity()
	if err := s.attach(id, kind, t, x, y, w, h); err != nil {
		// roll back so a half-built entity never stays live
		s.Index.Remove(id, nil)
		_ = s.ECS.ReleaseEntity(id)
		return ecs.NullEntity, fmt.Errorf("create %s %q: %w", kind, typeID, err)
	}

	s.verbose("entity created",
		zap.Stringer("entity", id),
		zap.Stringer("kind", kind),
		zap.String("type", typeID),
		zap.Float64("x", x),
		zap.Float64("y", y),
	)
	return id, nil
}

func (s *State) attach(id ecs.EntityID, kind component.Kind, t *data.EntityType, x, y, w, h float64) error {
	if err := s.Identities.Add(id, &component.Identity{Kind: kind, TypeID: t.ID, Category: t.Category}); err != nil {
		return err
	}

	if kind == component.KindCreature {
		speed := t.Speed
		if speed <= 0 {
			speed = s.opts.DefaultSpeed
		}
		if err := s.Positions.Add(id, &component.Position{X: x, Y: y}); err != nil {
			return err
		}
		if err := s.Velocities.Add(id, &component.Velocity{Speed: speed, Facing: component.DirDown}); err != nil {
			return err
		}
		if err := s.Foci.Add(id, &component.Focus{}); err != nil {
			return err
		}
	}

	if t.Health > 0 && kind != component.KindItem {
		if err := s.Healths.Add(id, &component.Health{Current: t.Health, Max: t.Health}); err != nil {
			return err
		}
	}

	box := spatial.BoxAt(x, y, w, h)
	col := &component.Collider{Exempt: t.Exempt, CollisionModifier: t.CollisionModifier}
	col.SetBox(box)
	if err := s.Colliders.Add(id, col); err != nil {
		return err
	}
	if err := s.Index.Insert(spatial.Entry{Entity: id, Box: box}); err != nil {
		return err
	}

	handle := s.presenter.CreateVisual(kind, x, y, t.ID)
	return s.Visuals.Add(id, &component.Visual{Handle: handle})
}

// ReleaseEntity detaches every component, drops the spatial index entry and
// returns the handle to the pool. Items held in the entity's inventory are
// released with it. Releasing a stale handle yields ecs.ErrDoubleRelease and
// changes nothing.
func (s *State) ReleaseEntity(kind component.Kind, id ecs.EntityID) error {
	if !s.ECS.Alive(id) {
		return s.ECS.ReleaseEntity(id)
	}
	if ident, ok := s.Identities.Get(id); ok && ident.Kind != kind {
		return fmt.Errorf("release %s as %s (is %s): %w", id, kind, ident.Kind, ErrKindMismatch)
	}

	if inv, ok := s.Inventories.Get(id); ok {
		for _, item := range inv.Items() {
			kind := component.KindItem
			if ident, ok := s.Identities.Get(item); ok {
				kind = ident.Kind
			}
			if err := s.ReleaseEntity(kind, item); err != nil {
				s.log.Error("release held item", zap.Stringer("holder", id), zap.Stringer("item", item), zap.Error(err))
			}
		}
	}
	s.detachFromHolder(id)
	s.leaveWorld(id)
	delete(s.pendingDestroy, id)

	if err := s.ECS.ReleaseEntity(id); err != nil {
		return err
	}
	s.verbose("entity released", zap.Stringer("entity", id), zap.Stringer("kind", kind))
	return nil
}

// leaveWorld removes every trace of id from the world's shared structures:
// the spatial index entry, the collider, the visual, and any focus on it.
// The handle itself stays live.
func (s *State) leaveWorld(id ecs.EntityID) {
	s.Index.Remove(id, func(e spatial.Entry) bool { return e.Entity == id })
	s.Colliders.Remove(id)
	if s.Visuals.Has(id) {
		s.presenter.RemoveVisual(id)
		s.Visuals.Remove(id)
	}
	s.clearFocusOn(id)
}

// enterWorld gives a live entity a collider at (x, y) and indexes it.
func (s *State) enterWorld(id ecs.EntityID, x, y float64) error {
	ident, ok := s.Identities.Get(id)
	if !ok {
		return fmt.Errorf("enter world %s: %w", id, ecs.ErrUnknownEntity)
	}
	t := s.types.Get(ident.TypeID)
	if t == nil {
		return fmt.Errorf("enter world %s %q: %w", id, ident.TypeID, ErrUnknownType)
	}
	w, h := t.Width, t.Height
	if pw, ph, ok := s.presenter.Dimensions(t.ID); ok {
		w, h = pw, ph
	}
	box := spatial.BoxAt(x, y, w, h)
	col := &component.Collider{Exempt: t.Exempt, CollisionModifier: t.CollisionModifier}
	col.SetBox(box)
	if err := s.Colliders.Add(id, col); err != nil {
		return err
	}
	if err := s.Index.Insert(spatial.Entry{Entity: id, Box: box}); err != nil {
		s.Colliders.Remove(id)
		return err
	}
	if pos, ok := s.Positions.Get(id); ok {
		pos.X, pos.Y = x, y
	}
	handle := s.presenter.CreateVisual(ident.Kind, x, y, t.ID)
	return s.Visuals.Add(id, &component.Visual{Handle: handle})
}

// ObjectByEntity returns the spatial index entry of id.
func (s *State) ObjectByEntity(id ecs.EntityID) (spatial.Entry, bool) {
	return s.Index.Get(id)
}

// Collider returns id's collider, failing with ecs.ErrUnknownEntity for
// handles that are not live and ErrNotInWorld for carried entities.
func (s *State) Collider(id ecs.EntityID) (*component.Collider, error) {
	if !s.ECS.Alive(id) {
		return nil, fmt.Errorf("collider %s: %w", id, ecs.ErrUnknownEntity)
	}
	c, ok := s.Colliders.Get(id)
	if !ok {
		return nil, fmt.Errorf("collider %s: %w", id, ErrNotInWorld)
	}
	return c, nil
}
