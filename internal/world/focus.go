package world

import (
	"fmt"
	"math"

	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/emberwild/worldcore/internal/spatial"
	"go.uber.org/zap"
)

// FindFocusTarget returns the nearest interactable entity within focus range
// of holder and inside the cone ahead of its facing. Ties go to the lower
// handle so selection does not depend on index order. Returns NullEntity
// when nothing qualifies.
func (s *State) FindFocusTarget(holder ecs.EntityID) ecs.EntityID {
	box, ok := s.lastKnownBox(holder)
	if !ok {
		return ecs.NullEntity
	}
	fx, fy := 0.0, 1.0
	if vel, ok := s.Velocities.Get(holder); ok {
		fx, fy = vel.Facing.Unit()
	}
	hx, hy := box.Center()
	halfCone := s.opts.FocusCone / 2 * math.Pi / 180

	best := ecs.NullEntity
	bestDist := math.Inf(1)
	for _, e := range s.Index.Search(box.Expand(s.opts.FocusRange)) {
		if e.Entity == holder || !s.ECS.Alive(e.Entity) || s.Carried.Has(e.Entity) {
			continue
		}
		t := s.TypeOf(e.Entity)
		if t == nil || !t.Interactable() {
			continue
		}
		if gap(box, e.Box) > s.opts.FocusRange {
			continue
		}
		cx, cy := e.Box.Center()
		dx, dy := cx-hx, cy-hy
		d := math.Hypot(dx, dy)
		if d > 0 && s.opts.FocusCone < 360 {
			cos := (dx*fx + dy*fy) / d
			if math.Acos(math.Max(-1, math.Min(1, cos))) > halfCone {
				continue
			}
		}
		if d < bestDist || (d == bestDist && e.Entity < best) {
			best, bestDist = e.Entity, d
		}
	}
	return best
}

// SetFocus points holder's focus at target.
func (s *State) SetFocus(holder, target ecs.EntityID) error {
	f, ok := s.Foci.Get(holder)
	if !ok {
		return fmt.Errorf("focus %s: %w", holder, ecs.ErrUnknownEntity)
	}
	if !s.ECS.Alive(target) {
		return fmt.Errorf("focus %s on %s: %w", holder, target, ecs.ErrUnknownEntity)
	}
	if f.Target != target {
		f.Target = target
		s.verbose("focus set", zap.Stringer("holder", holder), zap.String("target", s.EntityName(target)))
	}
	return nil
}

// ClearFocus resets holder's focus. No-op for entities that cannot focus.
func (s *State) ClearFocus(holder ecs.EntityID) {
	if f, ok := s.Foci.Get(holder); ok {
		f.Clear()
	}
}

// gap is the shortest distance between the edges of a and b, zero when they
// touch or overlap.
func gap(a, b spatial.Box) float64 {
	dx := math.Max(0, math.Max(b.MinX-a.MaxX, a.MinX-b.MaxX))
	dy := math.Max(0, math.Max(b.MinY-a.MaxY, a.MinY-b.MaxY))
	return math.Hypot(dx, dy)
}
