package component

import "github.com/emberwild/worldcore/internal/core/ecs"

// Focus is the interaction target of a focus-capable entity.
// Target is ecs.NullEntity while unfocused; handle 0 is never issued, so the
// null value cannot collide with a real entity.
type Focus struct {
	Target ecs.EntityID
}

func (f *Focus) Focused() bool { return !f.Target.IsZero() }

func (f *Focus) Clear() { f.Target = ecs.NullEntity }
