package system

import (
	"slices"
	"time"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/ecs"
	coresys "github.com/emberwild/worldcore/internal/core/system"
	"github.com/emberwild/worldcore/internal/world"
)

// HealthSystem flags entities whose health reached zero. Phase 1 (Health).
// The destroy itself happens in the next tick's lifecycle phase.
type HealthSystem struct {
	world *world.State
}

func NewHealthSystem(ws *world.State) *HealthSystem {
	return &HealthSystem{world: ws}
}

func (s *HealthSystem) Phase() coresys.Phase { return coresys.PhaseHealth }
func (s *HealthSystem) Name() string         { return "health" }

func (s *HealthSystem) Update(_ time.Duration) {
	var dead []ecs.EntityID
	s.world.Healths.Each(func(id ecs.EntityID, h *component.Health) {
		if h.Current <= 0 {
			dead = append(dead, id)
		}
	})
	slices.Sort(dead)
	for _, id := range dead {
		s.world.MarkForDestruction(id)
	}
}
