package system

import (
	"slices"
	"time"

	"github.com/emberwild/worldcore/internal/core/ecs"
	coresys "github.com/emberwild/worldcore/internal/core/system"
	"github.com/emberwild/worldcore/internal/world"
	"go.uber.org/zap"
)

// FocusSystem gives every unfocused entity the nearest interactable target
// ahead of it. Focused entities keep their target until it is destroyed or
// they move. Phase 3 (Focus).
type FocusSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewFocusSystem(ws *world.State, log *zap.Logger) *FocusSystem {
	return &FocusSystem{world: ws, log: log}
}

func (s *FocusSystem) Phase() coresys.Phase { return coresys.PhaseFocus }
func (s *FocusSystem) Name() string         { return "focus" }

func (s *FocusSystem) Update(_ time.Duration) {
	ids := s.world.Foci.IDs()
	slices.Sort(ids)
	for _, id := range ids {
		f, _ := s.world.Foci.Get(id)
		if f.Focused() {
			if s.world.Alive(f.Target) {
				continue
			}
			// destroy clears focusers, so this is a bookkeeping bug
			s.log.Error("focus on dead entity", zap.Stringer("holder", id), zap.Stringer("target", f.Target))
			f.Clear()
		}
		s.acquire(id)
	}
}

func (s *FocusSystem) acquire(id ecs.EntityID) {
	target := s.world.FindFocusTarget(id)
	if target.IsZero() {
		return
	}
	if err := s.world.SetFocus(id, target); err != nil {
		s.log.Warn("set focus", zap.Stringer("holder", id), zap.Error(err))
	}
}
