package system

import (
	"time"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/event"
	coresys "github.com/emberwild/worldcore/internal/core/system"
	"github.com/emberwild/worldcore/internal/world"
	"go.uber.org/zap"
)

// LifecycleSystem is the fixed point where inbound events enter the tick.
// Phase 0 (Lifecycle): swaps the bus buffers, runs destroy transactions,
// then applies queued actions. Failed requests are logged and dropped; the
// emitter may re-send them.
type LifecycleSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewLifecycleSystem(ws *world.State, log *zap.Logger) *LifecycleSystem {
	return &LifecycleSystem{world: ws, log: log}
}

func (s *LifecycleSystem) Phase() coresys.Phase { return coresys.PhaseLifecycle }
func (s *LifecycleSystem) Name() string         { return "lifecycle" }

func (s *LifecycleSystem) Update(_ time.Duration) {
	bus := s.world.Bus()
	bus.SwapBuffers()

	for _, ev := range event.Drain[event.EntityDestroyed](bus) {
		if !s.world.Alive(ev.EntityID) {
			s.log.Debug("destroy request for dead entity", zap.Stringer("entity", ev.EntityID))
			continue
		}
		if _, err := s.world.DestroyEntity(ev.EntityID); err != nil {
			s.log.Error("destroy entity", zap.Stringer("entity", ev.EntityID), zap.Error(err))
		}
	}

	for _, ev := range event.Drain[event.ActionRequested](bus) {
		if err := s.apply(ev); err != nil {
			s.log.Warn("action failed",
				zap.Stringer("entity", ev.EntityID),
				zap.Stringer("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

func (s *LifecycleSystem) apply(ev event.ActionRequested) error {
	switch ev.Action {
	case event.ActionMoveUp:
		return s.world.Move(ev.EntityID, component.DirUp)
	case event.ActionMoveDown:
		return s.world.Move(ev.EntityID, component.DirDown)
	case event.ActionMoveLeft:
		return s.world.Move(ev.EntityID, component.DirLeft)
	case event.ActionMoveRight:
		return s.world.Move(ev.EntityID, component.DirRight)
	case event.ActionStop:
		return s.world.Stop(ev.EntityID)
	case event.ActionAttack:
		_, err := s.world.Attack(ev.EntityID)
		return err
	}
	return nil
}
