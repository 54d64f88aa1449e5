package system

import (
	"time"

	"github.com/emberwild/worldcore/internal/core/event"
	coresys "github.com/emberwild/worldcore/internal/core/system"
)

// OutputSystem delivers outbound events to subscribers. Phase 5 (Output).
type OutputSystem struct {
	bus *event.Bus
}

func NewOutputSystem(bus *event.Bus) *OutputSystem {
	return &OutputSystem{bus: bus}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }
func (s *OutputSystem) Name() string         { return "output" }

func (s *OutputSystem) Update(_ time.Duration) {
	s.bus.DispatchAll()
}
