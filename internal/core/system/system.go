package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseLifecycle Phase = iota // 0: swap event buffers, drain destroy/action requests
	PhaseHealth                 // 1: flag dead entities for next tick's lifecycle
	PhaseMovement               // 2: integrate velocity, resolve collisions, re-index
	PhaseFocus                  // 3: pick interaction targets
	PhaseInventory              // 4: pending pickup transfers
	PhaseOutput                 // 5: dispatch outbound events to subscribers
)

var phaseNames = [...]string{"lifecycle", "health", "movement", "focus", "inventory", "output"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Named is optionally implemented by systems to label their stats.
type Named interface {
	Name() string
}
