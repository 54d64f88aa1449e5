package system

import (
	"time"

	"github.com/emberwild/worldcore/internal/core/event"
	coresys "github.com/emberwild/worldcore/internal/core/system"
	"github.com/emberwild/worldcore/internal/world"
	"go.uber.org/zap"
)

// InventorySystem performs the pickups requested this tick, after focus has
// settled, and forwards inventory panel toggles. Phase 4 (Inventory).
type InventorySystem struct {
	world *world.State
	log   *zap.Logger
}

func NewInventorySystem(ws *world.State, log *zap.Logger) *InventorySystem {
	return &InventorySystem{world: ws, log: log}
}

func (s *InventorySystem) Phase() coresys.Phase { return coresys.PhaseInventory }
func (s *InventorySystem) Name() string         { return "inventory" }

func (s *InventorySystem) Update(_ time.Duration) {
	bus := s.world.Bus()

	for _, ev := range event.Drain[event.ItemPickupRequested](bus) {
		if !s.world.Alive(ev.HolderID) {
			continue
		}
		if _, err := s.world.PickupFocused(ev.HolderID); err != nil {
			s.log.Warn("pickup failed", zap.Stringer("holder", ev.HolderID), zap.Error(err))
		}
	}

	for _, ev := range event.Drain[event.InventoryToggleRequested](bus) {
		s.world.Presenter().ToggleInventory(ev.HolderID)
	}
}
