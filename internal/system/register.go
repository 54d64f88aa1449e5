package system

import (
	coresys "github.com/emberwild/worldcore/internal/core/system"
	"github.com/emberwild/worldcore/internal/world"
	"go.uber.org/zap"
)

// RegisterAll wires every simulation system into r.
func RegisterAll(r *coresys.Runner, ws *world.State, log *zap.Logger) {
	r.Register(NewLifecycleSystem(ws, log.Named("lifecycle")))
	r.Register(NewHealthSystem(ws))
	r.Register(NewMovementSystem(ws, log.Named("movement")))
	r.Register(NewFocusSystem(ws, log.Named("focus")))
	r.Register(NewInventorySystem(ws, log.Named("inventory")))
	r.Register(NewOutputSystem(ws.Bus()))
}
