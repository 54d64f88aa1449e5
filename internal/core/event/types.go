package event

import "github.com/emberwild/worldcore/internal/core/ecs"

// Inbound events, read at the start of the tick's lifecycle phase.

// EntityDestroyed requests the destroy transaction for EntityID.
type EntityDestroyed struct {
	EntityID ecs.EntityID
}

// ItemPickupRequested asks the holder to pick up its current focus target.
type ItemPickupRequested struct {
	HolderID ecs.EntityID
}

// InventoryToggleRequested is forwarded to presentation; no core state changes.
type InventoryToggleRequested struct {
	HolderID ecs.EntityID
}

// Action is a player or AI command applied to a single entity.
type Action int

const (
	ActionStop Action = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionAttack
)

var actionNames = [...]string{"stop", "moveUp", "moveDown", "moveLeft", "moveRight", "attack"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ActionRequested carries an input-driven action for EntityID.
type ActionRequested struct {
	EntityID ecs.EntityID
	Action   Action
}

// Outbound events, dispatched to subscribers in the output phase.

// ItemPickedUp reports a successful inventory transfer.
type ItemPickedUp struct {
	HolderID ecs.EntityID
	ItemID   ecs.EntityID
}

// EntityRemoved reports that an entity left the world for good.
type EntityRemoved struct {
	EntityID ecs.EntityID
}
