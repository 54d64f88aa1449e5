package world

import "errors"

var (
	// ErrMissingSpatialState aborts a destroy when the entity has no last
	// known position to place drops at.
	ErrMissingSpatialState = errors.New("missing spatial state")
	// ErrNoSafeSpotFound is a warning: the returned coordinates may collide.
	ErrNoSafeSpotFound = errors.New("no safe spot found")
	// ErrPickupIneligible is logged when an item's type forbids pickup.
	ErrPickupIneligible = errors.New("pickup ineligible")
	// ErrInventoryFull is logged when every slot is taken. Adding to a full
	// inventory is a no-op, never a failure.
	ErrInventoryFull = errors.New("inventory full")
	// ErrKindMismatch is returned when the caller's kind disagrees with the
	// entity's type.
	ErrKindMismatch = errors.New("entity kind mismatch")
	// ErrUnknownType is returned for type IDs missing from the registry.
	ErrUnknownType = errors.New("unknown entity type")
	// ErrNoVelocity is returned when a move targets an immovable entity.
	ErrNoVelocity = errors.New("entity cannot move")
	// ErrNotInWorld is returned for live entities without a collider, such
	// as items sitting in an inventory.
	ErrNotInWorld = errors.New("entity not in world")
	// ErrEmptySlot is returned when dropping from an empty or out of range
	// inventory slot.
	ErrEmptySlot = errors.New("inventory slot empty")
)
