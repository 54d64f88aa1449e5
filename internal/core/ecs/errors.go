package ecs

import "errors"

var (
	// ErrDuplicateComponent is returned when a component of the same type is
	// already attached to the entity.
	ErrDuplicateComponent = errors.New("duplicate component")
	// ErrDoubleRelease is returned when a handle is released a second time.
	ErrDoubleRelease = errors.New("double release")
	// ErrUnknownEntity is returned for lookups on handles that are not live.
	ErrUnknownEntity = errors.New("unknown entity")
)
