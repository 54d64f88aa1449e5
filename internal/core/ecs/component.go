package ecs

import (
	"fmt"
	"reflect"

	"github.com/kamstrup/intmap"
)

// Store is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on release.
type Store interface {
	Name() string
	Has(id EntityID) bool
	Remove(id EntityID)
}

// ComponentStore is a generic typed store for ECS components keyed by
// EntityID. Backed by an integer-keyed open-addressing map.
// Attaching to a handle that is not live fails with ErrUnknownEntity.
type ComponentStore[T any] struct {
	name  string
	alive func(EntityID) bool
	data  *intmap.Map[EntityID, *T]
}

// NewComponentStore creates a store bound to w's entity pool and registers it
// with w's registry so releasing an entity detaches it here too.
func NewComponentStore[T any](w *World) *ComponentStore[T] {
	s := &ComponentStore[T]{
		name:  reflect.TypeOf((*T)(nil)).Elem().Name(),
		alive: w.Alive,
		data:  intmap.New[EntityID, *T](256),
	}
	w.Registry().Register(s)
	return s
}

// Add attaches c to id.
func (s *ComponentStore[T]) Add(id EntityID, c *T) error {
	if !s.alive(id) {
		return fmt.Errorf("add %s to %s: %w", s.name, id, ErrUnknownEntity)
	}
	if _, ok := s.data.Get(id); ok {
		return fmt.Errorf("add %s to %s: %w", s.name, id, ErrDuplicateComponent)
	}
	s.data.Put(id, c)
	return nil
}

func (s *ComponentStore[T]) Get(id EntityID) (*T, bool) {
	return s.data.Get(id)
}

// Remove detaches the component. Removing an absent component is a no-op.
func (s *ComponentStore[T]) Remove(id EntityID) {
	s.data.Del(id)
}

func (s *ComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data.Get(id)
	return ok
}

func (s *ComponentStore[T]) Len() int {
	return s.data.Len()
}

// Each visits every attached component. fn must not add or remove
// components from this store; collect IDs first when mutating.
func (s *ComponentStore[T]) Each(fn func(EntityID, *T)) {
	s.data.ForEach(func(id EntityID, c *T) bool {
		fn(id, c)
		return true
	})
}

// IDs returns a snapshot of every entity holding this component.
func (s *ComponentStore[T]) IDs() []EntityID {
	ids := make([]EntityID, 0, s.data.Len())
	s.data.ForEach(func(id EntityID, _ *T) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// Name returns the component type name, used in diagnostics.
func (s *ComponentStore[T]) Name() string {
	return s.name
}
