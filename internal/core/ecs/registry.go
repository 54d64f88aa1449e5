package ecs

// Registry tracks all component stores and supports bulk cleanup on release.
type Registry struct {
	stores []Store
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Store, 0, 16),
	}
}

// Register adds a component store to the registry.
func (r *Registry) Register(store Store) {
	r.stores = append(r.stores, store)
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

// Attached lists the component names currently held by id.
func (r *Registry) Attached(id EntityID) []string {
	var names []string
	for _, s := range r.stores {
		if s.Has(id) {
			names = append(names, s.Name())
		}
	}
	return names
}
