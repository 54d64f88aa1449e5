package ecs

// World is the top-level ECS container. It owns the entity pool and the
// component registry. Accessed only from the tick goroutine, no locks.
type World struct {
	pool     *EntityPool
	registry *Registry
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// ReleaseEntity detaches every component and returns the handle to the pool.
// A stale handle fails with ErrDoubleRelease and leaves every store untouched.
func (w *World) ReleaseEntity(id EntityID) error {
	if !w.pool.Alive(id) {
		return w.pool.Release(id)
	}
	w.registry.RemoveAll(id)
	return w.pool.Release(id)
}
