package ecs

import "fmt"

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on release to invalidate stale refs.
// Index 0 is never handed out, so the zero EntityID always means "no entity".
type EntityID uint64

// NullEntity is the absent handle.
const NullEntity EntityID = 0

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == NullEntity }

func (id EntityID) String() string {
	if id.IsZero() {
		return "null"
	}
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}

// EntityPool manages entity allocation with generational indices and a free list.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
	live        int
}

func NewEntityPool() *EntityPool {
	p := &EntityPool{
		generations: make([]uint32, 1, 1024),
		freeList:    make([]uint32, 0, 256),
		nextIndex:   1, // index 0 reserved for NullEntity
	}
	return p
}

func (p *EntityPool) Create() EntityID {
	p.live++
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Release returns the handle's index to the free list. Releasing a handle that
// was issued but is no longer live yields ErrDoubleRelease; a handle that was
// never issued yields ErrUnknownEntity. Neither case mutates the pool.
func (p *EntityPool) Release(id EntityID) error {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex || id.Generation() > p.generations[idx] {
		return fmt.Errorf("release %s: %w", id, ErrUnknownEntity)
	}
	if p.generations[idx] != id.Generation() {
		return fmt.Errorf("release %s: %w", id, ErrDoubleRelease)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	p.live--
	return nil
}

// Live returns the number of currently allocated handles.
func (p *EntityPool) Live() int {
	return p.live
}
