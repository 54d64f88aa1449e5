package spatial

import (
	"errors"
	"fmt"

	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/kamstrup/intmap"
	"github.com/tidwall/rtree"
)

// ErrDuplicateEntry is returned by Insert when the entity is already indexed.
var ErrDuplicateEntry = errors.New("entity already indexed")

// Entry mirrors a live collider: one entity, one box.
type Entry struct {
	Entity ecs.EntityID
	Box
}

// Index maps entity bounding boxes to entity handles on top of an R-tree.
// Each entity has at most one entry. Owned by the tick driver and handed to
// systems by reference, never copied.
type Index struct {
	tree  rtree.RTreeG[ecs.EntityID]
	boxes *intmap.Map[ecs.EntityID, Box]
}

func NewIndex() *Index {
	return &Index{
		boxes: intmap.New[ecs.EntityID, Box](1024),
	}
}

// Insert adds e. An entity that is already indexed is rejected so stale and
// fresh boxes never coexist.
func (ix *Index) Insert(e Entry) error {
	if _, ok := ix.boxes.Get(e.Entity); ok {
		return fmt.Errorf("insert %s: %w", e.Entity, ErrDuplicateEntry)
	}
	ix.tree.Insert(e.min(), e.max(), e.Entity)
	ix.boxes.Put(e.Entity, e.Box)
	return nil
}

// Remove deletes the entry for id that satisfies match. A nil match accepts
// the entity's own entry. Returns false when nothing matched.
func (ix *Index) Remove(id ecs.EntityID, match func(Entry) bool) bool {
	box, ok := ix.boxes.Get(id)
	if !ok {
		return false
	}
	found := false
	ix.tree.Search(box.min(), box.max(), func(min, max [2]float64, data ecs.EntityID) bool {
		cand := Entry{Entity: data, Box: Box{MinX: min[0], MinY: min[1], MaxX: max[0], MaxY: max[1]}}
		if cand.Entity != id || cand.Box != box {
			return true
		}
		if match != nil && !match(cand) {
			return true
		}
		found = true
		return false
	})
	if !found {
		return false
	}
	ix.tree.Delete(box.min(), box.max(), id)
	ix.boxes.Del(id)
	return true
}

// Move replaces id's box in one step. Returns false if id was not indexed,
// in which case nothing is inserted.
func (ix *Index) Move(id ecs.EntityID, box Box) bool {
	if !ix.Remove(id, nil) {
		return false
	}
	ix.tree.Insert(box.min(), box.max(), id)
	ix.boxes.Put(id, box)
	return true
}

// Search returns every entry whose box intersects q, edges included, in
// unspecified order.
func (ix *Index) Search(q Box) []Entry {
	var out []Entry
	ix.tree.Search(q.min(), q.max(), func(min, max [2]float64, data ecs.EntityID) bool {
		out = append(out, Entry{Entity: data, Box: Box{MinX: min[0], MinY: min[1], MaxX: max[0], MaxY: max[1]}})
		return true
	})
	return out
}

// All enumerates every entry. Intended for diagnostics and tests.
func (ix *Index) All() []Entry {
	out := make([]Entry, 0, ix.tree.Len())
	ix.tree.Scan(func(min, max [2]float64, data ecs.EntityID) bool {
		out = append(out, Entry{Entity: data, Box: Box{MinX: min[0], MinY: min[1], MaxX: max[0], MaxY: max[1]}})
		return true
	})
	return out
}

// Get returns id's current entry.
func (ix *Index) Get(id ecs.EntityID) (Entry, bool) {
	box, ok := ix.boxes.Get(id)
	if !ok {
		return Entry{}, false
	}
	return Entry{Entity: id, Box: box}, true
}

func (ix *Index) Contains(id ecs.EntityID) bool {
	_, ok := ix.boxes.Get(id)
	return ok
}

func (ix *Index) Len() int {
	return ix.tree.Len()
}
