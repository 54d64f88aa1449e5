package component

// Visual links an entity to its presentation-side representation.
// This is a reference, not the sprite itself; the sprite lives outside the core.
type Visual struct {
	Handle uint64
}
