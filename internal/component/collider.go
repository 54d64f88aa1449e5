package component

import "github.com/emberwild/worldcore/internal/spatial"

// Collider is the authoritative bounding box of an entity in the world.
// While the entity is live the spatial index holds exactly one entry with the
// same box.
type Collider struct {
	MinX, MinY, MaxX, MaxY float64

	// Exempt entities are indexed but never block movement or spawning
	// (ground tiles, decorations).
	Exempt bool
	// CollisionModifier scales the blocked axis of a mover's displacement:
	// 0 stops it dead, 1 lets it through.
	CollisionModifier float64
}

func (c *Collider) Box() spatial.Box {
	return spatial.Box{MinX: c.MinX, MinY: c.MinY, MaxX: c.MaxX, MaxY: c.MaxY}
}

func (c *Collider) SetBox(b spatial.Box) {
	c.MinX, c.MinY, c.MaxX, c.MaxY = b.MinX, b.MinY, b.MaxX, b.MaxY
}

func (c *Collider) Width() float64  { return c.MaxX - c.MinX }
func (c *Collider) Height() float64 { return c.MaxY - c.MinY }
