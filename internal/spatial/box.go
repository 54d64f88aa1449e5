package spatial

import "fmt"

// Box is an axis-aligned bounding box in world pixels.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoxAt returns the box with top-left corner (x, y) and the given size.
func BoxAt(x, y, w, h float64) Box {
	return Box{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Intersects reports whether b and o share any point, edges included.
// This is the predicate Search uses.
func (b Box) Intersects(o Box) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Overlaps reports whether b and o share interior area. Boxes that only
// touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.MinX < o.MaxX && o.MinX < b.MaxX && b.MinY < o.MaxY && o.MinY < b.MaxY
}

func (b Box) Width() float64  { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Center returns the box midpoint.
func (b Box) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Translate returns b moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{MinX: b.MinX + dx, MinY: b.MinY + dy, MaxX: b.MaxX + dx, MaxY: b.MaxY + dy}
}

// Expand grows b by r on every side.
func (b Box) Expand(r float64) Box {
	return Box{MinX: b.MinX - r, MinY: b.MinY - r, MaxX: b.MaxX + r, MaxY: b.MaxY + r}
}

func (b Box) String() string {
	return fmt.Sprintf("[%.1f,%.1f %.1f,%.1f]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

func (b Box) min() [2]float64 { return [2]float64{b.MinX, b.MinY} }
func (b Box) max() [2]float64 { return [2]float64{b.MaxX, b.MaxY} }
