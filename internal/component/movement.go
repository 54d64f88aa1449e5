package component

// Position is the top-left corner of the entity in world pixels.
// Mutated only by the movement system and the factory.
type Position struct {
	X float64
	Y float64
}

// Direction is the last heading an entity moved in.
type Direction int

const (
	DirDown Direction = iota
	DirUp
	DirLeft
	DirRight
)

var directionNames = [...]string{"down", "up", "left", "right"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Unit returns the direction as a unit vector (screen coordinates, +y down).
func (d Direction) Unit() (float64, float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 1
	}
}

// Velocity exists only on movable entities. VX/VY are pixels per second.
type Velocity struct {
	VX     float64
	VY     float64
	Speed  float64 // magnitude applied by move actions
	Facing Direction
}
