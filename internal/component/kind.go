package component

import "fmt"

// Kind selects the component set an entity is created with.
type Kind int

const (
	KindCreature Kind = iota
	KindItem
	KindStaticObject
)

var kindNames = [...]string{"creature", "item", "staticObject"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps the names used in data files back to a Kind.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", s)
}

// Identity records what an entity is. Attached to every entity at creation.
type Identity struct {
	Kind     Kind
	TypeID   string // key into the type registry and the loot table
	Category string // "tile", "item", "tree", "creature", ...
}
