package data

import (
	"fmt"
	"os"
	"sort"

	"github.com/emberwild/worldcore/internal/component"
	"gopkg.in/yaml.v3"
)

// Categories with special handling in spawn and focus logic.
const (
	CategoryTile = "tile"
	CategoryItem = "item"
)

// EntityType is the static description of a placeable object type.
type EntityType struct {
	ID                string  `yaml:"id"`
	KindName          string  `yaml:"kind"`
	Category          string  `yaml:"category"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	Pickup            bool    `yaml:"pickup"` // may be moved into an inventory
	Exempt            bool    `yaml:"exempt"`
	CollisionModifier float64 `yaml:"collision_modifier"`
	Health            float64 `yaml:"health"` // 0 = indestructible, no Health component
	Speed             float64 `yaml:"speed"`  // creatures only
	Damage            float64 `yaml:"damage"` // base attack damage

	kind component.Kind
}

func (t *EntityType) Kind() component.Kind { return t.kind }

// Interactable reports whether focus may select entities of this type.
func (t *EntityType) Interactable() bool {
	return t.Pickup || t.Health > 0
}

// Blocking reports whether the type occupies space for spawn purposes.
func (t *EntityType) Blocking() bool {
	return t.Category != CategoryTile && t.Category != CategoryItem
}

type typeListFile struct {
	Types []EntityType `yaml:"types"`
}

// TypeRegistry resolves type IDs to static type data. Read-only once the
// simulation starts.
type TypeRegistry struct {
	types map[string]*EntityType
}

// NewTypeRegistry builds a registry from in-memory definitions.
func NewTypeRegistry(types ...EntityType) (*TypeRegistry, error) {
	r := &TypeRegistry{types: make(map[string]*EntityType, len(types))}
	for i := range types {
		t := types[i]
		k, err := component.ParseKind(t.KindName)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", t.ID, err)
		}
		if _, dup := r.types[t.ID]; dup {
			return nil, fmt.Errorf("type %q defined twice", t.ID)
		}
		t.kind = k
		r.types[t.ID] = &t
	}
	return r, nil
}

// Get returns the type definition, or nil if unknown.
func (r *TypeRegistry) Get(id string) *EntityType {
	return r.types[id]
}

// Count returns the number of registered types.
func (r *TypeRegistry) Count() int {
	return len(r.types)
}

// IDs returns all type IDs of the given category, sorted.
func (r *TypeRegistry) IDs(category string) []string {
	var ids []string
	for id, t := range r.types {
		if category == "" || t.Category == category {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// LoadTypeRegistry loads type definitions from a YAML file.
func LoadTypeRegistry(path string) (*TypeRegistry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read type_list: %w", err)
	}
	return ParseTypeRegistry(raw)
}

// ParseTypeRegistry validates and decodes a YAML type list.
func ParseTypeRegistry(raw []byte) (*TypeRegistry, error) {
	if err := validateYAML(typeListValidator, raw); err != nil {
		return nil, fmt.Errorf("validate type_list: %w", err)
	}
	var f typeListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse type_list: %w", err)
	}
	return NewTypeRegistry(f.Types...)
}
