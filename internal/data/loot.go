package data

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// DropRule is a single possible drop. Each rule is rolled independently;
// a probability of 1 always drops.
type DropRule struct {
	ItemID      string  `yaml:"item_id"`
	Probability float64 `yaml:"probability"`
	Min         int     `yaml:"min"` // defaults to 1; a hit always drops at least one unit
	Max         int     `yaml:"max"` // defaults to Min
}

type lootEntry struct {
	TypeID string     `yaml:"type_id"`
	Drops  []DropRule `yaml:"drops"`
}

type lootListFile struct {
	Loot []lootEntry `yaml:"loot"`
}

// LootTable holds drop rules indexed by object type ID.
type LootTable struct {
	drops map[string][]DropRule
}

// NewLootTable builds a table from in-memory rules.
func NewLootTable(drops map[string][]DropRule) *LootTable {
	t := &LootTable{drops: make(map[string][]DropRule, len(drops))}
	for k, v := range drops {
		t.drops[k] = v
	}
	return t
}

// Get returns the drop rules for a type, or nil if none defined.
func (t *LootTable) Get(typeID string) []DropRule {
	return t.drops[typeID]
}

// Count returns the number of types with drop entries.
func (t *LootTable) Count() int {
	return len(t.drops)
}

// Roll samples the rules for typeID and returns the dropped item type IDs,
// one element per dropped unit.
func (t *LootTable) Roll(typeID string, rng *rand.Rand) []string {
	var out []string
	for _, r := range t.drops[typeID] {
		if r.Probability < 1 && rng.Float64() >= r.Probability {
			continue
		}
		lo := r.Min
		if lo <= 0 {
			lo = 1
		}
		hi := r.Max
		if hi < lo {
			hi = lo
		}
		n := lo
		if hi > lo {
			n += rng.Intn(hi - lo + 1)
		}
		for i := 0; i < n; i++ {
			out = append(out, r.ItemID)
		}
	}
	return out
}

// LoadLootTable loads drop rules from a YAML file.
func LoadLootTable(path string) (*LootTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read loot_list: %w", err)
	}
	return ParseLootTable(raw)
}

// ParseLootTable validates and decodes a YAML loot list.
func ParseLootTable(raw []byte) (*LootTable, error) {
	if err := validateYAML(lootListValidator, raw); err != nil {
		return nil, fmt.Errorf("validate loot_list: %w", err)
	}
	var f lootListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse loot_list: %w", err)
	}
	t := &LootTable{drops: make(map[string][]DropRule, len(f.Loot))}
	for _, entry := range f.Loot {
		t.drops[entry.TypeID] = append(t.drops[entry.TypeID], entry.Drops...)
	}
	return t, nil
}
