package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrMonsterNotFound is returned when a template ID is not in the catalog.
var ErrMonsterNotFound = errors.New("monster template not found")

// DropDef is one catalog drop entry. Chance is a percentage.
type DropDef struct {
	ItemID int32   `yaml:"item_id"`
	Chance float64 `yaml:"chance"`
	Min    int32   `yaml:"min"`
	Max    int32   `yaml:"max"`
}

// MonsterDef is a read-only catalog entry with unscaled base stats.
type MonsterDef struct {
	ID      int32     `yaml:"id"`
	Name    string    `yaml:"name"`
	Level   int32     `yaml:"level"`
	HP      int64     `yaml:"hp"`
	Attack  int64     `yaml:"attack"`
	Defense int64     `yaml:"defense"`
	Speed   int64     `yaml:"speed"`
	Exp     int64     `yaml:"exp"`
	Coins   int64     `yaml:"coins"`
	Drops   []DropDef `yaml:"drops"`
}

// Catalog is an immutable registry of monster templates, sorted by level.
// Safe for concurrent reads.
type Catalog struct {
	byID  map[int32]*MonsterDef
	order []*MonsterDef
}

// NewCatalog builds a catalog from defs. Duplicate IDs and non-positive
// stats are rejected.
func NewCatalog(defs []MonsterDef) (*Catalog, error) {
	c := &Catalog{
		byID:  make(map[int32]*MonsterDef, len(defs)),
		order: make([]*MonsterDef, 0, len(defs)),
	}
	for i := range defs {
		d := defs[i]
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate monster id %d", d.ID)
		}
		if d.HP <= 0 || d.Attack < 0 || d.Defense < 0 || d.Level < 1 {
			return nil, fmt.Errorf("monster %d (%s): invalid base stats", d.ID, d.Name)
		}
		d.Drops = slices.Clone(d.Drops)
		c.byID[d.ID] = &d
		c.order = append(c.order, &d)
	}
	slices.SortStableFunc(c.order, func(a, b *MonsterDef) int {
		if a.Level != b.Level {
			return int(a.Level - b.Level)
		}
		return int(a.ID - b.ID)
	})
	return c, nil
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(monsterDefs)
	if err != nil {
		panic("built-in monster catalog: " + err.Error())
	}
	return c
}

// LoadCatalogFile reads a YAML list of monsters from path.
// An empty path returns the built-in catalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading monster catalog %s: %w", path, err)
	}
	var file struct {
		Monsters []MonsterDef `yaml:"monsters"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing monster catalog %s: %w", path, err)
	}
	c, err := NewCatalog(file.Monsters)
	if err != nil {
		return nil, fmt.Errorf("building monster catalog %s: %w", path, err)
	}
	slog.Info("loaded monster catalog", "path", path, "count", c.Len())
	return c, nil
}

// Get returns the template with id.
func (c *Catalog) Get(id int32) (*MonsterDef, error) {
	d, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("monster %d: %w", id, ErrMonsterNotFound)
	}
	return d, nil
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Filter returns templates matching fn in level order.
func (c *Catalog) Filter(fn func(d *MonsterDef) bool) []*MonsterDef {
	var out []*MonsterDef
	for _, d := range c.order {
		if fn(d) {
			out = append(out, d)
		}
	}
	return out
}

// Nearest returns the template whose level is closest to level.
// Ties go to the lower level.
func (c *Catalog) Nearest(level int32) *MonsterDef {
	var best *MonsterDef
	bestDiff := int32(-1)
	for _, d := range c.order {
		diff := d.Level - level
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = d, diff
		}
	}
	return best
}
