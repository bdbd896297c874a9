package catalog

import (
	"fmt"
	"sort"
)

// Entity type classifications, as declared by the `type` attribute of an
// entity block. Any other value is accepted by the catalog but has no graph
// handling downstream.
const (
	TypeTransportBelt     = "transport-belt"
	TypeUndergroundBelt   = "underground-belt"
	TypeInserter          = "inserter"
	TypeContainer         = "container"
	TypeLogisticContainer = "logistic-container"
	TypeSplitter          = "splitter"
	TypeAssemblingMachine = "assembling-machine"
)

// EntityDef is the catalog metadata for one declared entity name.
type EntityDef struct {
	Name string
	Type string
	// Tier is the speed or size tier (1 for the basic variant).
	Tier int
	// MaxDistance is the pairing reach of an underground belt.
	MaxDistance int
	// LongHanded marks inserters whose reach is doubled.
	LongHanded bool
	// LogisticMode is set for logistic containers, e.g. "passive-provider".
	LogisticMode string
}

// ItemKind distinguishes solid items from fluids.
type ItemKind string

const (
	KindItem  ItemKind = "item"
	KindFluid ItemKind = "fluid"
)

// Item is a named material with a quantity.
type Item struct {
	Name   string   `json:"name" yaml:"name"`
	Amount float64  `json:"amount" yaml:"amount"`
	Kind   ItemKind `json:"kind" yaml:"kind"`
}

// Same reports whether two items are the same ingredient. Quantity and kind
// are not part of an item's identity.
func (i Item) Same(other Item) bool {
	return i.Name == other.Name
}

func (i Item) String() string {
	return fmt.Sprintf("%s (%g)", i.Name, i.Amount)
}

// Recipe maps ordered ingredients to results.
type Recipe struct {
	Name        string
	Ingredients []Item
	Results     []Item
}

func (r Recipe) clone() Recipe {
	return Recipe{
		Name:        r.Name,
		Ingredients: append([]Item(nil), r.Ingredients...),
		Results:     append([]Item(nil), r.Results...),
	}
}

// Catalog is an immutable lookup of entity and recipe definitions.
type Catalog struct {
	entities map[string]EntityDef
	recipes  map[string]Recipe
}

func newCatalog() *Catalog {
	return &Catalog{
		entities: make(map[string]EntityDef),
		recipes:  make(map[string]Recipe),
	}
}

// Entity returns the definition for a declared entity name.
func (c *Catalog) Entity(name string) (EntityDef, bool) {
	def, ok := c.entities[name]
	return def, ok
}

// Recipe returns a copy of the named recipe, so callers cannot alter the
// catalog through the returned slices.
func (c *Catalog) Recipe(name string) (Recipe, bool) {
	r, ok := c.recipes[name]
	if !ok {
		return Recipe{}, false
	}
	return r.clone(), true
}

// EntityNames returns all declared entity names in sorted order.
func (c *Catalog) EntityNames() []string {
	names := make([]string, 0, len(c.entities))
	for name := range c.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecipeNames returns all recipe names in sorted order.
func (c *Catalog) RecipeNames() []string {
	names := make([]string, 0, len(c.recipes))
	for name := range c.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
