package network

import (
	"context"
	"testing"

	"github.com/specialistvlad/factoryflow/internal/catalog"
	"github.com/specialistvlad/factoryflow/internal/entity"
	"github.com/specialistvlad/factoryflow/internal/layout"
	"github.com/specialistvlad/factoryflow/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testCatalog layers test entities and recipes over the default catalog.
type testCatalog struct {
	*catalog.Catalog
	entities map[string]catalog.EntityDef
	recipes  map[string]catalog.Recipe
}

func (c *testCatalog) Entity(name string) (catalog.EntityDef, bool) {
	if def, ok := c.entities[name]; ok {
		return def, true
	}
	return c.Catalog.Entity(name)
}

func (c *testCatalog) Recipe(name string) (catalog.Recipe, bool) {
	if r, ok := c.recipes[name]; ok {
		return r, true
	}
	return c.Catalog.Recipe(name)
}

func item(name string, amount float64) catalog.Item {
	return catalog.Item{Name: name, Amount: amount, Kind: catalog.KindItem}
}

func newTestCatalog() *testCatalog {
	return &testCatalog{
		Catalog: catalog.Default(),
		entities: map[string]catalog.EntityDef{
			"underground-belt": {Name: "underground-belt", Type: catalog.TypeUndergroundBelt, Tier: 1, MaxDistance: 4},
		},
		recipes: map[string]catalog.Recipe{
			"gear": {
				Name:        "gear",
				Ingredients: []catalog.Item{item("iron-plate", 2)},
				Results:     []catalog.Item{item("iron-gear-wheel", 1)},
			},
			"circuit": {
				Name:        "circuit",
				Ingredients: []catalog.Item{item("iron-plate", 1), item("copper-plate", 1)},
				Results:     []catalog.Item{item("electronic-circuit", 1)},
			},
			"copper-smelting": {
				Name:        "copper-smelting",
				Ingredients: []catalog.Item{item("copper-ore", 1)},
				Results:     []catalog.Item{item("copper-plate", 1)},
			},
		},
	}
}

// fixture lays entities out on an empty grid at exact cells.
type fixture struct {
	t    *testing.T
	ctx  context.Context
	logs *testutil.SafeBuffer
	cat  *testCatalog
	grid *layout.Grid
	next int
}

func newFixture(t *testing.T, width, height int) *fixture {
	t.Helper()
	ctx, logs := testutil.Context(t)
	return &fixture{t: t, ctx: ctx, logs: logs, cat: newTestCatalog(), grid: layout.NewEmptyGrid(width, height)}
}

func code(d entity.Direction) *int {
	c := int(d)
	return &c
}

func (f *fixture) place(p entity.Placement) *entity.Entity {
	f.t.Helper()
	f.next++
	p.Number = f.next
	e, err := entity.New(f.ctx, p, f.cat)
	require.NoError(f.t, err)
	require.NoError(f.t, f.grid.Place(e))
	return e
}

func (f *fixture) belt(x, y int, d entity.Direction) *entity.Entity {
	f.t.Helper()
	return f.place(entity.Placement{Name: "transport-belt", X: float64(x), Y: float64(y), Direction: code(d)})
}

func (f *fixture) inserter(x, y int, d entity.Direction) *entity.Entity {
	f.t.Helper()
	return f.place(entity.Placement{Name: "inserter", X: float64(x), Y: float64(y), Direction: code(d)})
}

func (f *fixture) machine(x, y int, recipe string) *entity.Entity {
	f.t.Helper()
	return f.place(entity.Placement{Name: "assembling-machine-1", X: float64(x), Y: float64(y), Recipe: recipe})
}

func (f *fixture) underground(x, y int, d entity.Direction, name, side string) *entity.Entity {
	f.t.Helper()
	return f.place(entity.Placement{Name: name, X: float64(x), Y: float64(y), Direction: code(d), Side: side})
}

func (f *fixture) splitter(x, y int, d entity.Direction) *entity.Entity {
	f.t.Helper()
	return f.place(entity.Placement{Name: "splitter", X: float64(x), Y: float64(y), Direction: code(d)})
}

func (f *fixture) build() *Network {
	f.t.Helper()
	return Build(f.ctx, f.grid)
}

// ring places a closed clockwise loop of belts around a side x side square.
func (f *fixture) ring(side int) []*entity.Entity {
	f.t.Helper()
	var belts []*entity.Entity
	last := side - 1
	for x := 0; x < last; x++ {
		belts = append(belts, f.belt(x, 0, entity.East))
	}
	for y := 0; y < last; y++ {
		belts = append(belts, f.belt(last, y, entity.South))
	}
	for x := last; x > 0; x-- {
		belts = append(belts, f.belt(x, last, entity.West))
	}
	for y := last; y > 0; y-- {
		belts = append(belts, f.belt(0, y, entity.North))
	}
	return belts
}

func nodeOf(t *testing.T, nw *Network, e *entity.Entity) *Node {
	t.Helper()
	n, ok := nw.NodeFor(e.Number)
	require.True(t, ok, "no node for entity %s", e)
	return n
}

func itemNames(items []catalog.Item) []string {
	if items == nil {
		return nil
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}
