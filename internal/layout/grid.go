package layout

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/factoryflow/internal/ctxlog"
	"github.com/specialistvlad/factoryflow/internal/entity"
)

var (
	// ErrOutOfBounds is returned when an entity footprint leaves the grid.
	ErrOutOfBounds = errors.New("entity outside grid bounds")
	// ErrOverlap is returned when a footprint cell is already occupied.
	ErrOverlap = errors.New("cell already occupied")
	// ErrGridTooLarge is returned when the entities of a blueprint span more
	// than MaxGridArea cells.
	ErrGridTooLarge = errors.New("layout too large")
)

// MaxGridArea caps width x height of a layout grid (a 4096 x 4096 square).
const MaxGridArea = 1 << 24

// Grid is a width x height surface of optional entity references. A
// multi-cell entity is referenced from every cell of its footprint.
type Grid struct {
	width, height int
	cells         [][]*entity.Entity
	entities      []*entity.Entity
}

// NewEmptyGrid returns a grid with no entities.
func NewEmptyGrid(width, height int) *Grid {
	cells := make([][]*entity.Entity, height)
	for y := range cells {
		cells[y] = make([]*entity.Entity, width)
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// At returns the entity covering (x, y), or nil for empty and out of bounds
// cells.
func (g *Grid) At(x, y int) *entity.Entity {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	return g.cells[y][x]
}

// Entities returns the placed entities in placement order.
func (g *Grid) Entities() []*entity.Entity {
	return append([]*entity.Entity(nil), g.entities...)
}

// Place puts e on every cell of its footprint. Nothing is placed unless all
// cells are inside the grid and free.
func (g *Grid) Place(e *entity.Entity) error {
	cells := e.Cells()
	for _, c := range cells {
		if c.X < 0 || c.Y < 0 || c.X >= g.width || c.Y >= g.height {
			return fmt.Errorf("%w: %s at %s", ErrOutOfBounds, e.Name, c)
		}
		if other := g.cells[c.Y][c.X]; other != nil {
			return fmt.Errorf("%w: %s at %s is taken by %d %s", ErrOverlap, e.Name, c, other.Number, other.Name)
		}
	}
	for _, c := range cells {
		g.cells[c.Y][c.X] = e
	}
	g.entities = append(g.entities, e)
	return nil
}

// NewGrid builds the entities of a blueprint and lays them out on a grid
// just large enough to hold them, with the top-left occupied cell at (0, 0).
// Placements naming unknown or unsupported entities are skipped with a
// warning, as are duplicate entity numbers and overlapping footprints.
func NewGrid(ctx context.Context, bp *Blueprint, cat entity.Catalog) (*Grid, error) {
	logger := ctxlog.FromContext(ctx)

	seen := make(map[int]bool, len(bp.Entities))
	entities := make([]*entity.Entity, 0, len(bp.Entities))
	for _, p := range bp.Entities {
		if seen[p.EntityNumber] {
			logger.Warn("Duplicate entity number, skipping placement.", "entity_number", p.EntityNumber, "entity", p.Name)
			continue
		}
		e, err := entity.New(ctx, p.toEntity(), cat)
		if err != nil {
			logger.Warn("Skipping entity.", "entity_number", p.EntityNumber, "entity", p.Name, "error", err)
			continue
		}
		seen[p.EntityNumber] = true
		entities = append(entities, e)
	}
	if len(entities) == 0 {
		return nil, ErrEmptyBlueprint
	}

	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for _, e := range entities {
		for _, c := range e.Cells() {
			minX, maxX = min(minX, c.X), max(maxX, c.X)
			minY, maxY = min(minY, c.Y), max(maxY, c.Y)
		}
	}

	width, height := maxX-minX+1, maxY-minY+1
	if int64(width)*int64(height) > MaxGridArea {
		return nil, fmt.Errorf("%w: %d x %d cells exceeds %d", ErrGridTooLarge, width, height, MaxGridArea)
	}

	g := NewEmptyGrid(width, height)
	for _, e := range entities {
		e.Translate(-minX, -minY)
		if err := g.Place(e); err != nil {
			logger.Warn("Skipping overlapping entity.", "entity_number", e.Number, "error", err)
		}
	}

	logger.Debug("Layout grid built.",
		"width", g.width, "height", g.height,
		"placed", len(g.entities), "skipped", len(bp.Entities)-len(g.entities))
	return g, nil
}
