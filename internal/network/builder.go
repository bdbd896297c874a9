package network

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/factoryflow/internal/ctxlog"
	"github.com/specialistvlad/factoryflow/internal/entity"
)

// Surface is the grid the builder walks. *layout.Grid implements it.
type Surface interface {
	Size() (width, height int)
	// At returns the entity covering a cell, or nil.
	At(x, y int) *entity.Entity
}

type edge struct{ parent, child NodeID }

type builder struct {
	logger        *slog.Logger
	surface       Surface
	width, height int

	lookup   [][]NodeID
	nodes    []*Node
	byNumber map[int]NodeID
	edges    map[edge]struct{}
}

// Build walks every cell of the surface in row-major order and links the
// nodes of neighbouring entities according to how each kind moves items.
// A node is registered in the lookup table before its neighbours are
// visited, so belt loops and multi-cell entities are built exactly once.
func Build(ctx context.Context, s Surface) *Network {
	logger := ctxlog.FromContext(ctx)
	w, h := s.Size()
	logger.Debug("Build: Starting network construction.", "width", w, "height", h)

	b := &builder{
		logger:   logger,
		surface:  s,
		width:    w,
		height:   h,
		lookup:   make([][]NodeID, h),
		byNumber: make(map[int]NodeID),
		edges:    make(map[edge]struct{}),
	}
	for y := range b.lookup {
		b.lookup[y] = make([]NodeID, w)
		for x := range b.lookup[y] {
			b.lookup[y][x] = NoNode
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.visit(x, y)
		}
	}

	nw := b.network()
	logger.Debug("Build: Network construction complete.", "node_count", nw.Len(), "edge_count", len(b.edges))
	return nw
}

func (b *builder) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// visit returns the node covering (x, y), building it and everything it
// links to on first sight.
func (b *builder) visit(x, y int) NodeID {
	if !b.inBounds(x, y) {
		return NoNode
	}
	if id := b.lookup[y][x]; id != NoNode {
		return id
	}
	e := b.surface.At(x, y)
	if e == nil {
		return NoNode
	}

	switch e.Kind {
	case entity.TransportBelt:
		id := b.register(e, x, y)
		b.feedFront(id, e, x, y)
		return id

	case entity.Inserter:
		id := b.register(e, x, y)
		drop := entity.Position{X: x, Y: y}.Add(e.DropOffset())
		if child := b.visit(drop.X, drop.Y); child != NoNode && e.CanMoveTo(b.nodes[child].Entity) {
			b.link(id, child)
		}
		pickup := entity.Position{X: x, Y: y}.Add(e.PickupOffset())
		if parent := b.visit(pickup.X, pickup.Y); parent != NoNode && e.CanMoveFrom(b.nodes[parent].Entity) {
			b.link(parent, id)
		}
		return id

	case entity.AssemblingMachine:
		id := b.node(e)
		for _, c := range e.Cells() {
			if b.inBounds(c.X, c.Y) {
				b.lookup[c.Y][c.X] = id
			}
		}
		return id

	case entity.UndergroundBelt:
		id := b.register(e, x, y)
		if e.Side == entity.Output {
			b.feedFront(id, e, x, y)
			return id
		}
		for _, o := range e.ReachableOutputOffsets() {
			c := entity.Position{X: x, Y: y}.Add(o)
			child := b.visit(c.X, c.Y)
			if child == NoNode {
				continue
			}
			if exit := b.nodes[child].Entity; exit.Name == e.Name && exit.Kind == entity.UndergroundBelt && exit.Side == entity.Output {
				b.link(id, child)
				break
			}
		}
		return id

	case entity.Container:
		return b.register(e, x, y)

	case entity.Splitter:
		if x != e.Position.X || y != e.Position.Y {
			if b.surface.At(e.Position.X, e.Position.Y) != e {
				b.logger.Warn("Splitter primary cell is not on the surface, skipping.", "entity_number", e.Number, "x", x, "y", y)
				return NoNode
			}
			return b.visit(e.Position.X, e.Position.Y)
		}
		id := b.register(e, x, y)
		second := entity.Position{X: x, Y: y}.Add(e.SecondCellOffset())
		if b.inBounds(second.X, second.Y) {
			b.lookup[second.Y][second.X] = id
		}
		for _, o := range e.DropOffsets() {
			c := entity.Position{X: x, Y: y}.Add(o)
			if child := b.visit(c.X, c.Y); child != NoNode && e.CanMoveTo(b.nodes[child].Entity) {
				b.link(id, child)
			}
		}
		return id
	}

	b.logger.Warn("Unsupported entity kind, skipping.", "entity_number", e.Number, "kind", e.Kind)
	return NoNode
}

// feedFront links a belt, or an underground exit, to whatever it feeds.
func (b *builder) feedFront(id NodeID, e *entity.Entity, x, y int) {
	front := entity.Position{X: x, Y: y}.Add(e.Front())
	if child := b.visit(front.X, front.Y); child != NoNode && e.CanConnectTo(b.nodes[child].Entity) {
		b.link(id, child)
	}
}

// register puts the entity's node in the lookup table at (x, y).
func (b *builder) register(e *entity.Entity, x, y int) NodeID {
	id := b.node(e)
	b.lookup[y][x] = id
	return id
}

// node returns the node for an entity, creating it on first use. Entities
// are keyed by number so a multi-cell entity never gets a second node.
func (b *builder) node(e *entity.Entity) NodeID {
	if id, ok := b.byNumber[e.Number]; ok {
		return id
	}
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, newNode(id, e))
	b.byNumber[e.Number] = id
	b.logger.Debug("Build: Node created.", "node_id", id, "entity", e.String())
	return id
}

// link adds the edge parent -> child once.
func (b *builder) link(parent, child NodeID) {
	key := edge{parent, child}
	if _, ok := b.edges[key]; ok {
		return
	}
	b.edges[key] = struct{}{}
	b.nodes[parent].children = append(b.nodes[parent].children, child)
	b.nodes[child].parents = append(b.nodes[child].parents, parent)
}

func (b *builder) network() *Network {
	nw := &Network{nodes: b.nodes, lookup: b.lookup, byNumber: b.byNumber}
	seen := make(map[NodeID]bool, len(b.nodes))
	for _, row := range b.lookup {
		for _, id := range row {
			if id != NoNode && !seen[id] {
				seen[id] = true
				nw.order = append(nw.order, id)
			}
		}
	}
	return nw
}
