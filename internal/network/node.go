package network

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/factoryflow/internal/catalog"
	"github.com/specialistvlad/factoryflow/internal/entity"
)

// NodeID is a handle into a Network's node arena.
type NodeID int

// NoNode is the handle of an empty or unreachable cell.
const NoNode NodeID = -1

// NodeKind separates machines, which transform materials, from everything
// that only moves them.
type NodeKind int

const (
	AssemblyNode NodeKind = iota + 1
	TransportNode
)

func (k NodeKind) String() string {
	switch k {
	case AssemblyNode:
		return "assembly"
	case TransportNode:
		return "transport"
	}
	return fmt.Sprintf("node_kind(%d)", int(k))
}

func kindOf(e *entity.Entity) NodeKind {
	switch e.Kind {
	case entity.AssemblingMachine:
		return AssemblyNode
	case entity.TransportBelt, entity.UndergroundBelt, entity.Inserter, entity.Container, entity.Splitter:
		return TransportNode
	}
	return TransportNode
}

// Purpose is the set of materials a transport node is inferred to carry.
// The zero value is unresolved.
type Purpose struct {
	resolved bool
	items    []catalog.Item
}

// Resolved returns a resolved purpose carrying a copy of items.
func Resolved(items []catalog.Item) Purpose {
	return Purpose{resolved: true, items: append([]catalog.Item{}, items...)}
}

// IsResolved reports whether a purpose has been assigned.
func (p Purpose) IsResolved() bool { return p.resolved }

// Items returns the assigned materials, or nil while unresolved.
func (p Purpose) Items() []catalog.Item {
	if !p.resolved {
		return nil
	}
	return append([]catalog.Item{}, p.items...)
}

func (p Purpose) String() string {
	if !p.resolved {
		return "?"
	}
	if len(p.items) == 0 {
		return "none"
	}
	return joinItems(p.items)
}

// Node is a graph vertex wrapping one entity.
type Node struct {
	ID     NodeID
	Entity *entity.Entity
	Kind   NodeKind

	parents  []NodeID
	children []NodeID

	// Assembly nodes.
	inputs  []catalog.Item
	outputs []catalog.Item

	// Transport nodes.
	purpose Purpose
}

func newNode(id NodeID, e *entity.Entity) *Node {
	n := &Node{ID: id, Entity: e, Kind: kindOf(e)}
	if n.Kind == AssemblyNode && e.Recipe != nil {
		n.inputs = append([]catalog.Item(nil), e.Recipe.Ingredients...)
		n.outputs = append([]catalog.Item(nil), e.Recipe.Results...)
	}
	return n
}

// Parents returns the handles of the nodes feeding this one, in link order.
func (n *Node) Parents() []NodeID { return append([]NodeID(nil), n.parents...) }

// Children returns the handles of the nodes this one feeds, in link order.
func (n *Node) Children() []NodeID { return append([]NodeID(nil), n.children...) }

// Inputs returns the recipe ingredients of an assembly node.
func (n *Node) Inputs() []catalog.Item { return append([]catalog.Item(nil), n.inputs...) }

// Outputs returns the recipe results of an assembly node.
func (n *Node) Outputs() []catalog.Item { return append([]catalog.Item(nil), n.outputs...) }

// Purpose returns the purpose of a transport node. Assembly nodes are never
// resolved.
func (n *Node) Purpose() Purpose { return n.purpose }

// resolve is the only transition of a transport node's purpose. It reports
// false, leaving the node untouched, when the purpose was already set.
func (n *Node) resolve(items []catalog.Item) bool {
	if n.purpose.resolved {
		return false
	}
	n.purpose = Resolved(items)
	return true
}

func (n *Node) String() string {
	s := fmt.Sprintf("%s node %s, parents: %d, children: %d", n.Kind, n.Entity, len(n.parents), len(n.children))
	switch n.Kind {
	case AssemblyNode:
		s += fmt.Sprintf(", inputs: [%s], outputs: [%s]", joinItems(n.inputs), joinItems(n.outputs))
	case TransportNode:
		s += ", carries: " + n.purpose.String()
	}
	return s
}

func joinItems(items []catalog.Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}
